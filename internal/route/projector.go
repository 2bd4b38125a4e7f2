package route

import (
	"ride_tracker/internal/geo"
)

// FallbackOrigin is returned when a position is requested against a route
// with no points at all (Matara, the coastal route's starting town).
var FallbackOrigin = geo.Coordinate{Latitude: 5.9549, Longitude: 80.5550}

// TotalLength sums consecutive haversine segment lengths along the
// polyline. With fewer than two points it returns fallbackKm instead of
// zero so downstream percentage math never divides by zero.
func TotalLength(points []geo.Coordinate, fallbackKm float64) float64 {
	if len(points) < 2 {
		return fallbackKm
	}

	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += geo.HaversineKm(
			points[i].Latitude, points[i].Longitude,
			points[i+1].Latitude, points[i+1].Longitude,
		)
	}
	return total
}

// CumulativeDistances returns the prefix sums of segment lengths, one entry
// per point, starting at 0.
func CumulativeDistances(points []geo.Coordinate) []float64 {
	cumulative := make([]float64, 0, len(points))
	cumulative = append(cumulative, 0)

	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += geo.HaversineKm(
			points[i].Latitude, points[i].Longitude,
			points[i+1].Latitude, points[i+1].Longitude,
		)
		cumulative = append(cumulative, total)
	}
	return cumulative
}

// CoordinateAtDistance maps a traveled distance to a point on the polyline.
// The distance is clamped to the route bounds: synced distances come from
// an external source and routinely overshoot the route. At or past the end
// the last point is returned exactly, never an extrapolation.
func CoordinateAtDistance(points []geo.Coordinate, distanceKm float64) geo.Coordinate {
	if len(points) == 0 {
		return FallbackOrigin
	}
	if len(points) == 1 {
		return points[0]
	}

	cumulative := CumulativeDistances(points)
	total := cumulative[len(cumulative)-1]

	target := distanceKm
	if target < 0 {
		target = 0
	}
	if target >= total {
		return points[len(points)-1]
	}

	segment := 0
	for i := 0; i < len(cumulative)-1; i++ {
		if target >= cumulative[i] && target <= cumulative[i+1] {
			segment = i
			break
		}
	}

	p1 := points[segment]
	p2 := points[segment+1]
	segmentLength := cumulative[segment+1] - cumulative[segment]

	// Duplicate points produce a zero-length segment; stay on p1.
	localProgress := 0.0
	if segmentLength > 0 {
		localProgress = (target - cumulative[segment]) / segmentLength
	}

	return geo.Coordinate{
		Latitude:  p1.Latitude + (p2.Latitude-p1.Latitude)*localProgress,
		Longitude: p1.Longitude + (p2.Longitude-p1.Longitude)*localProgress,
	}
}

// CoordinateAtProgress converts a completion percentage into a distance
// along the route and projects it. The percentage is clamped to [0, 100].
func CoordinateAtProgress(points []geo.Coordinate, progressPercent, fallbackKm float64) geo.Coordinate {
	if progressPercent < 0 {
		progressPercent = 0
	}
	if progressPercent > 100 {
		progressPercent = 100
	}

	targetDistance := (progressPercent / 100.0) * TotalLength(points, fallbackKm)
	return CoordinateAtDistance(points, targetDistance)
}
