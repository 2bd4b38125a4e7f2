package geo

import "math"

// Earth radius in kilometers. Persisted distances were computed with this
// exact constant; changing it would skew every stored progress figure.
const earthRadiusKm = 6371.0

// Coordinate is a WGS84 point in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HaversineKm returns the great-circle distance between two points in
// kilometers. Inputs are degrees; the caller guarantees valid coordinates.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
