package route

import (
	"math"
	"testing"

	"ride_tracker/internal/geo"
)

// Three points on the equator, each consecutive pair ~111.19 km apart.
func equatorRoute() []geo.Coordinate {
	return []geo.Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 1},
		{Latitude: 0, Longitude: 2},
	}
}

func TestTotalLength(t *testing.T) {
	total := TotalLength(equatorRoute(), 1585)
	if math.Abs(total-222.38) > 0.1 {
		t.Fatalf("expected ~222.38, got %v", total)
	}
}

func TestTotalLengthFallback(t *testing.T) {
	if got := TotalLength(nil, 1585); got != 1585 {
		t.Fatalf("expected fallback 1585, got %v", got)
	}
	single := []geo.Coordinate{{Latitude: 1, Longitude: 1}}
	if got := TotalLength(single, 572); got != 572 {
		t.Fatalf("expected fallback 572, got %v", got)
	}
}

func TestCumulativeDistances(t *testing.T) {
	c := CumulativeDistances(equatorRoute())
	if len(c) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(c))
	}
	if c[0] != 0 {
		t.Fatalf("first entry must be 0, got %v", c[0])
	}
	for i := 1; i < len(c); i++ {
		if c[i] <= c[i-1] {
			t.Fatalf("cumulative distances not increasing at %d: %v", i, c)
		}
	}
}

func TestCoordinateAtDistanceStart(t *testing.T) {
	got := CoordinateAtDistance(equatorRoute(), 0)
	if got.Latitude != 0 || got.Longitude != 0 {
		t.Fatalf("expected first point at distance 0, got %+v", got)
	}
}

func TestCoordinateAtDistanceMidpoint(t *testing.T) {
	got := CoordinateAtDistance(equatorRoute(), 55.6)
	if math.Abs(got.Latitude) > 1e-9 {
		t.Fatalf("expected latitude 0, got %v", got.Latitude)
	}
	if math.Abs(got.Longitude-0.5) > 0.01 {
		t.Fatalf("expected longitude ~0.5, got %v", got.Longitude)
	}
}

func TestCoordinateAtDistancePastEnd(t *testing.T) {
	got := CoordinateAtDistance(equatorRoute(), 300)
	if got.Latitude != 0 || got.Longitude != 2 {
		t.Fatalf("expected last point exactly, got %+v", got)
	}
}

func TestCoordinateAtDistanceNegativeClamped(t *testing.T) {
	got := CoordinateAtDistance(equatorRoute(), -10)
	if got.Latitude != 0 || got.Longitude != 0 {
		t.Fatalf("expected first point for negative distance, got %+v", got)
	}
}

func TestCoordinateAtDistanceNoPoints(t *testing.T) {
	got := CoordinateAtDistance(nil, 50)
	if got != FallbackOrigin {
		t.Fatalf("expected fallback origin, got %+v", got)
	}
}

func TestCoordinateAtDistanceSinglePoint(t *testing.T) {
	p := []geo.Coordinate{{Latitude: 6.05, Longitude: 80.22}}
	got := CoordinateAtDistance(p, 999)
	if got != p[0] {
		t.Fatalf("expected the single point, got %+v", got)
	}
}

func TestCoordinateAtDistanceDuplicatePoints(t *testing.T) {
	points := []geo.Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 1},
	}
	got := CoordinateAtDistance(points, 0)
	if got.Latitude != 0 || got.Longitude != 0 {
		t.Fatalf("zero-length segment should not divide by zero, got %+v", got)
	}
}

func TestCoordinateAtDistanceMonotonic(t *testing.T) {
	points := equatorRoute()
	prev := -1.0
	for d := 0.0; d <= 250; d += 10 {
		got := CoordinateAtDistance(points, d)
		if got.Longitude < prev {
			t.Fatalf("longitude moved backward at distance %v: %v -> %v", d, prev, got.Longitude)
		}
		prev = got.Longitude
	}
}

func TestCoordinateAtProgress(t *testing.T) {
	got := CoordinateAtProgress(equatorRoute(), 50, 1585)
	if math.Abs(got.Longitude-1) > 0.01 {
		t.Fatalf("expected ~middle of route, got %+v", got)
	}

	end := CoordinateAtProgress(equatorRoute(), 150, 1585)
	if end.Longitude != 2 {
		t.Fatalf("percent above 100 should clamp to last point, got %+v", end)
	}

	start := CoordinateAtProgress(equatorRoute(), -5, 1585)
	if start.Longitude != 0 {
		t.Fatalf("negative percent should clamp to first point, got %+v", start)
	}
}
