package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	// Matara (5.9549, 80.5550) to Colombo (6.9271, 79.8612) ~ 130-135 km
	d := HaversineKm(5.9549, 80.5550, 6.9271, 79.8612)
	if d < 120 || d > 145 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineKmOneDegreeAtEquator(t *testing.T) {
	// One degree of longitude at the equator is ~111.19 km with R=6371.
	d := HaversineKm(0, 0, 0, 1)
	if math.Abs(d-111.19) > 0.05 {
		t.Fatalf("expected ~111.19, got %v", d)
	}
}

func TestHaversineKmZeroDistance(t *testing.T) {
	if d := HaversineKm(6.05, 80.22, 6.05, 80.22); d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}

func TestHaversineKmSymmetric(t *testing.T) {
	a := HaversineKm(5.9549, 80.5550, 9.6612, 80.0256)
	b := HaversineKm(9.6612, 80.0256, 5.9549, 80.5550)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", a, b)
	}
}
