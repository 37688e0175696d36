package geo

import (
	"math"
	"strings"
	"testing"
)

func TestDistanceMetersZero(t *testing.T) {
	if d := DistanceMeters(-23.5505, -46.6333, -23.5505, -46.6333); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestDistanceMetersOneDegreeLatitude(t *testing.T) {
	// One degree of latitude is about 111.19 km on a 6371 km sphere.
	d := DistanceMeters(0, 0, 1, 0)
	if math.Abs(d-111195) > 10 {
		t.Errorf("one degree latitude = %v m, want ~111195 m", d)
	}
}

func TestDistanceMetersKnownCities(t *testing.T) {
	// Sao Paulo downtown to Guarulhos airport, roughly 20 km.
	d := DistanceMeters(-23.5505, -46.6333, -23.4356, -46.4731)
	if d < 19000 || d > 22000 {
		t.Errorf("SP to GRU = %v m, want between 19km and 22km", d)
	}
}

func TestDistanceSQLMatchesGoFormula(t *testing.T) {
	if !strings.Contains(DistanceSQL, "6371000") {
		t.Error("SQL distance must use the same sphere radius as DistanceMeters")
	}
	if !strings.Contains(DistanceSQL, "least(1.0") {
		t.Error("SQL distance must clamp the acos argument")
	}
	if got := strings.Count(DistanceSQL, "?"); got != 3 {
		t.Errorf("SQL distance binds %d placeholders, want 3 (lat, lng, lat)", got)
	}
}

func TestDistanceMetersSymmetric(t *testing.T) {
	a := DistanceMeters(-23.5505, -46.6333, -22.9068, -43.1729)
	b := DistanceMeters(-22.9068, -43.1729, -23.5505, -46.6333)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("distance not symmetric: %v vs %v", a, b)
	}
}
