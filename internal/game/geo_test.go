package game

import (
	"math"
	"testing"
)

func TestDistanceMetersZero(t *testing.T) {
	p := LatLng{Lat: 51.0504, Lng: 13.7373}
	if d := DistanceMeters(p, p); d != 0 {
		t.Fatalf("distance to self should be 0, got %f", d)
	}
}

func TestDistanceMetersSymmetry(t *testing.T) {
	a := LatLng{Lat: 51.051877, Lng: 13.741490}
	b := LatLng{Lat: 51.039600, Lng: 13.733293}
	if d1, d2 := DistanceMeters(a, b), DistanceMeters(b, a); d1 != d2 {
		t.Fatalf("distance should be symmetric: %f vs %f", d1, d2)
	}
}

func TestDistanceMetersKnownPoints(t *testing.T) {
	// Frauenkirche to Hauptbahnhof, Dresden: ~1480.5m
	a := LatLng{Lat: 51.051877, Lng: 13.741490}
	b := LatLng{Lat: 51.039600, Lng: 13.733293}
	d := DistanceMeters(a, b)
	if math.Abs(d-1480.5) > 1.0 {
		t.Fatalf("expected ~1480.5m, got %f", d)
	}

	// One degree of longitude at the equator: ~111195m
	d = DistanceMeters(LatLng{Lat: 0, Lng: 0}, LatLng{Lat: 0, Lng: 1})
	if math.Abs(d-111194.9) > 1.0 {
		t.Fatalf("expected ~111194.9m, got %f", d)
	}
}

func TestDistanceMetersShortRange(t *testing.T) {
	// Offsets in latitude translate to metres near-linearly at hunt scale.
	base := LatLng{Lat: 51.0504, Lng: 13.7373}
	for _, meters := range []float64{5, 10, 50, 100} {
		b := LatLng{Lat: base.Lat + latOffsetMeters(meters), Lng: base.Lng}
		d := DistanceMeters(base, b)
		if math.Abs(d-meters) > 0.01 {
			t.Fatalf("expected ~%fm, got %f", meters, d)
		}
	}
}
