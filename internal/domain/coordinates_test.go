package domain

import "testing"

func TestDistanceKm(t *testing.T) {
	a := Coordinates{Lat: 0, Lon: 0}
	b := Coordinates{Lat: 0, Lon: 1}

	if got := DistanceKm(a, b); got != 111.2 {
		t.Errorf("distance = %v, want 111.2", got)
	}
	if got := DistanceKm(b, a); got != 111.2 {
		t.Errorf("reverse distance = %v, want 111.2", got)
	}
	if got := DistanceKm(a, a); got != 0 {
		t.Errorf("same point distance = %v, want 0", got)
	}
}

func TestCoordinatesValid(t *testing.T) {
	if !(Coordinates{Lat: 12.97, Lon: 77.59}).Valid() {
		t.Error("expected valid coordinates")
	}
	if (Coordinates{Lat: 91, Lon: 0}).Valid() {
		t.Error("latitude 91 should be invalid")
	}
	if (Coordinates{Lat: 0, Lon: -181}).Valid() {
		t.Error("longitude -181 should be invalid")
	}
}
