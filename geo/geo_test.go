// geo/geo_test.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import (
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	lats := []float64{-84.9, -60, -30, -1, 0, 1, 30, 60, 84.9}
	lons := []float64{-180, -90, -0.001, 0, 0.001, 90, 179.999}
	for _, lat := range lats {
		for _, lon := range lons {
			p := GeoToMap(lat, lon)
			lat2, lon2 := MapToGeo(p)
			if math.Abs(lat-lat2) > 1e-9 {
				t.Errorf("latitude round trip: %v -> %v (delta %v)", lat, lat2, lat-lat2)
			}
			if math.Abs(lon-lon2) > 1e-9 {
				t.Errorf("longitude round trip: %v -> %v (delta %v)", lon, lon2, lon-lon2)
			}
		}
	}
}

func TestIntersectsOpenInterval(t *testing.T) {
	a := Extent{XMin: 0, YMin: 0, XMax: 1, YMax: 1}
	b := Extent{XMin: 1, YMin: 0, XMax: 2, YMax: 1}
	if a.Intersects(b) {
		t.Errorf("boxes that only touch at a boundary must not intersect")
	}
	c := Extent{XMin: 0.5, YMin: 0.5, XMax: 1.5, YMax: 1.5}
	if !a.Intersects(c) {
		t.Errorf("overlapping boxes must intersect")
	}
}

func TestOverlapsClosedInterval(t *testing.T) {
	a := Extent{XMin: 0, YMin: 0, XMax: 1, YMax: 1}
	b := Extent{XMin: 1, YMin: 0, XMax: 2, YMax: 1}
	if !a.Overlaps(b) {
		t.Errorf("boxes that touch at a boundary must overlap")
	}
	c := Extent{XMin: 0.5, YMin: 0.5, XMax: 1.5, YMax: 1.5}
	if !a.Overlaps(c) {
		t.Errorf("overlapping boxes must overlap")
	}
	d := Extent{XMin: 2, YMin: 2, XMax: 3, YMax: 3}
	if a.Overlaps(d) {
		t.Errorf("disjoint boxes must not overlap")
	}
}

func TestNormalise(t *testing.T) {
	e := Extent{XMin: 1, YMin: 1, XMax: 0, YMax: 0}.Normalise()
	if e.XMin != 0 || e.XMax != 1 || e.YMin != 0 || e.YMax != 1 {
		t.Errorf("normalise failed: %+v", e)
	}
}
