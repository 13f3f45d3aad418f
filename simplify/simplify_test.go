// simplify/simplify_test.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package simplify

import (
	"testing"

	"github.com/mmp/sectortiles/domain"
	"github.com/mmp/sectortiles/geo"
)

func TestDecimateKeepsEndpointsAndDropsNearDuplicates(t *testing.T) {
	pts := []geo.Point{
		{X: 0, Y: 0},
		{X: 1e-12, Y: 0}, // far below min_dist at any realistic level, should drop
		{X: 0.5, Y: 0.5},
		{X: 1, Y: 1},
	}
	out := Decimate(pts, 0, 9)
	if out[0] != pts[0] || out[len(out)-1] != pts[len(pts)-1] {
		t.Errorf("endpoints must always be retained: %v", out)
	}
	for _, p := range out {
		if p == pts[1] {
			t.Errorf("near-duplicate vertex should have been dropped: %v", out)
		}
	}
}

func TestDecimateNoopAtFinestLevel(t *testing.T) {
	pts := []geo.Point{{X: 0, Y: 0}, {X: 1e-12, Y: 0}, {X: 1, Y: 1}}
	out := Decimate(pts, 8, 9)
	if len(out) != len(pts) {
		t.Errorf("finest level must be a no-op, got %d points want %d", len(out), len(pts))
	}
}

func TestInsertFullyContainedUnchanged(t *testing.T) {
	shape := domain.Shape{MapPoints: []geo.Point{{X: 0.1, Y: 0.1}, {X: 0.2, Y: 0.2}}}
	shape.RecalculateAABB()
	tileAABB := geo.Extent{XMin: 0, YMin: 0, XMax: 1, YMax: 1}

	var pushed []domain.Shape
	Insert(tileAABB, shape, func(s domain.Shape) { pushed = append(pushed, s) })
	if len(pushed) != 1 || len(pushed[0].MapPoints) != 2 {
		t.Fatalf("expected the shape pushed unchanged, got %+v", pushed)
	}
}

func TestInsertSplitsAcrossBoundary(t *testing.T) {
	shape := domain.Shape{MapPoints: []geo.Point{
		{X: 0.1, Y: 0.5},
		{X: 0.4, Y: 0.5},
		{X: 0.6, Y: 0.5},
		{X: 0.9, Y: 0.5},
	}}
	shape.RecalculateAABB()
	tileAABB := geo.Extent{XMin: 0, YMin: 0, XMax: 0.5, YMax: 1}

	var pushed []domain.Shape
	Insert(tileAABB, shape, func(s domain.Shape) { pushed = append(pushed, s) })
	for _, s := range pushed {
		if !s.MapAABB.Intersects(tileAABB) {
			t.Errorf("sub-shape AABB %+v does not intersect tile AABB %+v", s.MapAABB, tileAABB)
		}
	}
}
