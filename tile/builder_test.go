// tile/builder_test.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package tile

import (
	"testing"

	"github.com/mmp/sectortiles/domain"
	"github.com/mmp/sectortiles/geo"
)

func TestApplyByAABBTouchesExpectedTile(t *testing.T) {
	b := NewBuilder(2, domain.NewPalette())
	var touched []Key
	b.ApplyByAABB(1, geo.Extent{XMin: 0.1, YMin: 0.1, XMax: 0.4, YMax: 0.4}, func(s *domain.Section) {
		touched = append(touched, Key{Level: s.Level, X: s.X, Y: s.Y})
	})
	if len(touched) != 1 || touched[0] != (Key{Level: 1, X: 0, Y: 0}) {
		t.Errorf("touched = %v, want exactly [(1,0,0)]", touched)
	}
}

func TestTileAABBInvariant(t *testing.T) {
	b := NewBuilder(3, domain.NewPalette())
	var got *domain.Section
	b.ApplyByAABB(2, geo.Extent{XMin: 0.3, YMin: 0.6, XMax: 0.3, YMax: 0.6}, func(s *domain.Section) { got = s })
	if got == nil {
		t.Fatal("expected a tile")
	}
	n := 4.0
	want := geo.Extent{
		XMin: float64(got.X) / n, YMin: float64(got.Y) / n,
		XMax: float64(got.X+1) / n, YMax: float64(got.Y+1) / n,
	}
	if got.MapAABB != want {
		t.Errorf("MapAABB = %+v, want %+v", got.MapAABB, want)
	}
}

func TestIncludeAABBAdmission(t *testing.T) {
	b := NewBuilder(2, domain.NewPalette())
	min := 1.0 / 512 // 2^-(0+9)
	ok := b.IncludeAABB(0, geo.Extent{XMin: 0, YMin: 0, XMax: min, YMax: min})
	if !ok {
		t.Errorf("boundary-sized AABB should be admitted")
	}
	tooSmall := b.IncludeAABB(0, geo.Extent{XMin: 0, YMin: 0, XMax: min / 2, YMax: min})
	if tooSmall {
		t.Errorf("undersized AABB should not be admitted")
	}
	// Finest level admits everything.
	if !b.IncludeAABB(1, geo.Extent{}) {
		t.Errorf("finest level must admit everything")
	}
}
