// tile/builder.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package tile implements the quadtree tile builder: per-level coordinate
// quantization, AABB admission, and AABB-driven insertion into lazily
// created tiles.
package tile

import (
	"math"

	"github.com/mmp/sectortiles/domain"
	"github.com/mmp/sectortiles/geo"
)

// Key identifies one tile by level and quadtree coordinate.
type Key struct {
	Level, X, Y int
}

// Builder owns the quadtree's tiles and the shared colour palette.
type Builder struct {
	levels  int
	tiles   map[Key]*domain.Section
	palette *domain.Palette
}

// NewBuilder creates a Builder for the given level count and palette. The
// builder holds the palette and returns it from Palette; tiles do not
// carry a copy of it.
func NewBuilder(levels int, palette *domain.Palette) *Builder {
	return &Builder{levels: levels, tiles: make(map[Key]*domain.Section), palette: palette}
}

func (b *Builder) Levels() int { return b.levels }

func (b *Builder) Palette() *domain.Palette { return b.palette }

// Tiles returns every tile created so far. Iteration order is unspecified.
func (b *Builder) Tiles() []*domain.Section {
	r := make([]*domain.Section, 0, len(b.tiles))
	for _, s := range b.tiles {
		r = append(r, s)
	}
	return r
}

// Truncate quantizes a scalar to the nearest multiple of 2^-(level+9) at
// level < Levels()-1; at the finest level it is the identity.
func (b *Builder) Truncate(level int, v float64) float64 {
	if level >= b.levels-1 {
		return v
	}
	scale := math.Exp2(float64(level + 9))
	return math.Round(v*scale) / scale
}

// TruncatePoint quantizes both coordinates of p at level.
func (b *Builder) TruncatePoint(level int, p geo.Point) geo.Point {
	return geo.Point{X: b.Truncate(level, p.X), Y: b.Truncate(level, p.Y)}
}

// IncludeAABB reports whether e is admitted at level: at level <
// Levels()-1 both side lengths must be at least 2^-(level+9); the finest
// level admits everything.
func (b *Builder) IncludeAABB(level int, e geo.Extent) bool {
	if level >= b.levels-1 {
		return true
	}
	min := math.Exp2(-float64(level + 9))
	return e.Width() >= min && e.Height() >= min
}

// TileKey returns the (x,y) tile coordinate containing p at level.
func TileKey(level int, p geo.Point) (int, int) {
	scale := math.Exp2(float64(level))
	return int(math.Floor(p.X * scale)), int(math.Floor(p.Y * scale))
}

func (b *Builder) tileAABB(level, x, y int) geo.Extent {
	n := math.Exp2(float64(level))
	return geo.Extent{
		XMin: float64(x) / n, YMin: float64(y) / n,
		XMax: float64(x+1) / n, YMax: float64(y+1) / n,
	}
}

// section returns the tile at (level,x,y), creating it (and its AABB) on
// first touch.
func (b *Builder) section(level, x, y int) *domain.Section {
	key := Key{Level: level, X: x, Y: y}
	if s, ok := b.tiles[key]; ok {
		return s
	}
	s := &domain.Section{Level: level, X: x, Y: y, MapAABB: b.tileAABB(level, x, y)}
	b.tiles[key] = s
	return s
}

// ApplyByAABB visits every tile touched by a normalised AABB at level,
// creating tiles lazily, and applies f to each.
func (b *Builder) ApplyByAABB(level int, e geo.Extent, f func(*domain.Section)) {
	n := math.Exp2(float64(level))
	x0 := int(math.Floor(e.XMin * n))
	x1 := int(math.Ceil(e.XMax * n))
	y0 := int(math.Floor(e.YMin * n))
	y1 := int(math.Ceil(e.YMax * n))
	for tx := x0; tx < x1; tx++ {
		for ty := y0; ty < y1; ty++ {
			f(b.section(level, tx, ty))
		}
	}
}
