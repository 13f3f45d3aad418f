// stitch/stitch.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package stitch reconstructs closed and open polylines from an unordered
// multiset of directed, coloured line segments by matching quantised
// endpoints. Partial polygons are held in a flat slice and addressed by
// integer index, never by pointer, so merges and invalidation cannot form
// a cycle.
package stitch

import (
	"math"

	"github.com/mmp/sectortiles/domain"
	"github.com/mmp/sectortiles/geo"
)

const scale = float64(int64(1) << 28)

// Truncate quantises a scalar for endpoint matching: floor(v * 2^28).
func Truncate(v float64) int64 {
	return int64(math.Floor(v * scale))
}

// QuantPoint is a quantised map point used as an endpoint key component.
type QuantPoint struct{ X, Y int64 }

func quantise(p geo.Point) QuantPoint {
	return QuantPoint{X: Truncate(p.X), Y: Truncate(p.Y)}
}

// end identifies one of a partial polygon's two live endpoints.
type end bool

const (
	endFront end = false
	endBack  end = true
)

type partial struct {
	colour      domain.Colour
	points      []geo.Point
	strokeWidth float32
}

func newPartial(colour domain.Colour) *partial {
	return &partial{colour: colour, strokeWidth: 1.0}
}

func (p *partial) front() geo.Point { return p.points[0] }
func (p *partial) back() geo.Point  { return p.points[len(p.points)-1] }

type endpointKey struct {
	colour domain.Colour
	pt     QuantPoint
}

type endpointRef struct {
	idx int
	e   end
}

// Builder accumulates segments into partial polygons, keyed by endpoint.
type Builder struct {
	polygons []*partial // nil entries are invalidated (merged-away) polygons
	ends     map[endpointKey]endpointRef
}

func NewBuilder() *Builder {
	return &Builder{ends: make(map[endpointKey]endpointRef)}
}

func (b *Builder) key(colour domain.Colour, p geo.Point) endpointKey {
	return endpointKey{colour: colour, pt: quantise(p)}
}

// Insert feeds one directed segment (a,b) of the given colour into the
// builder.
func (b *Builder) Insert(colour domain.Colour, a, bp geo.Point) {
	aKey := b.key(colour, a)
	bKey := b.key(colour, bp)
	if aKey == bKey {
		return
	}

	aRef, aOK := b.ends[aKey]
	bRef, bOK := b.ends[bKey]
	delete(b.ends, aKey)
	delete(b.ends, bKey)

	switch {
	case !aOK && !bOK:
		p := newPartial(colour)
		p.points = []geo.Point{a, bp}
		idx := len(b.polygons)
		b.polygons = append(b.polygons, p)
		b.ends[aKey] = endpointRef{idx: idx, e: endFront}
		b.ends[bKey] = endpointRef{idx: idx, e: endBack}

	case aOK && !bOK:
		b.extend(aRef, bKey, b.polygons[aRef.idx], aRef.e, bp)

	case !aOK && bOK:
		b.extend(bRef, aKey, b.polygons[bRef.idx], bRef.e, a)

	default:
		if aRef.idx == bRef.idx {
			// Closing a loop: append the starting point to the open end.
			// Both endpoint keys stay removed from b.ends: a closed loop
			// has no free end left to extend.
			p := b.polygons[aRef.idx]
			if aRef.e == endBack {
				p.points = append(p.points, p.front())
			} else {
				p.points = append([]geo.Point{p.back()}, p.points...)
			}
			return
		}
		b.merge(aRef, bRef)
	}
}

func (b *Builder) extend(ref endpointRef, newKey endpointKey, p *partial, e end, newPoint geo.Point) {
	if e == endFront {
		p.points = append([]geo.Point{newPoint}, p.points...)
		b.ends[newKey] = endpointRef{idx: ref.idx, e: endFront}
	} else {
		p.points = append(p.points, newPoint)
		b.ends[newKey] = endpointRef{idx: ref.idx, e: endBack}
	}
}

// merge joins two distinct partial polygons that share a matched endpoint,
// reversing one side as needed so the join is contiguous, invalidates the
// absorbed polygon, and reindexes the surviving polygon's new endpoints.
func (b *Builder) merge(aRef, bRef endpointRef) {
	pa := b.polygons[aRef.idx]
	pb := b.polygons[bRef.idx]

	var joined []geo.Point
	if aRef.e == endBack {
		joined = append(joined, pa.points...)
	} else {
		joined = append(joined, reversed(pa.points)...)
	}
	if bRef.e == endFront {
		joined = append(joined, pb.points...)
	} else {
		joined = append(joined, reversed(pb.points)...)
	}

	pa.points = joined
	newFrontKey := b.key(pa.colour, pa.front())
	newBackKey := b.key(pa.colour, pa.back())
	b.ends[newFrontKey] = endpointRef{idx: aRef.idx, e: endFront}
	b.ends[newBackKey] = endpointRef{idx: aRef.idx, e: endBack}

	b.polygons[bRef.idx] = nil
}

func reversed(pts []geo.Point) []geo.Point {
	r := make([]geo.Point, len(pts))
	for i, p := range pts {
		r[len(pts)-1-i] = p
	}
	return r
}

// Build finalises all live partial polygons into Shapes with recomputed
// AABBs, dropping any that were merged away or never reached two points.
func (b *Builder) Build() []domain.Shape {
	var shapes []domain.Shape
	for _, p := range b.polygons {
		if p == nil || len(p.points) < 2 {
			continue
		}
		colour := p.colour
		s := domain.Shape{
			StrokeColour: &colour,
			StrokeWidth:  p.strokeWidth,
			MapPoints:    p.points,
		}
		s.RecalculateAABB()
		shapes = append(shapes, s)
	}
	return shapes
}
