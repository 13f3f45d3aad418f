// simplify/simplify.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package simplify implements per-level vertex decimation and the
// tile-boundary splitter that fragments a shape crossing a tile edge into
// contiguous sub-shapes.
package simplify

import (
	"math"

	"github.com/mmp/sectortiles/domain"
	"github.com/mmp/sectortiles/geo"
)

// Decimate retains the first and last vertex of points and each interior
// vertex whose squared distance from the raw previous vertex exceeds
// minDist^2 = 2^(-2*(level+9)). It is a no-op (returns points unchanged)
// at the finest level or when there are fewer than 2 points.
func Decimate(points []geo.Point, level, levels int) []geo.Point {
	if len(points) < 2 || level >= levels-1 {
		return points
	}
	minDist := math.Exp2(-float64(level + 9))
	minDistSqr := minDist * minDist

	kept := make([]geo.Point, 0, len(points))
	kept = append(kept, points[0])
	for i := 1; i < len(points)-1; i++ {
		prev := points[i-1]
		cur := points[i]
		dx := cur.X - prev.X
		dy := cur.Y - prev.Y
		if dx*dx+dy*dy > minDistSqr {
			kept = append(kept, cur)
		}
	}
	kept = append(kept, points[len(points)-1])
	return kept
}

// Insert pushes shape into the tile whose AABB is tileAABB, via push,
// splitting it at the tile boundary: if the shape's AABB is fully contained
// in tileAABB it is pushed unchanged; otherwise the vertex list is walked and a contiguous
// run is flushed as its own sub-shape whenever the (prev,current,next)
// neighbourhood AABB loses intersection with the tile.
func Insert(tileAABB geo.Extent, shape domain.Shape, push func(domain.Shape)) {
	if tileAABB.Contains(shape.MapAABB) {
		push(shape)
		return
	}

	pts := shape.MapPoints
	var pending []geo.Point
	flush := func() {
		if len(pending) < 2 {
			pending = nil
			return
		}
		sub := shape
		sub.MapPoints = append([]geo.Point(nil), pending...)
		sub.RecalculateAABB()
		push(sub)
		pending = nil
	}

	for i := range pts {
		prev := pts[i]
		if i > 0 {
			prev = pts[i-1]
		}
		next := pts[i]
		if i < len(pts)-1 {
			next = pts[i+1]
		}
		neighbourhood := geo.ExtentFromPoints([]geo.Point{prev, pts[i], next})

		if neighbourhood.Intersects(tileAABB) {
			pending = append(pending, pts[i])
		} else {
			flush()
		}
	}
	flush()
}
