// geo/geo.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package geo implements the Web-Mercator-like projection between
// geographic (latitude, longitude) and unit-square map coordinates, and the
// axis-aligned bounding box type used throughout the conversion pipeline.
package geo

import "math"

// Point is a projected map-space coordinate in [0,1]x[0,1].
type Point struct {
	X, Y float64
}

// GeoToMap projects a latitude/longitude pair, in degrees, onto the unit
// square.
func GeoToMap(latitude, longitude float64) Point {
	x := (longitude + 180) / 360
	y := (math.Pi - math.Log(math.Tan(math.Pi/4+degToRad(latitude)/2))) / (2 * math.Pi)
	return Point{X: x, Y: y}
}

// MapToGeo is the inverse of GeoToMap.
func MapToGeo(p Point) (latitude, longitude float64) {
	longitude = p.X*360 - 180
	latitude = radToDeg(2 * (math.Atan(math.Exp(math.Pi-p.Y*2*math.Pi)) - math.Pi/4))
	return latitude, longitude
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }

// Extent is an axis-aligned bounding box in map space, (xMin,yMin,xMax,yMax).
type Extent struct {
	XMin, YMin, XMax, YMax float64
}

// EmptyExtent returns the degenerate AABB used to accumulate points into,
// via successive calls to Expand.
func EmptyExtent() Extent {
	return Extent{XMin: math.MaxFloat64, YMin: math.MaxFloat64, XMax: -math.MaxFloat64, YMax: -math.MaxFloat64}
}

// ExtentFromPoints computes the bounding box of a non-empty slice of points.
// An empty slice yields the zero Extent, matching the origin implementation.
func ExtentFromPoints(pts []Point) Extent {
	if len(pts) == 0 {
		return Extent{}
	}
	e := Extent{XMin: pts[0].X, YMin: pts[0].Y, XMax: pts[0].X, YMax: pts[0].Y}
	for _, p := range pts[1:] {
		e = e.Expand(p)
	}
	return e
}

// Normalise returns the AABB with min/max corners swapped as needed so that
// XMin<=XMax and YMin<=YMax.
func (e Extent) Normalise() Extent {
	if e.XMin > e.XMax {
		e.XMin, e.XMax = e.XMax, e.XMin
	}
	if e.YMin > e.YMax {
		e.YMin, e.YMax = e.YMax, e.YMin
	}
	return e
}

// Expand returns the AABB grown to include p.
func (e Extent) Expand(p Point) Extent {
	return Extent{
		XMin: math.Min(e.XMin, p.X),
		YMin: math.Min(e.YMin, p.Y),
		XMax: math.Max(e.XMax, p.X),
		YMax: math.Max(e.YMax, p.Y),
	}
}

// Union returns the smallest AABB containing both e and o.
func (e Extent) Union(o Extent) Extent {
	return Extent{
		XMin: math.Min(e.XMin, o.XMin),
		YMin: math.Min(e.YMin, o.YMin),
		XMax: math.Max(e.XMax, o.XMax),
		YMax: math.Max(e.YMax, o.YMax),
	}
}

func (e Extent) Width() float64  { return e.XMax - e.XMin }
func (e Extent) Height() float64 { return e.YMax - e.YMin }

func (e Extent) Center() Point {
	return Point{X: (e.XMin + e.XMax) / 2, Y: (e.YMin + e.YMax) / 2}
}

// Contains reports whether o lies entirely within e, inclusive of the
// boundary.
func (e Extent) Contains(o Extent) bool {
	return o.XMin >= e.XMin && o.YMin >= e.YMin && o.XMax <= e.XMax && o.YMax <= e.YMax
}

// Intersects reports whether e and o overlap using an open-interval test:
// two boxes that only touch at a boundary do not intersect.
func (e Extent) Intersects(o Extent) bool {
	ac := e.Center()
	bc := o.Center()
	dx := math.Abs(ac.X - bc.X)
	dy := math.Abs(ac.Y - bc.Y)
	return dx < (e.Width()+o.Width())/2 && dy < (e.Height()+o.Height())/2
}

// Overlaps reports whether e and o overlap using a closed-interval test:
// two boxes that only touch at a boundary do overlap.
func (e Extent) Overlaps(o Extent) bool {
	x := e.XMax >= o.XMin && e.XMin <= o.XMax
	y := e.YMax >= o.YMin && e.YMin <= o.YMax
	return x && y
}
