// convert/convert.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package convert orchestrates the conversion of a parsed sct.Sector into
// a tile.Builder's tiles: per level, it projects and quantises fill
// polygons and geo-segments, stitches and simplifies the latter, and
// inserts every other record type across its designated level range.
package convert

import (
	"fmt"

	"github.com/mmp/sectortiles/domain"
	"github.com/mmp/sectortiles/geo"
	"github.com/mmp/sectortiles/sct"
	"github.com/mmp/sectortiles/simplify"
	"github.com/mmp/sectortiles/stitch"
	"github.com/mmp/sectortiles/tile"
)

// Warner receives non-fatal diagnostics, matching sct.Warner.
type Warner interface {
	Warnf(format string, args ...interface{})
}

type nullWarner struct{}

func (nullWarner) Warnf(string, ...interface{}) {}

// Run converts sector into builder's tiles. Fatal errors (fill-polygon or
// geo-segment projection failures) abort the whole conversion; per-record
// failures for fixes, airspaces, and airways are reported to warn and the
// offending record skipped.
func Run(sector *sct.Sector, builder *tile.Builder, warn Warner) error {
	if warn == nil {
		warn = nullWarner{}
	}

	for level := 0; level < builder.Levels(); level++ {
		if err := convertFillPolygons(sector, builder, level); err != nil {
			return err
		}
		if err := convertGeoSegments(sector, builder, level); err != nil {
			return err
		}
	}

	convertAirports(sector, builder)
	convertRunways(sector, builder)
	convertGates(sector, builder)
	convertTaxiways(sector, builder)
	convertPoints(sector, builder, warn)
	convertAirspaces(sector, builder, warn)
	convertAirways(sector, builder, warn)

	return nil
}

func convertFillPolygons(sector *sct.Sector, builder *tile.Builder, level int) error {
	for _, fill := range sector.FillColors {
		var pts []geo.Point
		for _, sp := range fill.Points {
			p, err := sector.LookupMapPosition(sp)
			if err != nil {
				return fmt.Errorf("fill polygon %s: %w", fill.Name, err)
			}
			p = builder.TruncatePoint(level, p)
			if len(pts) > 0 && pts[len(pts)-1] == p {
				continue
			}
			pts = append(pts, p)
		}
		if len(pts) < 2 {
			continue
		}

		fillColour := fill.FillColour
		strokeColour := fill.StrokeColour
		shape := domain.Shape{
			FillColour:   &fillColour,
			StrokeColour: &strokeColour,
			StrokeWidth:  fill.StrokeWidth,
			MapPoints:    pts,
		}
		shape.RecalculateAABB()
		if !builder.IncludeAABB(level, shape.MapAABB) {
			continue
		}
		builder.ApplyByAABB(level, shape.MapAABB, func(s *domain.Section) {
			s.Shapes = append(s.Shapes, shape)
		})
	}
	return nil
}

type segKey struct {
	colour     domain.Colour
	ax, ay, bx, by float64
}

func pointLess(a, b geo.Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func convertGeoSegments(sector *sct.Sector, builder *tile.Builder, level int) error {
	seen := make(map[segKey]bool)
	sb := stitch.NewBuilder()

	for _, g := range sector.Geo {
		start, err := sector.LookupMapPosition(g.Start)
		if err != nil {
			return fmt.Errorf("geo segment: %w", err)
		}
		end, err := sector.LookupMapPosition(g.End)
		if err != nil {
			return fmt.Errorf("geo segment: %w", err)
		}
		start = builder.TruncatePoint(level, start)
		end = builder.TruncatePoint(level, end)
		if start == end {
			continue
		}
		if !pointLess(start, end) {
			start, end = end, start
		}

		colour := domain.ColourReference("")
		if g.Colour != nil {
			colour = *g.Colour
		}

		key := segKey{colour: colour, ax: start.X, ay: start.Y, bx: end.X, by: end.Y}
		if seen[key] {
			continue
		}
		seen[key] = true

		sb.Insert(colour, start, end)
	}

	for _, shape := range sb.Build() {
		if len(shape.MapPoints) < 2 {
			continue
		}
		if !builder.IncludeAABB(level, shape.MapAABB) {
			continue
		}
		shape.MapPoints = simplify.Decimate(shape.MapPoints, level, builder.Levels())
		if len(shape.MapPoints) < 2 {
			continue
		}
		shape.RecalculateAABB()

		builder.ApplyByAABB(level, shape.MapAABB, func(s *domain.Section) {
			simplify.Insert(s.MapAABB, shape, func(sub domain.Shape) {
				s.Shapes = append(s.Shapes, sub)
			})
		})
	}
	return nil
}

func convertAirports(sector *sct.Sector, builder *tile.Builder) {
	for _, ap := range sector.Airports {
		if ap.HideTag {
			continue
		}
		pos, err := sector.LookupMapPosition(ap.Position)
		if err != nil {
			continue
		}
		label := domain.Label{Text: ap.Identifier, FontSize: 8.0, MapPosition: pos}
		label.RecalculateAABB()
		for level := 0; level < builder.Levels(); level++ {
			builder.ApplyByAABB(level, label.MapAABB, func(s *domain.Section) {
				s.Labels = append(s.Labels, label)
			})
		}
	}
}

func convertRunways(sector *sct.Sector, builder *tile.Builder) {
	for _, rw := range sector.Runways {
		primaryPos, err1 := sector.LookupMapPosition(rw.PrimaryPosition)
		oppositePos, err2 := sector.LookupMapPosition(rw.OppositePosition)
		if err1 != nil || err2 != nil {
			continue
		}
		record := domain.Runway{
			Primary: domain.RunwayEnd{
				Identifier:  rw.PrimaryNumber,
				Course:      rw.PrimaryCourse,
				MapPosition: primaryPos,
				ElevationM:  rw.PrimaryElevation * domain.FeetToMetres,
			},
			Opposite: domain.RunwayEnd{
				Identifier:  rw.OppositeNumber,
				Course:      rw.OppositeCourse,
				MapPosition: oppositePos,
				ElevationM:  rw.OppositeElev * domain.FeetToMetres,
			},
		}
		aabb := geo.Extent{XMin: primaryPos.X, YMin: primaryPos.Y, XMax: oppositePos.X, YMax: oppositePos.Y}.Normalise()
		for level := 0; level < builder.Levels(); level++ {
			if !builder.IncludeAABB(level, aabb) {
				continue
			}
			builder.ApplyByAABB(level, aabb, func(s *domain.Section) {
				s.Runways = append(s.Runways, record)
			})
		}
	}
}

func convertGates(sector *sct.Sector, builder *tile.Builder) {
	for _, g := range sector.Gates {
		pos, err := sector.LookupMapPosition(g.Position)
		if err != nil {
			continue
		}
		label := domain.Label{Text: g.Identifier, FontSize: 4.0, MapPosition: pos}
		label.RecalculateAABB()
		for level := 7; level < builder.Levels(); level++ {
			builder.ApplyByAABB(level, label.MapAABB, func(s *domain.Section) {
				s.Labels = append(s.Labels, label)
			})
		}
	}
}

func convertTaxiways(sector *sct.Sector, builder *tile.Builder) {
	for _, tw := range sector.Taxiways {
		pos, err := sector.LookupMapPosition(tw.Position)
		if err != nil {
			continue
		}
		label := domain.Label{Text: tw.Identifier, FontSize: 6.0, MapPosition: pos}
		label.RecalculateAABB()
		for level := 6; level < builder.Levels(); level++ {
			builder.ApplyByAABB(level, label.MapAABB, func(s *domain.Section) {
				s.Labels = append(s.Labels, label)
			})
		}
	}
}

func convertPoints(sector *sct.Sector, builder *tile.Builder, warn Warner) {
	emit := func(name string, pos sct.StringPosition, kind domain.PointKind) {
		p, err := sector.LookupMapPosition(pos)
		if err != nil {
			warn.Warnf("point %s: %v", name, err)
			return
		}
		pt := domain.Point{Kind: kind, Name: name, MapPosition: p}
		for level := 3; level < builder.Levels(); level++ {
			aabb := geo.Extent{XMin: p.X, YMin: p.Y, XMax: p.X, YMax: p.Y}
			builder.ApplyByAABB(level, aabb, func(s *domain.Section) {
				s.Points = append(s.Points, pt)
			})
		}
	}

	for _, f := range sector.Fixes {
		emit(f.Identifier, f.Position, domain.PointKind{Fix: &domain.FixPoint{Kind: f.Kind, IsBoundary: f.Boundary}})
	}
	for _, n := range sector.NDBs {
		freq, err := domain.ParseFrequencyDigits(n.Frequency)
		if err != nil {
			warn.Warnf("NDB %s: %v", n.Identifier, err)
			continue
		}
		emit(n.Identifier, n.Position, domain.PointKind{NDB: &domain.NDBPoint{Frequency: freq}})
	}
	for _, v := range sector.VORs {
		freq, err := domain.ParseFrequencyDigits(v.Frequency)
		if err != nil {
			warn.Warnf("VOR %s: %v", v.Identifier, err)
			continue
		}
		emit(v.Identifier, v.Position, domain.PointKind{VOR: &domain.VORPoint{Frequency: freq}})
	}
	for _, vrp := range sector.VRPs {
		emit(vrp.Identifier, vrp.Position, domain.PointKind{VRP: &domain.VRPPoint{Altitude: vrp.Altitude}})
	}
}

func convertAirspaces(sector *sct.Sector, builder *tile.Builder, warn Warner) {
	emit := func(layer domain.AirspaceLayer, recs []sct.AirspaceRecord) {
		for _, rec := range recs {
			points, err := lookupAll(sector, rec.Points)
			if err != nil {
				warn.Warnf("airspace %s: %v", rec.Identifier, err)
				continue
			}
			labels := make([]domain.AirspaceLabel, 0, len(rec.Labels))
			ok := true
			for _, l := range rec.Labels {
				p, err := sector.LookupMapPosition(l.Position)
				if err != nil {
					warn.Warnf("airspace %s label: %v", rec.Identifier, err)
					ok = false
					break
				}
				fontSize := float32(4.0)
				if l.FontSize != nil {
					fontSize = *l.FontSize
				}
				labels = append(labels, domain.AirspaceLabel{MapPosition: p, FontSize: fontSize})
			}
			if !ok {
				continue
			}
			airspace := domain.Airspace{
				Identifier: rec.Identifier,
				Layer:      layer,
				MapPoints:  points,
				MapBounds:  geo.ExtentFromPoints(points),
				Labels:     labels,
			}
			for level := 3; level < builder.Levels(); level++ {
				builder.ApplyByAABB(level, airspace.MapBounds, func(s *domain.Section) {
					s.Airspaces = append(s.Airspaces, airspace)
				})
			}
		}
	}

	emit(domain.AirspaceDefault, sector.AirspacesDefault)
	emit(domain.AirspaceHigh, sector.AirspacesHigh)
	emit(domain.AirspaceLow, sector.AirspacesLow)
}

func convertAirways(sector *sct.Sector, builder *tile.Builder, warn Warner) {
	emit := func(kind domain.AirwayKind, recs []sct.AirwayRecord) {
		for _, rec := range recs {
			points, err := lookupAll(sector, rec.Points)
			if err != nil {
				warn.Warnf("airway %s: %v", rec.Identifier, err)
				continue
			}
			labels := make([]domain.AirwayLabel, 0, len(rec.Labels))
			ok := true
			for _, l := range rec.Labels {
				p, err := sector.LookupMapPosition(l)
				if err != nil {
					warn.Warnf("airway %s label: %v", rec.Identifier, err)
					ok = false
					break
				}
				labels = append(labels, domain.AirwayLabel{MapPosition: p})
			}
			if !ok {
				continue
			}
			airway := domain.Airway{
				Kind:      kind,
				Name:      rec.Identifier,
				MapPoints: points,
				MapBounds: geo.ExtentFromPoints(points),
				Labels:    labels,
			}
			for level := 3; level < builder.Levels(); level++ {
				builder.ApplyByAABB(level, airway.MapBounds, func(s *domain.Section) {
					s.Airways = append(s.Airways, airway)
				})
			}
		}
	}

	emit(domain.AirwayLow, sector.AirwaysLow)
	emit(domain.AirwayHigh, sector.AirwaysHigh)
}

func lookupAll(sector *sct.Sector, positions []sct.StringPosition) ([]geo.Point, error) {
	pts := make([]geo.Point, 0, len(positions))
	for _, pos := range positions {
		p, err := sector.LookupMapPosition(pos)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}
