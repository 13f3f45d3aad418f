// sct/sector.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sct

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmp/sectortiles/domain"
	"github.com/mmp/sectortiles/geo"
	"github.com/mmp/sectortiles/util"
)

// Info is the sector-level record parsed from the INFO section: the
// centre, display ratios, magnetic variance, and include search path.
type Info struct {
	Latitude, Longitude       float64
	VertRatio, HorizRatio     float64
	MagneticVariance          float64
	IncludeDirs               []string
}

func parseInfo(section *Section) (Info, error) {
	if section == nil || len(section.Statements) == 0 {
		return Info{}, fmt.Errorf("missing INFO section")
	}
	stmts := section.Statements
	idx := 0
	next := func(field string) (string, error) {
		if idx >= len(stmts) {
			return "", &MissingFieldError{Entity: "INFO", Field: field}
		}
		v := stmts[idx].String()
		idx++
		return v, nil
	}

	latStr, err := next("latitude")
	if err != nil {
		return Info{}, err
	}
	lat, err := ParseLatitude(latStr)
	if err != nil {
		return Info{}, &MalformedFieldError{Entity: "INFO", Field: "latitude", Value: latStr, Err: err}
	}
	lonStr, err := next("longitude")
	if err != nil {
		return Info{}, err
	}
	lon, err := ParseLongitude(lonStr)
	if err != nil {
		return Info{}, &MalformedFieldError{Entity: "INFO", Field: "longitude", Value: lonStr, Err: err}
	}

	vertStr, err := next("verticalRatio")
	if err != nil {
		return Info{}, err
	}
	vert, err := strconv.ParseFloat(vertStr, 64)
	if err != nil {
		return Info{}, &MalformedFieldError{Entity: "INFO", Field: "verticalRatio", Value: vertStr, Err: err}
	}
	horizStr, err := next("horizontalRatio")
	if err != nil {
		return Info{}, err
	}
	horiz, err := strconv.ParseFloat(horizStr, 64)
	if err != nil {
		return Info{}, &MalformedFieldError{Entity: "INFO", Field: "horizontalRatio", Value: horizStr, Err: err}
	}
	magStr, err := next("magneticVariance")
	if err != nil {
		return Info{}, err
	}
	mag, err := strconv.ParseFloat(magStr, 64)
	if err != nil {
		return Info{}, &MalformedFieldError{Entity: "INFO", Field: "magneticVariance", Value: magStr, Err: err}
	}

	var includeDirs []string
	if idx < len(stmts) {
		for _, p := range stmts[idx].Parts() {
			includeDirs = append(includeDirs, strings.ReplaceAll(p, "\\", "/"))
		}
	}

	return Info{
		Latitude: lat, Longitude: lon,
		VertRatio: vert, HorizRatio: horiz,
		MagneticVariance: mag,
		IncludeDirs:      includeDirs,
	}, nil
}

// Sector is the fully parsed, un-converted sector bundle: every recognised
// section's records, plus the palette defines and the information needed
// to resolve deferred string positions.
type Sector struct {
	Info Info

	Airports []Airport
	Runways  []RunwayRecord
	Taxiways []Taxiway
	Gates    []Gate

	Fixes []Fix
	NDBs  []NavAid
	VORs  []NavAid
	VRPs  []VRP

	Geo         []Geo
	FillColors  []FillPolygon
	AirspacesDefault, AirspacesLow, AirspacesHigh []AirspaceRecord
	AirwaysLow, AirwaysHigh                       []AirwayRecord

	// ATC is the best-effort controller-position roster; absent in most
	// community sector files.
	ATC []domain.ATC

	Palette *domain.Palette

	fixIndex map[string]geo.Point
}

// Warner receives non-fatal diagnostics; satisfied by *vlog.Logger or any
// type with a compatible Warnf method. Kept as a minimal interface here so
// this package does not depend on vlog.
type Warner interface {
	Warnf(format string, args ...interface{})
}

type nullWarner struct{}

func (nullWarner) Warnf(string, ...interface{}) {}

// errorLoggerWarner adapts a *util.ErrorLogger to the Warner interface, so
// code that only knows how to warn can still feed the hierarchy-tracking
// accumulator.
type errorLoggerWarner struct{ elog *util.ErrorLogger }

func (w errorLoggerWarner) Warnf(format string, args ...interface{}) {
	w.elog.Errorf(format, args...)
}

// Parse reads and fully parses the sector bundle rooted at rootPath,
// including per-airport satellite files. Structural errors (bad INFO,
// bad includes, bad palette defines) are returned immediately; per-record
// parse failures within list-valued sections are accumulated through a
// util.ErrorLogger, tagged with the section (and, for satellite files, the
// airport) they occurred in, then flushed to warn once parsing completes.
func Parse(source FileSource, rootPath string, warn Warner) (*Sector, error) {
	if warn == nil {
		warn = nullWarner{}
	}
	elog := &util.ErrorLogger{}
	elog.Push(rootPath)

	data, err := source.ReadFile(rootPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rootPath, err)
	}
	if data == nil {
		return nil, fmt.Errorf("missing root file: %s", rootPath)
	}
	root, err := ParseFile(rootPath, data)
	if err != nil {
		return nil, err
	}

	info, err := parseInfo(root.Section("INFO"))
	if err != nil {
		return nil, err
	}

	sec := &Sector{Info: info, Palette: domain.NewPalette()}

	if err := sec.parseDefines(source, root); err != nil {
		return nil, err
	}

	var err2 error
	if sec.Airports, err2 = parseList(source, root, "AIRPORT", info.IncludeDirs, elog, "AIRPORT", ParseAirport); err2 != nil {
		return nil, err2
	}
	if sec.Runways, err2 = parseList(source, root, "RUNWAY", info.IncludeDirs, elog, "RUNWAY", ParseRunway); err2 != nil {
		return nil, err2
	}
	if sec.Taxiways, err2 = parseList(source, root, "TAXIWAY", info.IncludeDirs, elog, "TAXIWAY", ParseTaxiway); err2 != nil {
		return nil, err2
	}
	if sec.Gates, err2 = parseList(source, root, "GATES", info.IncludeDirs, elog, "GATES", ParseGate); err2 != nil {
		return nil, err2
	}
	if sec.Fixes, err2 = parseList(source, root, "FIXES", info.IncludeDirs, elog, "FIXES", ParseFix); err2 != nil {
		return nil, err2
	}
	if sec.NDBs, err2 = parseList(source, root, "NDB", info.IncludeDirs, elog, "NDB", ParseNDB); err2 != nil {
		return nil, err2
	}
	if sec.VORs, err2 = parseList(source, root, "VOR", info.IncludeDirs, elog, "VOR", ParseVOR); err2 != nil {
		return nil, err2
	}
	if sec.VRPs, err2 = parseList(source, root, "VFRFIX", info.IncludeDirs, elog, "VFRFIX", ParseVRP); err2 != nil {
		return nil, err2
	}
	if sec.Geo, err2 = parseList(source, root, "GEO", info.IncludeDirs, elog, "GEO", ParseGeo); err2 != nil {
		return nil, err2
	}
	elog.Push("GEO")
	for _, g := range sec.Geo {
		if g.Trailing != "" {
			elog.Errorf("unexpected trailing field %q", g.Trailing)
		}
	}
	elog.Pop()
	if sec.ATC, err2 = parseList(source, root, "ATC", info.IncludeDirs, elog, "ATC", ParseATC); err2 != nil {
		return nil, err2
	}

	fillStatements, err2 := sectionStatements(source, root, "FILLCOLOR", info.IncludeDirs)
	if err2 != nil {
		return nil, err2
	}
	fills, ferrs := ParseFillPolygons(fillStatements)
	elog.Push("FILLCOLOR")
	for _, e := range ferrs {
		elog.Error(e)
	}
	elog.Pop()
	sec.FillColors = fills

	if sec.AirspacesDefault, err2 = parseGrouped(source, root, "AIRSPACE", info.IncludeDirs, elog, "AIRSPACE", ParseAirspaces); err2 != nil {
		return nil, err2
	}
	extra, err2 := parseGrouped(source, root, "ARTCC", info.IncludeDirs, elog, "ARTCC", ParseAirspaces)
	if err2 != nil {
		return nil, err2
	}
	sec.AirspacesDefault = append(sec.AirspacesDefault, extra...)

	if sec.AirspacesHigh, err2 = parseGrouped(source, root, "AIRSPACE_HIGH", info.IncludeDirs, elog, "AIRSPACE_HIGH", ParseAirspaces); err2 != nil {
		return nil, err2
	}
	extraHigh, err2 := parseGrouped(source, root, "ARTCC_HIGH", info.IncludeDirs, elog, "ARTCC_HIGH", ParseAirspaces)
	if err2 != nil {
		return nil, err2
	}
	sec.AirspacesHigh = append(sec.AirspacesHigh, extraHigh...)

	// The Low layer reads AIRSPACE_LOW/ARTCC_LOW, not the High sections: a
	// variant observed in the wild swaps these, which is a bug.
	if sec.AirspacesLow, err2 = parseGrouped(source, root, "AIRSPACE_LOW", info.IncludeDirs, elog, "AIRSPACE_LOW", ParseAirspaces); err2 != nil {
		return nil, err2
	}
	extraLow, err2 := parseGrouped(source, root, "ARTCC_LOW", info.IncludeDirs, elog, "ARTCC_LOW", ParseAirspaces)
	if err2 != nil {
		return nil, err2
	}
	sec.AirspacesLow = append(sec.AirspacesLow, extraLow...)

	if sec.AirwaysLow, err2 = parseGrouped(source, root, "LOW AIRWAY", info.IncludeDirs, elog, "LOW AIRWAY", ParseAirways); err2 != nil {
		return nil, err2
	}
	if sec.AirwaysHigh, err2 = parseGrouped(source, root, "HIGH AIRWAY", info.IncludeDirs, elog, "HIGH AIRWAY", ParseAirways); err2 != nil {
		return nil, err2
	}

	if err2 = sec.loadSatelliteFiles(source, elog); err2 != nil {
		return nil, err2
	}
	elog.Push("fixIndex")
	sec.buildFixIndex(errorLoggerWarner{elog})
	elog.Pop()

	for _, msg := range elog.Errors() {
		warn.Warnf("%s", msg)
	}

	return sec, nil
}

func (sec *Sector) parseDefines(source FileSource, root *File) error {
	statements, err := sectionStatements(source, root, "DEFINE", sec.Info.IncludeDirs)
	if err != nil {
		return err
	}
	for _, s := range statements {
		parts := s.Parts()
		if len(parts) < 2 {
			return &MissingFieldError{Entity: "DEFINE", Field: "colour"}
		}
		name := parts[0]
		c, err := ParseColour(parts[1])
		if err != nil {
			return &MalformedFieldError{Entity: "DEFINE", Field: "colour", Value: parts[1], Err: err}
		}
		if !c.IsValue() {
			return &BadPaletteError{Name: name}
		}
		sec.Palette.Define(name, c.Value)
	}
	return nil
}

// sectionStatements fully expands a section's statements (including
// includes) into a flat slice. Include-expansion errors (missing include,
// bad include) are structural and fatal, matching the propagation policy
// for Syntax/BadInclude/MissingInclude/BadPalette.
func sectionStatements(source FileSource, root *File, name string, includeDirs []string) ([]Statement, error) {
	section := root.Section(name)
	if section == nil {
		return nil, nil
	}
	it := NewStatementIter(source, section, includeDirs)
	var out []Statement
	for {
		s, err, ok := it.Next()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if !ok {
			break
		}
		out = append(out, s)
	}
	return out, nil
}

// parseList expands a list-valued section and applies parse to each
// statement, accumulating a warning in elog (tagged with entity) and
// dropping any record that fails to parse. Include-expansion failures are
// fatal and returned immediately.
func parseList[T any](source FileSource, root *File, name string, includeDirs []string, elog *util.ErrorLogger, entity string, parse func(Statement) (T, error)) ([]T, error) {
	statements, err := sectionStatements(source, root, name, includeDirs)
	if err != nil {
		return nil, err
	}
	elog.Push(entity)
	defer elog.Pop()
	result := make([]T, 0, len(statements))
	for _, s := range statements {
		v, err := parse(s)
		if err != nil {
			elog.Error(err)
			continue
		}
		result = append(result, v)
	}
	return result, nil
}

// parseGrouped expands a section and feeds its full statement slice to a
// grouping parser (airspaces, airways) that reports per-record errors
// itself; those are accumulated in elog, tagged with entity.
// Include-expansion failures are fatal and returned immediately.
func parseGrouped[T any](source FileSource, root *File, name string, includeDirs []string, elog *util.ErrorLogger, entity string, parse func([]Statement) ([]T, []error)) ([]T, error) {
	statements, err := sectionStatements(source, root, name, includeDirs)
	if err != nil {
		return nil, err
	}
	result, errs := parse(statements)
	elog.Push(entity)
	for _, e := range errs {
		elog.Error(e)
	}
	elog.Pop()
	return result, nil
}

// loadSatelliteFiles loads each airport's IDENT.tfl/.vfi/.txi/.gts files.
// A missing satellite file is tolerated silently, per §4.9's explicit
// carve-out; any other resolution failure (e.g. a malformed include
// structure) is accumulated in elog rather than propagated, since a single
// airport's optional satellite data should not abort the whole bundle's
// conversion. Malformed individual statements within a loaded file are
// likewise accumulated and skipped.
func (sec *Sector) loadSatelliteFiles(source FileSource, elog *util.ErrorLogger) error {
	resolver := newIncludeResolver(source)
	for _, ap := range sec.Airports {
		elog.Push(ap.Identifier)
		if stmts, ok := loadSatellite(resolver, sec.Info.IncludeDirs, ap.Identifier+".tfl", elog); ok {
			fills, errs := ParseFillPolygons(stmts)
			elog.Push("tfl")
			for _, e := range errs {
				elog.Error(e)
			}
			elog.Pop()
			sec.FillColors = append(sec.FillColors, fills...)
		}
		if stmts, ok := loadSatellite(resolver, sec.Info.IncludeDirs, ap.Identifier+".vfi", elog); ok {
			elog.Push("vfi")
			for _, s := range stmts {
				v, err := ParseVRP(s)
				if err != nil {
					elog.Error(err)
					continue
				}
				sec.VRPs = append(sec.VRPs, v)
			}
			elog.Pop()
		}
		if stmts, ok := loadSatellite(resolver, sec.Info.IncludeDirs, ap.Identifier+".txi", elog); ok {
			elog.Push("txi")
			for _, s := range stmts {
				tw, err := ParseTaxiway(s)
				if err != nil {
					elog.Error(err)
					continue
				}
				sec.Taxiways = append(sec.Taxiways, tw)
			}
			elog.Pop()
		}
		if stmts, ok := loadSatellite(resolver, sec.Info.IncludeDirs, ap.Identifier+".gts", elog); ok {
			elog.Push("gts")
			for _, s := range stmts {
				g, err := ParseGate(s)
				if err != nil {
					elog.Error(err)
					continue
				}
				sec.Gates = append(sec.Gates, g)
			}
			elog.Pop()
		}
		elog.Pop()
	}
	return nil
}

// loadSatellite resolves one optional satellite file via the same
// include-search path as "F" directives. A missing file is not an error;
// any other resolution failure is accumulated in elog and treated as
// absent.
func loadSatellite(resolver *includeResolver, includeDirs []string, name string, elog *util.ErrorLogger) ([]Statement, bool) {
	stmts, err := resolver.resolve(name, includeDirs)
	if err != nil {
		if _, ok := err.(*MissingIncludeError); !ok {
			elog.Errorf("%s: %v", name, err)
		}
		return nil, false
	}
	return stmts, true
}

// buildFixIndex builds the name -> map-position cross-reference from every
// named fix/NDB/VOR/VRP, used to resolve later statements that reference an
// earlier-declared fix by name instead of by coordinate. On a name
// collision the first entry wins.
func (sec *Sector) buildFixIndex(warn Warner) {
	sec.fixIndex = make(map[string]geo.Point)
	add := func(name string, lat, lon string) {
		if _, exists := sec.fixIndex[name]; exists {
			warn.Warnf("duplicate fix name %q, keeping first definition", name)
			return
		}
		la, err1 := ParseLatitude(lat)
		lo, err2 := ParseLongitude(lon)
		if err1 != nil || err2 != nil {
			return
		}
		sec.fixIndex[name] = geo.GeoToMap(la, lo)
	}
	for _, f := range sec.Fixes {
		add(f.Identifier, f.Position.Latitude, f.Position.Longitude)
	}
	for _, n := range sec.NDBs {
		add(n.Identifier, n.Position.Latitude, n.Position.Longitude)
	}
	for _, v := range sec.VORs {
		add(v.Identifier, v.Position.Latitude, v.Position.Longitude)
	}
	for _, v := range sec.VRPs {
		add(v.Identifier, v.Position.Latitude, v.Position.Longitude)
	}
}

// LookupMapPosition resolves a deferred (latitude, longitude) field pair:
// the fix cross-reference is consulted first by treating the latitude
// field as a fix name; on miss, both fields are parsed as coordinates.
func (sec *Sector) LookupMapPosition(pos StringPosition) (geo.Point, error) {
	if p, ok := sec.fixIndex[pos.Latitude]; ok {
		return p, nil
	}
	lat, err := ParseLatitude(pos.Latitude)
	if err != nil {
		return geo.Point{}, err
	}
	lon, err := ParseLongitude(pos.Longitude)
	if err != nil {
		return geo.Point{}, err
	}
	return geo.GeoToMap(lat, lon), nil
}
