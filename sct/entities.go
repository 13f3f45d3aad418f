// sct/entities.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sct

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmp/sectortiles/domain"
)

// StringPosition is a deferred (latitude, longitude) pair: the raw field
// text, resolved to map coordinates later via the fix cross-reference.
type StringPosition struct {
	Latitude, Longitude string
}

func parseStringPosition(parts []string, idx *int) (StringPosition, error) {
	lat, err := nextPart(parts, idx, "latitude")
	if err != nil {
		return StringPosition{}, err
	}
	lon, err := nextPart(parts, idx, "longitude")
	if err != nil {
		return StringPosition{}, err
	}
	return StringPosition{Latitude: lat, Longitude: lon}, nil
}

func nextPart(parts []string, idx *int, field string) (string, error) {
	if *idx >= len(parts) {
		return "", &MissingFieldError{Field: field}
	}
	v := parts[*idx]
	*idx++
	return v, nil
}

// Airport is the parsed AIRPORT record.
type Airport struct {
	Identifier         string
	Elevation          float64
	TransitionAltitude *float64
	Position           StringPosition
	Name               string
	HideTag            bool
}

func ParseAirport(s Statement) (Airport, error) {
	parts := s.Parts()
	i := 0
	identifier, err := nextPart(parts, &i, "identifier")
	if err != nil {
		return Airport{}, err
	}
	elevStr, err := nextPart(parts, &i, "elevation")
	if err != nil {
		return Airport{}, err
	}
	elev, err := strconv.ParseFloat(elevStr, 64)
	if err != nil {
		return Airport{}, &MalformedFieldError{Entity: "AIRPORT", Field: "elevation", Value: elevStr, Err: err}
	}
	var transAlt *float64
	if i < len(parts) {
		taStr := parts[i]
		i++
		if taStr != "" {
			v, err := strconv.ParseFloat(taStr, 64)
			if err != nil {
				return Airport{}, &MalformedFieldError{Entity: "AIRPORT", Field: "transitionAltitude", Value: taStr, Err: err}
			}
			transAlt = &v
		}
	}
	pos, err := parseStringPosition(parts, &i)
	if err != nil {
		return Airport{}, err
	}
	name := ""
	if i < len(parts) {
		name = parts[i]
		i++
	}
	hide := i < len(parts) && parts[i] == "1"

	return Airport{
		Identifier:         identifier,
		Elevation:          elev,
		TransitionAltitude: transAlt,
		Position:           pos,
		Name:               name,
		HideTag:            hide,
	}, nil
}

// RunwayRecord is the parsed RUNWAY record.
type RunwayRecord struct {
	Airport                           string
	PrimaryNumber, OppositeNumber     string
	PrimaryElevation, OppositeElev    float32
	PrimaryCourse, OppositeCourse     float32
	PrimaryPosition, OppositePosition StringPosition
}

func ParseRunway(s Statement) (RunwayRecord, error) {
	parts := s.Parts()
	i := 0
	get := func(field string) (string, error) { return nextPart(parts, &i, field) }
	getF32 := func(field string) (float32, error) {
		v, err := get(field)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return 0, &MalformedFieldError{Entity: "RUNWAY", Field: field, Value: v, Err: err}
		}
		return float32(f), nil
	}

	airport, err := get("airport")
	if err != nil {
		return RunwayRecord{}, err
	}
	primaryNumber, err := get("primaryNumber")
	if err != nil {
		return RunwayRecord{}, err
	}
	oppositeNumber, err := get("oppositeNumber")
	if err != nil {
		return RunwayRecord{}, err
	}
	primaryElevation, err := getF32("primaryElevation")
	if err != nil {
		return RunwayRecord{}, err
	}
	oppositeElevation, err := getF32("oppositeElevation")
	if err != nil {
		return RunwayRecord{}, err
	}
	primaryCourse, err := getF32("primaryCourse")
	if err != nil {
		return RunwayRecord{}, err
	}
	oppositeCourse, err := getF32("oppositeCourse")
	if err != nil {
		return RunwayRecord{}, err
	}
	primaryPos, err := parseStringPosition(parts, &i)
	if err != nil {
		return RunwayRecord{}, err
	}
	oppositePos, err := parseStringPosition(parts, &i)
	if err != nil {
		return RunwayRecord{}, err
	}

	return RunwayRecord{
		Airport:           airport,
		PrimaryNumber:     primaryNumber,
		OppositeNumber:    oppositeNumber,
		PrimaryElevation:  primaryElevation,
		OppositeElev:      oppositeElevation,
		PrimaryCourse:     primaryCourse,
		OppositeCourse:    oppositeCourse,
		PrimaryPosition:   primaryPos,
		OppositePosition:  oppositePos,
	}, nil
}

// Taxiway is a named label anchored at a position, optionally scoped to an
// airport.
type Taxiway struct {
	Identifier string
	Airport    string
	Position   StringPosition
}

func ParseTaxiway(s Statement) (Taxiway, error) {
	parts := s.Parts()
	i := 0
	identifier, err := nextPart(parts, &i, "identifier")
	if err != nil {
		return Taxiway{}, err
	}
	airport := ""
	if len(parts) > 3 {
		airport, err = nextPart(parts, &i, "airport")
		if err != nil {
			return Taxiway{}, err
		}
	}
	pos, err := parseStringPosition(parts, &i)
	if err != nil {
		return Taxiway{}, err
	}
	return Taxiway{Identifier: identifier, Airport: airport, Position: pos}, nil
}

// Gate is a named label anchored at a position within an airport.
type Gate struct {
	Identifier string
	Airport    string
	Position   StringPosition
	GateType   string
}

func ParseGate(s Statement) (Gate, error) {
	parts := s.Parts()
	i := 0
	identifier, err := nextPart(parts, &i, "identifier")
	if err != nil {
		return Gate{}, err
	}
	airport, err := nextPart(parts, &i, "airport")
	if err != nil {
		return Gate{}, err
	}
	pos, err := parseStringPosition(parts, &i)
	if err != nil {
		return Gate{}, err
	}
	gateType := ""
	if i < len(parts) {
		gateType = parts[i]
	}
	return Gate{Identifier: identifier, Airport: airport, Position: pos, GateType: gateType}, nil
}

// Fix is the parsed FIXES record.
type Fix struct {
	Identifier string
	Position   StringPosition
	Kind       domain.FixKind
	Boundary   bool
}

func ParseFix(s Statement) (Fix, error) {
	parts := s.Parts()
	i := 0
	identifier, err := nextPart(parts, &i, "identifier")
	if err != nil {
		return Fix{}, err
	}
	pos, err := parseStringPosition(parts, &i)
	if err != nil {
		return Fix{}, err
	}
	kind := domain.FixHidden
	if i < len(parts) && parts[i] != "" {
		v, err := strconv.Atoi(parts[i])
		if err != nil || v < 0 || v > 3 {
			return Fix{}, &MalformedFieldError{Entity: "FIXES", Field: "kind", Value: parts[i], Err: fmt.Errorf("invalid fix kind")}
		}
		kind = domain.FixKind(v)
	}
	i++
	boundary := i < len(parts) && parts[i] == "1"

	return Fix{Identifier: identifier, Position: pos, Kind: kind, Boundary: boundary}, nil
}

// NavAid is the shared shape of NDB and VOR records.
type NavAid struct {
	Identifier string
	Frequency  string
	Position   StringPosition
}

func parseNavAid(entity string, s Statement) (NavAid, error) {
	parts := s.Parts()
	i := 0
	identifier, err := nextPart(parts, &i, "identifier")
	if err != nil {
		return NavAid{}, err
	}
	freq, err := nextPart(parts, &i, "frequency")
	if err != nil {
		return NavAid{}, err
	}
	pos, err := parseStringPosition(parts, &i)
	if err != nil {
		return NavAid{}, err
	}
	return NavAid{Identifier: identifier, Frequency: freq, Position: pos}, nil
}

func ParseNDB(s Statement) (NavAid, error) { return parseNavAid("NDB", s) }
func ParseVOR(s Statement) (NavAid, error) { return parseNavAid("VOR", s) }

// VRP is the parsed VFRFIX record; altitude is an optional (min,max) band.
type VRP struct {
	Identifier string
	Altitude   *[2]float32
	Position   StringPosition
}

func ParseVRP(s Statement) (VRP, error) {
	parts := s.Parts()
	i := 0
	identifier, err := nextPart(parts, &i, "identifier")
	if err != nil {
		return VRP{}, err
	}
	var altitude *[2]float32
	if i < len(parts) && parts[i] != "" {
		rng, err := parseAltitudeRange(parts[i])
		if err != nil {
			return VRP{}, &MalformedFieldError{Entity: "VFRFIX", Field: "altitude", Value: parts[i], Err: err}
		}
		altitude = &rng
	}
	i++
	pos, err := parseStringPosition(parts, &i)
	if err != nil {
		return VRP{}, err
	}
	return VRP{Identifier: identifier, Altitude: altitude, Position: pos}, nil
}

func parseAltitudeRange(s string) ([2]float32, error) {
	if dash := strings.IndexByte(s, '-'); dash >= 0 {
		min, err1 := strconv.ParseFloat(strings.TrimSpace(s[:dash]), 32)
		max, err2 := strconv.ParseFloat(strings.TrimSpace(s[dash+1:]), 32)
		if err1 != nil || err2 != nil {
			return [2]float32{}, fmt.Errorf("invalid altitude range %q", s)
		}
		return [2]float32{float32(min), float32(max)}, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return [2]float32{}, fmt.Errorf("invalid altitude %q", s)
	}
	return [2]float32{float32(v), float32(v)}, nil
}

// Geo is a single directed, optionally coloured line segment from the GEO
// section.
type Geo struct {
	Start, End StringPosition
	Colour     *domain.Colour
	// Trailing holds the first field beyond what GEO defines, if any, so
	// callers with access to a logger can warn about it.
	Trailing string
}

func ParseGeo(s Statement) (Geo, error) {
	parts := s.Parts()
	i := 0
	startLat, err := nextPart(parts, &i, "latitude")
	if err != nil {
		return Geo{}, err
	}
	startLon, err := nextPart(parts, &i, "longitude")
	if err != nil {
		return Geo{}, err
	}
	endLat, err := nextPart(parts, &i, "latitude")
	if err != nil {
		return Geo{}, err
	}
	endLon, err := nextPart(parts, &i, "longitude")
	if err != nil {
		return Geo{}, err
	}

	var colour *domain.Colour
	if i < len(parts) && parts[i] != "" {
		c, err := ParseColour(parts[i])
		if err != nil {
			return Geo{}, &MalformedFieldError{Entity: "GEO", Field: "colour", Value: parts[i], Err: err}
		}
		colour = &c
	}

	var trailing string
	if i+1 < len(parts) {
		trailing = parts[i+1]
	}

	return Geo{
		Start:    StringPosition{Latitude: startLat, Longitude: startLon},
		End:      StringPosition{Latitude: endLat, Longitude: endLon},
		Colour:   colour,
		Trailing: trailing,
	}, nil
}

// FillPolygon is a named, styled multi-point polygon assembled from a
// header statement followed by (lat,lon) point statements.
type FillPolygon struct {
	Name         string
	FillColour   domain.Colour
	StrokeColour domain.Colour
	StrokeWidth  float32
	Points       []StringPosition
}

// ParseFillPolygons groups a flat statement stream into FillPolygon
// records: a statement with >=4 parts is a new header; one with fewer
// parts is a point belonging to the most recently opened header.
func ParseFillPolygons(statements []Statement) ([]FillPolygon, []error) {
	var result []FillPolygon
	var warnings []error
	var current *FillPolygon

	for _, s := range statements {
		parts := s.Parts()
		if len(parts) >= 4 {
			name := parts[0]
			fillColour, err := ParseColour(parts[1])
			if err != nil {
				warnings = append(warnings, &MalformedFieldError{Entity: "FILLCOLOR", Field: "fillColour", Value: parts[1], Err: err})
				current = nil
				continue
			}
			strokeColour := fillColour
			if parts[2] != "" {
				strokeColour, err = ParseColour(parts[2])
				if err != nil {
					warnings = append(warnings, &MalformedFieldError{Entity: "FILLCOLOR", Field: "strokeColour", Value: parts[2], Err: err})
					current = nil
					continue
				}
			}
			strokeWidth := float32(1.0)
			if parts[3] != "" {
				v, err := strconv.ParseFloat(parts[3], 32)
				if err != nil {
					warnings = append(warnings, &MalformedFieldError{Entity: "FILLCOLOR", Field: "strokeWidth", Value: parts[3], Err: err})
					current = nil
					continue
				}
				strokeWidth = float32(v)
			}
			result = append(result, FillPolygon{
				Name:         name,
				FillColour:   fillColour,
				StrokeColour: strokeColour,
				StrokeWidth:  strokeWidth,
			})
			current = &result[len(result)-1]
			continue
		}

		if current == nil {
			warnings = append(warnings, fmt.Errorf("FILLCOLOR: point statement with no open polygon: %s", s.String()))
			continue
		}
		if len(parts) < 2 {
			warnings = append(warnings, &MissingFieldError{Entity: "FILLCOLOR", Field: "longitude"})
			continue
		}
		current.Points = append(current.Points, StringPosition{Latitude: parts[0], Longitude: parts[1]})
	}

	return result, warnings
}

// ParseATC parses one ATC roster statement:
// "CALLSIGN;FREQUENCY;ALLOW1,ALLOW2;DENY1". The allow/deny fields are
// optional and comma-separated.
func ParseATC(s Statement) (domain.ATC, error) {
	parts := s.Parts()
	i := 0
	position, err := nextPart(parts, &i, "position")
	if err != nil {
		return domain.ATC{}, err
	}
	freqStr, err := nextPart(parts, &i, "frequency")
	if err != nil {
		return domain.ATC{}, err
	}
	freq, err := domain.ParseFrequencyDigits(freqStr)
	if err != nil {
		return domain.ATC{}, &MalformedFieldError{Entity: "ATC", Field: "frequency", Value: freqStr, Err: err}
	}
	var allow, deny []string
	if i < len(parts) && parts[i] != "" {
		allow = strings.Split(parts[i], ",")
	}
	i++
	if i < len(parts) && parts[i] != "" {
		deny = strings.Split(parts[i], ",")
	}
	return domain.ATC{Position: position, Frequency: freq, TransferAllow: allow, TransferDeny: deny}, nil
}

// AirspaceLabelRecord is a labelled position within an AIRSPACE polygon,
// with an optional font size. Airway labels are plain StringPositions.
type AirspaceLabelRecord struct {
	Position StringPosition
	FontSize *float32
}

// AirspaceRecord groups the outline points and labels of a single named
// airspace.
type AirspaceRecord struct {
	Identifier string
	Points     []StringPosition
	Labels     []AirspaceLabelRecord
}

// AirwayRecord groups the outline points and labels of a single named
// airway.
type AirwayRecord struct {
	Identifier string
	Points     []StringPosition
	Labels     []StringPosition
}

// ParseAirspaces groups a flat T/L-tagged statement stream by identifier.
func ParseAirspaces(statements []Statement) ([]AirspaceRecord, []error) {
	order := make([]string, 0)
	byID := make(map[string]*AirspaceRecord)
	var warnings []error

	for _, s := range statements {
		parts := s.Parts()
		if len(parts) == 0 {
			warnings = append(warnings, fmt.Errorf("AIRSPACE: empty statement"))
			continue
		}
		typeField := parts[0]
		isLabel := typeField == "L" || typeField == "l"
		if !isLabel && typeField != "T" && typeField != "t" {
			warnings = append(warnings, fmt.Errorf("AIRSPACE: unexpected field type %q", typeField))
			continue
		}
		if len(parts) < 2 {
			warnings = append(warnings, &MissingFieldError{Entity: "AIRSPACE", Field: "identifier"})
			continue
		}
		identifier := parts[1]
		i := 2
		pos, err := parseStringPosition(parts, &i)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}

		rec, ok := byID[identifier]
		if !ok {
			rec = &AirspaceRecord{Identifier: identifier}
			byID[identifier] = rec
			order = append(order, identifier)
		}

		if isLabel {
			var fontSize *float32
			if i < len(parts) {
				if v, err := strconv.ParseFloat(parts[i], 32); err == nil {
					f := float32(v)
					fontSize = &f
				}
			}
			rec.Labels = append(rec.Labels, AirspaceLabelRecord{Position: pos, FontSize: fontSize})
		} else {
			rec.Points = append(rec.Points, pos)
		}
	}

	result := make([]AirspaceRecord, 0, len(order))
	for _, id := range order {
		result = append(result, *byID[id])
	}
	return result, warnings
}

// ParseAirways groups a flat T/L-tagged statement stream by identifier.
func ParseAirways(statements []Statement) ([]AirwayRecord, []error) {
	order := make([]string, 0)
	byID := make(map[string]*AirwayRecord)
	var warnings []error

	for _, s := range statements {
		parts := s.Parts()
		if len(parts) == 0 {
			warnings = append(warnings, fmt.Errorf("AIRWAY: empty statement"))
			continue
		}
		typeField := parts[0]
		isLabel := typeField == "L" || typeField == "l"
		if !isLabel && typeField != "T" && typeField != "t" {
			warnings = append(warnings, fmt.Errorf("AIRWAY: unexpected field type %q", typeField))
			continue
		}
		if len(parts) < 2 {
			warnings = append(warnings, &MissingFieldError{Entity: "AIRWAY", Field: "identifier"})
			continue
		}
		identifier := parts[1]
		i := 2
		pos, err := parseStringPosition(parts, &i)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}

		rec, ok := byID[identifier]
		if !ok {
			rec = &AirwayRecord{Identifier: identifier}
			byID[identifier] = rec
			order = append(order, identifier)
		}

		if isLabel {
			rec.Labels = append(rec.Labels, pos)
		} else {
			rec.Points = append(rec.Points, pos)
		}
	}

	result := make([]AirwayRecord, 0, len(order))
	for _, id := range order {
		result = append(result, *byID[id])
	}
	return result, warnings
}
