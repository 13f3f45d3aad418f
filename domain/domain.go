// domain/domain.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package domain holds the output data model for the tiled vector map:
// palettes, colours, points, airports, runways, airways, airspaces, and the
// per-tile Section records that the output driver serializes.
package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmp/sectortiles/geo"
	"github.com/mmp/sectortiles/util"
)

// Palette maps a colour name to a packed 24-bit RGB value, preserving the
// order definitions were encountered in the DEFINE section so re-emitted
// JSON diffs cleanly against the source sector file.
type Palette struct {
	entries *util.OrderedMap
}

func NewPalette() *Palette {
	return &Palette{entries: util.NewOrderedMap()}
}

func (p *Palette) Define(name string, rgb uint32) {
	p.entries.Set(strings.ToUpper(name), rgb)
}

// Lookup returns the RGB value defined for name, if any. It tolerates a
// prior JSON round trip, where the value decodes as a float64.
func (p *Palette) Lookup(name string) (uint32, bool) {
	v, ok := p.entries.Get(strings.ToUpper(name))
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case uint32:
		return n, true
	case float64:
		return uint32(n), true
	default:
		return 0, false
	}
}

// Keys returns the defined colour names in definition order.
func (p *Palette) Keys() []string {
	return p.entries.Keys()
}

func (p *Palette) MarshalJSON() ([]byte, error) {
	if p.entries == nil {
		return []byte("{}"), nil
	}
	return p.entries.MarshalJSON()
}

func (p *Palette) UnmarshalJSON(b []byte) error {
	p.entries = util.NewOrderedMap()
	return p.entries.UnmarshalJSON(b)
}

// Colour is either a named reference into a Palette or a literal packed RGB
// value.
type Colour struct {
	Reference string
	Value     uint32
	isValue   bool
}

func ColourReference(name string) Colour { return Colour{Reference: strings.ToUpper(name)} }
func ColourValue(rgb uint32) Colour      { return Colour{Value: rgb, isValue: true} }

func (c Colour) IsValue() bool { return c.isValue }

func (c Colour) MarshalJSON() ([]byte, error) {
	if c.isValue {
		return json.Marshal(c.Value)
	}
	return json.Marshal(c.Reference)
}

func (c *Colour) UnmarshalJSON(b []byte) error {
	var n uint32
	if err := json.Unmarshal(b, &n); err == nil {
		*c = ColourValue(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("colour: %w", err)
	}
	*c = ColourReference(s)
	return nil
}

// FixKind classifies a FIX point.
type FixKind int

const (
	FixEnroute FixKind = iota
	FixTerminal
	FixBoth
	FixHidden
)

func (k FixKind) MarshalJSON() ([]byte, error) {
	names := [...]string{"enroute", "terminal", "both", "hidden"}
	if int(k) < 0 || int(k) >= len(names) {
		return nil, fmt.Errorf("invalid fix kind %d", k)
	}
	return json.Marshal(names[k])
}

// PointKind is the tagged union of the four named-point record shapes.
type PointKind struct {
	Fix *FixPoint `json:"fix,omitempty"`
	VOR *VORPoint `json:"vor,omitempty"`
	NDB *NDBPoint `json:"ndb,omitempty"`
	VRP *VRPPoint `json:"vrp,omitempty"`
}

type FixPoint struct {
	Kind       FixKind `json:"kind"`
	IsBoundary bool    `json:"isBoundary"`
}

// VORPoint and NDBPoint carry frequency in 10 kHz units.
type VORPoint struct {
	Frequency uint16 `json:"frequency"`
}

type NDBPoint struct {
	Frequency uint16 `json:"frequency"`
}

// VRPPoint optionally carries a (min,max) altitude band in feet.
type VRPPoint struct {
	Altitude *[2]float32 `json:"altitude,omitempty"`
}

// Point is a single named location rendered on the map: a fix, VOR, NDB, or
// VRP.
type Point struct {
	Kind        PointKind `json:"kind"`
	Name        string    `json:"name"`
	MapPosition geo.Point `json:"mapPosition"`
}

// Airport is a named aerodrome.
type Airport struct {
	Identifier         string    `json:"identifier"`
	Elevation          float64   `json:"elevation"`
	TransitionAltitude *float64  `json:"transitionAltitude,omitempty"`
	MapPosition        geo.Point `json:"mapPosition"`
	Name               string    `json:"name"`
	HideTag            bool      `json:"hideTag"`
}

// RunwayEnd is one physical end of a runway.
type RunwayEnd struct {
	Identifier  string    `json:"identifier"`
	Course      float32   `json:"course"`
	MapPosition geo.Point `json:"mapPosition"`
	ElevationM  float32   `json:"elevationM"`
}

// FeetToMetres converts feet to metres, the conversion factor used for
// runway elevations.
const FeetToMetres = 0.3048

type Runway struct {
	Primary  RunwayEnd `json:"primary"`
	Opposite RunwayEnd `json:"opposite"`
}

type AirwayKind int

const (
	AirwayLow AirwayKind = iota
	AirwayHigh
)

func (k AirwayKind) MarshalJSON() ([]byte, error) {
	if k == AirwayLow {
		return json.Marshal("low")
	}
	return json.Marshal("high")
}

type AirwayLabel struct {
	MapPosition geo.Point `json:"mapPosition"`
}

type Airway struct {
	Kind        AirwayKind    `json:"kind"`
	Name        string        `json:"name"`
	MapPoints   []geo.Point   `json:"mapPoints"`
	MapBounds   geo.Extent    `json:"mapBounds"`
	Labels      []AirwayLabel `json:"labels"`
}

type AirspaceLayer int

const (
	AirspaceDefault AirspaceLayer = iota
	AirspaceLow
	AirspaceHigh
)

func (l AirspaceLayer) MarshalJSON() ([]byte, error) {
	names := [...]string{"default", "low", "high"}
	return json.Marshal(names[l])
}

type AirspaceLabel struct {
	MapPosition geo.Point `json:"mapPosition"`
	FontSize    float32   `json:"fontSize"`
}

type Airspace struct {
	Identifier string          `json:"identifier"`
	Layer      AirspaceLayer   `json:"layer"`
	MapPoints  []geo.Point     `json:"mapPoints"`
	MapBounds  geo.Extent      `json:"mapBounds"`
	Labels     []AirspaceLabel `json:"labels"`
}

// LayerFilterOpKind is the operator of a single postfix LayerFilter term.
type LayerFilterOpKind int

const (
	FilterNot LayerFilterOpKind = iota
	FilterAnd
	FilterOr
	FilterLayer
)

type LayerFilterOp struct {
	Kind  LayerFilterOpKind
	Layer string // only meaningful when Kind == FilterLayer
}

func (op LayerFilterOp) MarshalJSON() ([]byte, error) {
	switch op.Kind {
	case FilterNot:
		return json.Marshal("!")
	case FilterAnd:
		return json.Marshal("&")
	case FilterOr:
		return json.Marshal("|")
	default:
		return json.Marshal("#" + op.Layer)
	}
}

// LayerFilter is a small postfix boolean expression over named layers. It is
// part of the wire contract for downstream viewers; this pipeline never
// populates one from source data.
type LayerFilter []LayerFilterOp

// Label is short text rendered at a map position, e.g. an airport
// identifier or a taxiway/gate name.
type Label struct {
	Text        string      `json:"text"`
	FontSize    float32     `json:"fontSize"`
	MapPosition geo.Point   `json:"mapPosition"`
	Filter      LayerFilter `json:"filter,omitempty"`
	MapAABB     geo.Extent  `json:"mapAABB"`
}

// RecalculateAABB sets MapAABB to a small box padded around MapPosition,
// matching the original viewer's label placement semantics.
func (l *Label) RecalculateAABB() {
	const pad = 1.0
	p := l.MapPosition
	l.MapAABB = geo.Extent{XMin: p.X - pad, YMin: p.Y - pad, XMax: p.X + pad, YMax: p.Y + pad}
}

// Shape is a fillable and/or strokeable polyline or polygon.
type Shape struct {
	FillColour   *Colour     `json:"fillColour,omitempty"`
	StrokeColour *Colour     `json:"strokeColour,omitempty"`
	StrokeWidth  float32     `json:"strokeWidth"`
	MapPoints    []geo.Point `json:"mapPoints"`
	Filter       LayerFilter `json:"filter,omitempty"`
	MapAABB      geo.Extent  `json:"mapAABB"`
}

// RecalculateAABB recomputes MapAABB from MapPoints.
func (s *Shape) RecalculateAABB() {
	s.MapAABB = geo.ExtentFromPoints(s.MapPoints)
}

// Section is a single tile's worth of content at level L, tile coordinate
// (X,Y).
type Section struct {
	Level     int        `json:"level"`
	X         int        `json:"x"`
	Y         int        `json:"y"`
	MapAABB   geo.Extent `json:"mapAABB"`
	Shapes    []Shape    `json:"shapes"`
	Labels    []Label    `json:"labels"`
	Points    []Point    `json:"points"`
	Airspaces []Airspace `json:"airspaces"`
	Airways   []Airway   `json:"airways"`
	Runways   []Runway   `json:"runways"`
}

// BuildInfo records provenance for a conversion run; populated once from
// runtime/debug.ReadBuildInfo by the CLI driver.
type BuildInfo struct {
	GoVersion     string   `json:"goVersion"`
	ModulePath    string   `json:"modulePath"`
	ModuleVersion string   `json:"moduleVersion"`
	Dependencies  []string `json:"dependencies,omitempty"`
}

// Global is the single record shared across all tiles: the colour palette,
// build provenance, and the best-effort controller-position roster.
type Global struct {
	Palette   *Palette   `json:"palette"`
	BuildInfo *BuildInfo `json:"buildInfo,omitempty"`
	ATC       []ATC      `json:"atc,omitempty"`
}

// ATC is an optional controller-position roster entry, present only when
// the source bundle carries one.
type ATC struct {
	Position      string   `json:"position"`
	Frequency     uint16   `json:"frequency"`
	TransferAllow []string `json:"transferAllow,omitempty"`
	TransferDeny  []string `json:"transferDeny,omitempty"`
}

// ParseFrequencyDigits parses a frequency string such as "118.500" into
// 10 kHz units. With no decimal point, the digits are taken as-is. With a
// decimal point at position p in a length-n string, the result is
// int(digitsWithoutDot) * 100 / 10^(n-p), matching the source format's
// convention exactly (including its integer-truncation behaviour for
// three or more fractional digits).
func ParseFrequencyDigits(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty frequency")
	}
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid frequency %q: %w", s, err)
		}
		return uint16(v), nil
	}
	digits := s[:dot] + s[dot+1:]
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frequency %q: %w", s, err)
	}
	fracLen := len(s) - (dot + 1)
	result := v * 100 / pow10u(fracLen)
	return uint16(result), nil
}

func pow10u(n int) uint64 {
	r := uint64(1)
	for i := 0; i < n; i++ {
		r *= 10
	}
	return r
}
