// sct/sector_test.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sct

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

type collectingWarner struct{ messages []string }

func (w *collectingWarner) Warnf(format string, args ...interface{}) {
	w.messages = append(w.messages, fmt.Sprintf(format, args...))
}

func TestParseSectorInfo(t *testing.T) {
	src := mapSource{
		"Sector.isc": []byte(`[INFO]
N60.02.03.005
E0231256000
25
25
0
NAME

[VOR]
`),
	}

	sector, err := Parse(src, "Sector.isc", nil)
	if err != nil {
		t.Fatal(err)
	}
	const eps = 1e-6
	if math.Abs(sector.Info.Latitude-60.034168) > eps {
		t.Errorf("latitude = %v, want ~60.034168", sector.Info.Latitude)
	}
	if math.Abs(sector.Info.Longitude-23.215555) > eps {
		t.Errorf("longitude = %v, want ~23.215555", sector.Info.Longitude)
	}
}

func TestParseSectorDefinesRejectsReference(t *testing.T) {
	src := mapSource{
		"Sector.isc": []byte(`[INFO]
0
0
1
1
0

[DEFINE]
RED;BLUE
`),
	}
	_, err := Parse(src, "Sector.isc", nil)
	if err == nil {
		t.Fatal("expected a BadPaletteError")
	}
	if _, ok := err.(*BadPaletteError); !ok {
		t.Errorf("expected *BadPaletteError, got %T: %v", err, err)
	}
}

func TestParseSectorPropagatesMissingIncludeAsFatal(t *testing.T) {
	src := mapSource{
		"Sector.isc": []byte(`[INFO]
0
0
1
1
0

[AIRPORT]
F;missing.txt
`),
	}
	_, err := Parse(src, "Sector.isc", nil)
	if err == nil {
		t.Fatal("expected a fatal error for a missing include inside AIRPORT")
	}
}

func TestParseSectorWarnsOnGeoTrailingField(t *testing.T) {
	src := mapSource{
		"Sector.isc": []byte(`[INFO]
0
0
1
1
0

[GEO]
N40.0.0.000;E010.0.0.000;N40.0.0.000;E010.30.0.000;;extra
`),
	}
	warner := &collectingWarner{}
	sector, err := Parse(src, "Sector.isc", warner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sector.Geo) != 1 {
		t.Fatalf("expected 1 geo segment, got %d", len(sector.Geo))
	}
	found := false
	for _, m := range warner.messages {
		if strings.Contains(m, "GEO") && strings.Contains(m, `unexpected trailing field "extra"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning about the trailing GEO field, got %v", warner.messages)
	}
}
