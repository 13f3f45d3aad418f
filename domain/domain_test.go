// domain/domain_test.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package domain

import (
	"encoding/json"
	"testing"
)

func TestParseFrequencyDigits(t *testing.T) {
	cases := []struct {
		in   string
		want uint16
	}{
		{"118.5", 11850},
		{"118.525", 11852},
		{"121", 121},
	}
	for _, c := range cases {
		got, err := ParseFrequencyDigits(c.in)
		if err != nil {
			t.Fatalf("ParseFrequencyDigits(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseFrequencyDigits(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestPaletteDefinitionOrderRoundTrips(t *testing.T) {
	p := NewPalette()
	p.Define("blue", 0x0000FF)
	p.Define("amber", 0xFFBF00)
	p.Define("red", 0xFF0000)

	if got := p.Keys(); got[0] != "BLUE" || got[1] != "AMBER" || got[2] != "RED" {
		t.Fatalf("Keys() = %v, want definition order BLUE, AMBER, RED", got)
	}

	body, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}

	var round Palette
	if err := json.Unmarshal(body, &round); err != nil {
		t.Fatal(err)
	}
	if got := round.Keys(); got[0] != "BLUE" || got[1] != "AMBER" || got[2] != "RED" {
		t.Fatalf("round-tripped Keys() = %v, want definition order BLUE, AMBER, RED", got)
	}
	if rgb, ok := round.Lookup("amber"); !ok || rgb != 0xFFBF00 {
		t.Errorf("round-tripped Lookup(amber) = %v, %v, want 0xFFBF00, true", rgb, ok)
	}
}

func TestColourJSONRoundTrip(t *testing.T) {
	ref := ColourReference("red")
	b, err := ref.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var c Colour
	if err := c.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if c.Reference != "RED" || c.IsValue() {
		t.Errorf("round trip reference colour: %+v", c)
	}

	val := ColourValue(0xFF00FF)
	b, err = val.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if err := c.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if !c.IsValue() || c.Value != 0xFF00FF {
		t.Errorf("round trip value colour: %+v", c)
	}
}
