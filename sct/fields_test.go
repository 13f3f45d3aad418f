// sct/fields_test.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sct

import (
	"math"
	"testing"
)

func TestParseLatitudeDottedDMS(t *testing.T) {
	got, err := ParseLatitude("N60.02.03.005")
	if err != nil {
		t.Fatal(err)
	}
	want := 60 + 2.0/60 + 3.005/3600
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseLongitudePacked(t *testing.T) {
	got, err := ParseLongitude("E0231256000")
	if err != nil {
		t.Fatal(err)
	}
	want := 23 + 12.0/60 + 56.0/3600
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseLatitudeDecimal(t *testing.T) {
	got, err := ParseLatitude("-12.5")
	if err != nil {
		t.Fatal(err)
	}
	if got != -12.5 {
		t.Errorf("got %v", got)
	}
}

func TestParseColour(t *testing.T) {
	c, err := ParseColour("#255000000")
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsValue() || c.Value != 255000000 {
		t.Errorf("decimal hash colour: %+v", c)
	}

	c, err = ParseColour("%255:128:0")
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsValue() || c.Value != 0xFF8000 {
		t.Errorf("percent colour: %+v", c)
	}

	c, err = ParseColour("BLUE")
	if err != nil {
		t.Fatal(err)
	}
	if c.IsValue() || c.Reference != "BLUE" {
		t.Errorf("reference colour: %+v", c)
	}
}
