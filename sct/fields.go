// sct/fields.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sct

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmp/sectortiles/domain"
)

// reDottedDMS matches the dotted degrees.minutes.seconds form, e.g.
// "N60.02.03.005" or "W123.45.06.700".
var reDottedDMS = regexp.MustCompile(`^([NSEW])(\d+)\.(\d+)\.(\d+(?:\.\d+)?)$`)

// ParseLatitude parses a latitude field in one of the three accepted
// forms, returning signed degrees.
func ParseLatitude(s string) (float64, error) {
	return parseLatOrLon(s, "N", "S")
}

// ParseLongitude parses a longitude field in one of the three accepted
// forms, returning signed degrees.
func ParseLongitude(s string) (float64, error) {
	return parseLatOrLon(s, "E", "W")
}

func parseLatOrLon(s string, pos, neg string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty coordinate")
	}
	c := s[0]
	if c == '-' || (c >= '0' && c <= '9') {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid decimal coordinate %q: %w", s, err)
		}
		return v, nil
	}

	if m := reDottedDMS.FindStringSubmatch(s); m != nil {
		sign, ok := signOf(m[1], pos, neg)
		if !ok {
			return 0, fmt.Errorf("invalid coordinate sign %q in %q", m[1], s)
		}
		deg, err1 := strconv.ParseFloat(m[2], 64)
		min, err2 := strconv.ParseFloat(m[3], 64)
		sec, err3 := strconv.ParseFloat(m[4], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, fmt.Errorf("invalid DMS coordinate %q", s)
		}
		return sign * (deg + min/60 + sec/3600), nil
	}

	if len(s) == 11 {
		sign, ok := signOf(string(s[0]), pos, neg)
		if !ok {
			return 0, fmt.Errorf("invalid coordinate sign %q in %q", string(s[0]), s)
		}
		deg, err1 := strconv.ParseFloat(s[1:4], 64)
		min, err2 := strconv.ParseFloat(s[4:6], 64)
		secThousandths, err3 := strconv.ParseFloat(s[6:11], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, fmt.Errorf("invalid packed coordinate %q", s)
		}
		sec := secThousandths / 1000
		return sign * (deg + min/60 + sec/3600), nil
	}

	return 0, fmt.Errorf("unrecognised coordinate format %q", s)
}

func signOf(prefix, pos, neg string) (float64, bool) {
	switch prefix {
	case pos:
		return 1, true
	case neg:
		return -1, true
	default:
		return 0, false
	}
}

// ParseColour parses the #RRGGBB / $RRGGBB (decimal body) / %R:G:B forms,
// falling back to a palette Reference for any other leading character.
func ParseColour(s string) (domain.Colour, error) {
	if s == "" {
		return domain.Colour{}, fmt.Errorf("empty colour")
	}
	switch s[0] {
	case '#', '$':
		v, err := strconv.ParseUint(s[1:], 10, 32)
		if err != nil {
			return domain.Colour{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		return domain.ColourValue(uint32(v)), nil
	case '%':
		parts := strings.Split(s[1:], ":")
		if len(parts) != 3 {
			return domain.Colour{}, fmt.Errorf("invalid colour %q: expected R:G:B", s)
		}
		var rgb [3]uint64
		for i, p := range parts {
			v, err := strconv.ParseUint(p, 10, 32)
			if err != nil {
				return domain.Colour{}, fmt.Errorf("invalid colour channel %q in %q: %w", p, s, err)
			}
			rgb[i] = v
		}
		return domain.ColourValue(uint32(rgb[0]<<16 | rgb[1]<<8 | rgb[2])), nil
	default:
		return domain.ColourReference(s), nil
	}
}

// ParseFrequency parses a frequency field into 10 kHz units.
func ParseFrequency(s string) (uint16, error) {
	return domain.ParseFrequencyDigits(s)
}
