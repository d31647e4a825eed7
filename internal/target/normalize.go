package target

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/naojsoft/spot/internal/astro"
)

// NormalizeRA converts a right ascension string to degrees. Accepted forms:
// sexagesimal hours with colons ("22:24:04.0"), the legacy packed notation
// used by observatory scheduling files ("222404.000", HHMMSS with optional
// fraction), or plain degrees ("336.017"). A packed value is recognized by
// having more than four digits before the decimal point.
func NormalizeRA(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty RA")
	}
	if strings.Contains(s, ":") {
		return astro.ParseHMS(s)
	}
	if isPacked(s) {
		hours, err := parsePacked(s, "RA")
		if err != nil {
			return 0, err
		}
		if hours < 0 || hours >= 24 {
			return 0, fmt.Errorf("RA %q out of range [0h, 24h)", s)
		}
		return astro.NormalizeDeg(hours * 15.0), nil
	}
	deg, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing RA %q: %w", s, err)
	}
	if deg < 0 || deg >= 360 {
		return 0, fmt.Errorf("RA %q out of range [0, 360)", s)
	}
	return deg, nil
}

// NormalizeDec converts a declination string to degrees. Accepted forms
// mirror NormalizeRA: sexagesimal degrees ("+19:49:00"), packed notation
// ("+194900.00", DDMMSS), or plain degrees.
func NormalizeDec(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty DEC")
	}
	if strings.Contains(s, ":") {
		deg, err := astro.ParseDMS(s)
		if err != nil {
			return 0, err
		}
		if deg < -90 || deg > 90 {
			return 0, fmt.Errorf("DEC %q out of range [-90, 90]", s)
		}
		return deg, nil
	}
	if isPacked(s) {
		deg, err := parsePacked(s, "DEC")
		if err != nil {
			return 0, err
		}
		if deg < -90 || deg > 90 {
			return 0, fmt.Errorf("DEC %q out of range [-90, 90]", s)
		}
		return deg, nil
	}
	deg, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing DEC %q: %w", s, err)
	}
	if deg < -90 || deg > 90 {
		return 0, fmt.Errorf("DEC %q out of range [-90, 90]", s)
	}
	return deg, nil
}

// NormalizeEquinox converts an equinox string ("2000", "J2000.0", "B1950")
// to a year. Empty input defaults to 2000.0.
func NormalizeEquinox(s string) (float64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 2000.0, nil
	}
	if s[0] == 'B' || s[0] == 'J' {
		s = s[1:]
	}
	eq, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing equinox %q: %w", s, err)
	}
	if eq < 1800 || eq > 2200 {
		return 0, fmt.Errorf("equinox %q out of plausible range", s)
	}
	return eq, nil
}

// isPacked reports whether a coordinate string is in the legacy packed
// notation: more than four digits before the decimal point.
func isPacked(s string) bool {
	intPart := s
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
	}
	intPart = strings.TrimLeft(intPart, "+-")
	if len(intPart) <= 4 {
		return false
	}
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parsePacked decodes the packed sexagesimal notation. The integer part is
// WWMMSS (zero-padded to six digits), the optional fraction belongs to the
// seconds. The result is in the units of the leading field (hours for RA,
// degrees for DEC).
func parsePacked(s, what string) (float64, error) {
	sign := 1.0
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1.0
		s = s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) > 6 {
		return 0, fmt.Errorf("packed %s %q: too many digits", what, s)
	}
	intPart = strings.Repeat("0", 6-len(intPart)) + intPart

	whole, err := strconv.Atoi(intPart[0:2])
	if err != nil {
		return 0, fmt.Errorf("packed %s %q: %w", what, s, err)
	}
	min, err := strconv.Atoi(intPart[2:4])
	if err != nil {
		return 0, fmt.Errorf("packed %s %q: %w", what, s, err)
	}
	sec, err := strconv.ParseFloat(intPart[4:6]+frac, 64)
	if err != nil {
		return 0, fmt.Errorf("packed %s %q: %w", what, s, err)
	}
	if min >= 60 || sec >= 60 {
		return 0, fmt.Errorf("packed %s %q: minutes/seconds out of range", what, s)
	}

	return sign * (float64(whole) + float64(min)/60.0 + sec/3600.0), nil
}
