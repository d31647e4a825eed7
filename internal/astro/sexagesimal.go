package astro

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseHMS parses a sexagesimal right ascension in hours ("HH:MM:SS.sss",
// seconds and fraction optional) and returns degrees in [0, 360). Values
// outside [0h, 24h) are rejected.
func ParseHMS(s string) (float64, error) {
	sign, parts, err := splitSexagesimal(s)
	if err != nil {
		return 0, fmt.Errorf("parsing RA %q: %w", s, err)
	}
	hours := sign * (parts[0] + parts[1]/60.0 + parts[2]/3600.0)
	if hours < 0 || hours >= 24 {
		return 0, fmt.Errorf("RA %q out of range [0h, 24h)", s)
	}
	return NormalizeDeg(hours * 15.0), nil
}

// ParseDMS parses a sexagesimal declination in degrees ("±DD:MM:SS.ss",
// seconds and fraction optional) and returns degrees.
func ParseDMS(s string) (float64, error) {
	sign, parts, err := splitSexagesimal(s)
	if err != nil {
		return 0, fmt.Errorf("parsing DEC %q: %w", s, err)
	}
	return sign * (parts[0] + parts[1]/60.0 + parts[2]/3600.0), nil
}

// FormatHMS formats a right ascension in degrees as sexagesimal hours with
// the given number of decimal places on the seconds.
func FormatHMS(deg float64, prec int) string {
	h, m, s := toSexagesimal(NormalizeDeg(deg)/15.0, prec, 24)
	return fmt.Sprintf("%02d:%02d:%0*.*f", h, m, secWidth(prec), prec, s)
}

// FormatDMS formats a declination in degrees as signed sexagesimal degrees
// with the given number of decimal places on the seconds.
func FormatDMS(deg float64, prec int) string {
	sign := "+"
	if deg < 0 {
		sign = "-"
		deg = -deg
	}
	d, m, s := toSexagesimal(deg, prec, 0)
	return fmt.Sprintf("%s%02d:%02d:%0*.*f", sign, d, m, secWidth(prec), prec, s)
}

func splitSexagesimal(s string) (sign float64, parts [3]float64, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, parts, fmt.Errorf("empty value")
	}
	sign = 1.0
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1.0
		s = s[1:]
	}
	fields := strings.Split(s, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return 0, parts, fmt.Errorf("expected 2 or 3 colon-separated fields, got %d", len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return 0, parts, fmt.Errorf("field %d: %w", i+1, err)
		}
		if v < 0 {
			return 0, parts, fmt.Errorf("field %d: unexpected sign", i+1)
		}
		parts[i] = v
	}
	if parts[1] >= 60 || parts[2] >= 60 {
		return 0, parts, fmt.Errorf("minutes/seconds out of range")
	}
	return sign, parts, nil
}

// toSexagesimal splits a positive value into whole/minutes/seconds, rounding
// the seconds to prec decimals and propagating the carry. wrap, if nonzero,
// wraps the whole part (24 for hours).
func toSexagesimal(v float64, prec, wrap int) (whole, min int, sec float64) {
	whole = int(v)
	rem := (v - float64(whole)) * 60.0
	min = int(rem)
	sec = (rem - float64(min)) * 60.0

	scale := math.Pow(10, float64(prec))
	sec = math.Round(sec*scale) / scale
	if sec >= 60.0 {
		sec = 0
		min++
	}
	if min >= 60 {
		min = 0
		whole++
	}
	if wrap > 0 && whole >= wrap {
		whole -= wrap
	}
	return whole, min, sec
}

// secWidth returns the printf field width for a zero-padded seconds value
// with prec decimals.
func secWidth(prec int) int {
	if prec == 0 {
		return 2
	}
	return 3 + prec
}
