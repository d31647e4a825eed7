package target

import (
	"math"
	"testing"
)

func TestNormalizeRA(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"15:28:50.5", 232.210417},
		{"00:00:00", 0},
		{"12:00:00", 180},
		// Packed notation: HHMMSS.sss with no separators.
		{"152850.5", 232.210417},
		{"020000", 30},
		// Plain degrees.
		{"232.210417", 232.210417},
		{"0.0", 0},
	}
	for _, tt := range tests {
		got, err := NormalizeRA(tt.in)
		if err != nil {
			t.Errorf("NormalizeRA(%q): %v", tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-4 {
			t.Errorf("NormalizeRA(%q) = %.6f, want %.6f", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeRAErrors(t *testing.T) {
	for _, in := range []string{"", "25:00:00", "-01:00:00", "250000", "not-a-number", "400.0", "-5.0"} {
		if _, err := NormalizeRA(in); err == nil {
			t.Errorf("NormalizeRA(%q): expected error", in)
		}
	}
}

func TestNormalizeDec(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"+35:11:00", 35.183333},
		{"-29:10:45.5", -29.179306},
		{"00:00:00", 0},
		// Packed notation: +DDMMSS.ss.
		{"-291045.5", -29.179306},
		{"351100", 35.183333},
		// Plain degrees.
		{"-29.179306", -29.179306},
		{"89.9", 89.9},
	}
	for _, tt := range tests {
		got, err := NormalizeDec(tt.in)
		if err != nil {
			t.Errorf("NormalizeDec(%q): %v", tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-4 {
			t.Errorf("NormalizeDec(%q) = %.6f, want %.6f", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDecErrors(t *testing.T) {
	for _, in := range []string{"", "91:00:00", "-91:00:00", "95.0", "-95.0", "abc"} {
		if _, err := NormalizeDec(in); err == nil {
			t.Errorf("NormalizeDec(%q): expected error", in)
		}
	}
}

func TestNormalizeEquinox(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 2000},
		{"2000", 2000},
		{"2000.0", 2000},
		{"J2000", 2000},
		{"B1950", 1950},
		{"1950.0", 1950},
	}
	for _, tt := range tests {
		got, err := NormalizeEquinox(tt.in)
		if err != nil {
			t.Errorf("NormalizeEquinox(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeEquinox(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"X2000", "12.5.7", "900"} {
		if _, err := NormalizeEquinox(in); err == nil {
			t.Errorf("NormalizeEquinox(%q): expected error", in)
		}
	}
}
