package target

import (
	"math"
	"testing"
	"time"
)

func TestCoordsAtSiderealJ2000(t *testing.T) {
	// A J2000 target with no proper motion keeps its catalog coordinates.
	tgt := &Target{Name: "test", RADeg: 150.0, DecDeg: -30.0, Equinox: 2000.0}
	ra, dec, fresh := tgt.CoordsAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if !fresh {
		t.Error("sidereal coordinates are always fresh")
	}
	if math.Abs(ra-150.0) > 1e-9 || math.Abs(dec-(-30.0)) > 1e-9 {
		t.Errorf("got (%v, %v), want catalog position", ra, dec)
	}
}

func TestCoordsAtPrecessesB1950(t *testing.T) {
	// Precession over 50 years moves coordinates by a fraction of a
	// degree; the result must differ from the catalog position but stay
	// close to it.
	tgt := &Target{Name: "test", RADeg: 150.0, DecDeg: -30.0, Equinox: 1950.0}
	ra, dec, _ := tgt.CoordsAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if ra == 150.0 && dec == -30.0 {
		t.Error("B1950 coordinates should precess")
	}
	if math.Abs(ra-150.0) > 2 || math.Abs(dec-(-30.0)) > 2 {
		t.Errorf("precession moved target too far: (%v, %v)", ra, dec)
	}
}

func TestFormatCoordinates(t *testing.T) {
	tgt := &Target{RADeg: 297.696, DecDeg: 8.8683}
	if got := tgt.FormatRA(); len(got) == 0 || got[2] != ':' {
		t.Errorf("FormatRA() = %q", got)
	}
	if got := tgt.FormatDec(); got[0] != '+' && got[0] != '-' {
		t.Errorf("FormatDec() = %q", got)
	}
}
