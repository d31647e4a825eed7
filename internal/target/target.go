// Package target models observation targets and loads target lists from
// tabular files.
package target

import (
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/naojsoft/spot/internal/astro"
)

// Kind distinguishes how a target's position is obtained.
type Kind int

const (
	// Sidereal targets have fixed catalog coordinates (plus optional
	// proper motion).
	Sidereal Kind = iota
	// NonSidereal targets follow an ephemeris track of (time, RA, DEC).
	NonSidereal
	// Satellite targets are Earth orbiters propagated from TLE elements.
	Satellite
)

// Target is a single entry of a target list. Identity within a loaded set is
// by name.
type Target struct {
	Name    string
	RADeg   float64 // at Equinox
	DecDeg  float64 // at Equinox
	Equinox float64
	PMRA    float64 // mas/yr, includes cos(dec); 0 = none
	PMDec   float64 // mas/yr; 0 = none
	Comment string

	// Category records where the target came from (file path, resolver).
	Category string

	Kind  Kind
	Track *EphemTrack // non-nil for NonSidereal

	TLELine1, TLELine2 string // set for Satellite

	orbit *satellite.Satellite // lazily parsed from the TLE lines
}

// CoordsAt returns the target's J2000 coordinates in degrees at the given
// time. For sidereal targets this precesses from the catalog equinox and
// applies proper motion; for non-sidereal targets the ephemeris track is
// interpolated. fresh is false when the requested time falls outside a
// non-sidereal track and the nearest endpoint was used instead.
func (t *Target) CoordsAt(at time.Time) (raDeg, decDeg float64, fresh bool) {
	switch t.Kind {
	case NonSidereal:
		return t.Track.At(at)
	case Satellite:
		ra, dec, err := t.satelliteRADec(at)
		if err != nil {
			return t.RADeg, t.DecDeg, false
		}
		return ra, dec, true
	default:
		ra, dec := astro.PrecessToJ2000(t.RADeg, t.DecDeg, t.Equinox)
		years := at.UTC().Sub(j2000Epoch).Hours() / 24.0 / 365.25
		ra, dec = astro.ApplyProperMotion(ra, dec, t.PMRA, t.PMDec, years)
		return ra, dec, true
	}
}

var j2000Epoch = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// FormatRA renders the target's catalog right ascension as sexagesimal hours.
func (t *Target) FormatRA() string {
	return astro.FormatHMS(t.RADeg, 3)
}

// FormatDec renders the target's catalog declination as signed sexagesimal
// degrees.
func (t *Target) FormatDec() string {
	return astro.FormatDMS(t.DecDeg, 2)
}
