// Package visibility computes altitude tracks and observability windows
// for targets as seen from an observing site.
package visibility

import (
	"fmt"
	"time"

	"github.com/naojsoft/spot/internal/astro"
	"github.com/naojsoft/spot/internal/site"
	"github.com/naojsoft/spot/internal/target"
)

// DefaultStep is the sampling interval for altitude tracks.
const DefaultStep = 5 * time.Minute

// TrackPoint is one sample of a target's visibility track.
type TrackPoint struct {
	Time           time.Time
	AltDeg         float64
	AzDeg          float64
	Airmass        float64 // NaN below the horizon
	HourAngleDeg   float64
	ParallacticDeg float64
	MoonAltDeg     float64
	MoonSepDeg     float64

	// Fresh is false for non-sidereal targets sampled outside their
	// ephemeris table.
	Fresh bool
}

// Calc evaluates a target's visibility at a single time.
func Calc(s *site.Site, tgt *target.Target, at time.Time) TrackPoint {
	ra, dec, fresh := tgt.CoordsAt(at)
	lmst := astro.LMST(at, s.LongitudeDeg)
	hz := astro.ToHorizontal(ra, dec, s.LatitudeDeg, lmst)
	ha := astro.HourAngle(lmst, ra)

	moonRA, moonDec := astro.MoonRADec(at)
	moonHz := astro.ToHorizontal(moonRA, moonDec, s.LatitudeDeg, lmst)

	p := TrackPoint{
		Time:           at,
		AltDeg:         hz.AltDeg,
		AzDeg:          hz.AzDeg,
		Airmass:        astro.Airmass(hz.AltDeg),
		HourAngleDeg:   ha,
		ParallacticDeg: astro.ParallacticAngle(ha, dec, s.LatitudeDeg),
		MoonAltDeg:     moonHz.AltDeg,
		MoonSepDeg:     astro.Separation(ra, dec, moonRA, moonDec),
		Fresh:          fresh,
	}

	// For an Earth orbiter the geocentric direction is off by the
	// observer's parallax, which is large at LEO distances. Replace the
	// horizontal coordinates with the topocentric look angles.
	if tgt.Kind == target.Satellite {
		la, err := tgt.LookAnglesAt(at, s.LatitudeDeg, s.LongitudeDeg, s.ElevationM)
		if err != nil {
			p.Fresh = false
			return p
		}
		p.AltDeg = la.AltDeg
		p.AzDeg = la.AzDeg
		p.Airmass = astro.Airmass(la.AltDeg)
		p.MoonSepDeg = astro.Separation(la.AzDeg, la.AltDeg, moonHz.AzDeg, moonHz.AltDeg)
	}
	return p
}

// ComputeTrack samples a target's visibility from start to stop inclusive.
// A non-positive step defaults to DefaultStep.
func ComputeTrack(s *site.Site, tgt *target.Target, start, stop time.Time, step time.Duration) ([]TrackPoint, error) {
	if stop.Before(start) {
		return nil, fmt.Errorf("track window ends (%s) before it starts (%s)",
			stop.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	if step <= 0 {
		step = DefaultStep
	}

	var points []TrackPoint
	for t := start; !t.After(stop); t = t.Add(step) {
		points = append(points, Calc(s, tgt, t))
	}
	return points, nil
}

// MoonSeparation returns the angular distance in degrees between the moon
// and the given J2000 position at time t.
func MoonSeparation(t time.Time, raDeg, decDeg float64) float64 {
	moonRA, moonDec := astro.MoonRADec(t)
	return astro.Separation(raDeg, decDeg, moonRA, moonDec)
}

// Criteria constrains an observability query. Zero values disable the
// corresponding limit, except MaxAltDeg where zero means no upper bound.
type Criteria struct {
	MinAltDeg     float64
	MaxAltDeg     float64
	MaxAirmass    float64
	MinMoonSepDeg float64
	// Duration is the contiguous time the target must stay within the
	// limits. Zero accepts a single satisfying instant.
	Duration time.Duration
}

func (c Criteria) satisfied(p TrackPoint) bool {
	if p.AltDeg < c.MinAltDeg {
		return false
	}
	if c.MaxAltDeg > 0 && p.AltDeg > c.MaxAltDeg {
		return false
	}
	if c.MaxAirmass > 0 && !(p.Airmass > 0 && p.Airmass <= c.MaxAirmass) {
		return false
	}
	if c.MinMoonSepDeg > 0 && p.MoonSepDeg < c.MinMoonSepDeg {
		return false
	}
	return true
}

// Observable reports whether the target satisfies the criteria for the
// required contiguous duration inside [start, stop], and if so, the
// earliest time the qualifying interval begins.
func Observable(s *site.Site, tgt *target.Target, start, stop time.Time, c Criteria) (bool, time.Time) {
	step := time.Minute
	var winStart time.Time
	var inWin bool

	for t := start; !t.After(stop); t = t.Add(step) {
		ok := c.satisfied(Calc(s, tgt, t))
		switch {
		case ok && !inWin:
			winStart, inWin = t, true
		case !ok && inWin:
			inWin = false
		}
		if inWin && t.Sub(winStart) >= c.Duration {
			return true, winStart
		}
	}
	return false, time.Time{}
}

// Pass is one satellite pass over the site: the interval the satellite
// stays above the horizon, with its culmination.
type Pass struct {
	Rise        time.Time
	Culmination time.Time
	Set         time.Time
	MaxAltDeg   float64
}

// SatellitePasses finds the passes of a satellite target above minAltDeg
// between start and stop, sampled at one-minute resolution.
func SatellitePasses(s *site.Site, tgt *target.Target, start, stop time.Time, minAltDeg float64) ([]Pass, error) {
	if tgt.Kind != target.Satellite {
		return nil, fmt.Errorf("target %q is not a satellite", tgt.Name)
	}

	step := time.Minute
	var passes []Pass
	var cur *Pass

	for t := start; !t.After(stop); t = t.Add(step) {
		la, err := tgt.LookAnglesAt(t, s.LatitudeDeg, s.LongitudeDeg, s.ElevationM)
		if err != nil {
			return nil, fmt.Errorf("pass prediction for %q: %w", tgt.Name, err)
		}
		up := la.AltDeg >= minAltDeg
		switch {
		case up && cur == nil:
			cur = &Pass{Rise: t, Culmination: t, MaxAltDeg: la.AltDeg}
		case up:
			if la.AltDeg > cur.MaxAltDeg {
				cur.MaxAltDeg = la.AltDeg
				cur.Culmination = t
			}
		case cur != nil:
			cur.Set = t.Add(-step)
			passes = append(passes, *cur)
			cur = nil
		}
	}
	if cur != nil {
		cur.Set = stop
		passes = append(passes, *cur)
	}
	return passes, nil
}
