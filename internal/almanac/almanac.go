// Package almanac computes the nightly event timetable for an observing
// site: sun and moon rise and set plus the three twilight boundaries.
package almanac

import (
	"errors"
	"fmt"
	"time"

	"github.com/naojsoft/spot/internal/astro"
	"github.com/naojsoft/spot/internal/site"
)

// ErrNoEvent reports that an event never occurs in the searched interval,
// for example sunset above the polar circle in summer.
var ErrNoEvent = errors.New("event does not occur")

// Altitude thresholds relative to the site's apparent horizon. Half a
// degree covers atmospheric refraction plus the solar radius; the moon's
// apparent radius is slightly larger.
const (
	sunLimbDeg  = -0.50
	moonLimbDeg = -0.52

	civilDeg        = -6.0
	nauticalDeg     = -12.0
	astronomicalDeg = -18.0
)

// scanStep is the coarse bracketing step; crossings are then refined by
// bisection to about a second.
const scanStep = 5 * time.Minute

// Events is the timetable of one night, anchored at local noon of the
// given calendar date. Twilight and moon fields may be zero when the
// corresponding event never occurs; sunset and sunrise are always set.
type Events struct {
	Site *site.Site
	Noon time.Time // local noon opening the night

	Sunset  time.Time
	Sunrise time.Time

	CivilDusk        time.Time
	CivilDawn        time.Time
	NauticalDusk     time.Time
	NauticalDawn     time.Time
	AstronomicalDusk time.Time
	AstronomicalDawn time.Time

	NightCenter time.Time

	Moonrise time.Time
	Moonset  time.Time

	// MoonIllum is the illuminated fraction of the moon's disk at night
	// center, in [0, 1].
	MoonIllum float64
}

// ComputeEvents builds the timetable for the night starting at local noon
// of date at the given site. It fails when the sun never sets or never
// rises in the following 24 hours.
func ComputeEvents(s *site.Site, date time.Time) (*Events, error) {
	loc := s.Location()
	y, m, d := date.In(loc).Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, loc)
	end := noon.Add(24 * time.Hour)

	sunAlt := func(t time.Time) float64 {
		ra, dec := astro.SunRADec(t)
		return astro.AltAt(ra, dec, s.LatitudeDeg, s.LongitudeDeg, t)
	}
	moonAlt := func(t time.Time) float64 {
		ra, dec := astro.MoonRADec(t)
		return astro.AltAt(ra, dec, s.LatitudeDeg, s.LongitudeDeg, t)
	}

	horizon := s.HorizonDepressionDeg()
	ev := &Events{Site: s, Noon: noon}

	var err error
	ev.Sunset, err = findCrossing(sunAlt, horizon+sunLimbDeg, noon, end, false)
	if err != nil {
		return nil, fmt.Errorf("sunset at %s: %w", s.ID, err)
	}
	ev.Sunrise, err = findCrossing(sunAlt, horizon+sunLimbDeg, ev.Sunset, end, true)
	if err != nil {
		return nil, fmt.Errorf("sunrise at %s: %w", s.ID, err)
	}
	ev.NightCenter = ev.Sunset.Add(ev.Sunrise.Sub(ev.Sunset) / 2)

	// Twilight boundaries may genuinely be absent at high latitude; leave
	// the field zero in that case.
	ev.CivilDusk, _ = findCrossing(sunAlt, civilDeg, ev.Sunset, ev.Sunrise, false)
	ev.CivilDawn, _ = findCrossing(sunAlt, civilDeg, ev.NightCenter, ev.Sunrise.Add(time.Hour), true)
	ev.NauticalDusk, _ = findCrossing(sunAlt, nauticalDeg, ev.Sunset, ev.Sunrise, false)
	ev.NauticalDawn, _ = findCrossing(sunAlt, nauticalDeg, ev.NightCenter, ev.Sunrise.Add(time.Hour), true)
	ev.AstronomicalDusk, _ = findCrossing(sunAlt, astronomicalDeg, ev.Sunset, ev.Sunrise, false)
	ev.AstronomicalDawn, _ = findCrossing(sunAlt, astronomicalDeg, ev.NightCenter, ev.Sunrise.Add(time.Hour), true)

	// The moon can rise or set well outside the night window; search two
	// days from noon so one of each is normally found.
	moonEnd := noon.Add(48 * time.Hour)
	ev.Moonrise, _ = findCrossing(moonAlt, horizon+moonLimbDeg, noon, moonEnd, true)
	ev.Moonset, _ = findCrossing(moonAlt, horizon+moonLimbDeg, noon, moonEnd, false)

	ev.MoonIllum = astro.MoonIllumination(ev.NightCenter)
	return ev, nil
}

// Night reports the sunset-to-sunrise interval.
func (ev *Events) Night() (start, end time.Time) {
	return ev.Sunset, ev.Sunrise
}

// DarkNight reports the astronomical-darkness interval, falling back to
// the sunset/sunrise bounds when a twilight boundary never occurs.
func (ev *Events) DarkNight() (start, end time.Time) {
	start, end = ev.Sunset, ev.Sunrise
	if !ev.AstronomicalDusk.IsZero() {
		start = ev.AstronomicalDusk
	}
	if !ev.AstronomicalDawn.IsZero() {
		end = ev.AstronomicalDawn
	}
	return start, end
}

// findCrossing locates the first time in [start, end] at which altFn
// crosses threshold in the requested direction, refined by bisection.
func findCrossing(altFn func(time.Time) float64, threshold float64, start, end time.Time, rising bool) (time.Time, error) {
	prev := start
	prevAbove := altFn(prev) > threshold

	for t := start.Add(scanStep); !t.After(end); t = t.Add(scanStep) {
		above := altFn(t) > threshold
		if above != prevAbove {
			if above == rising {
				return bisect(altFn, threshold, prev, t), nil
			}
		}
		prev, prevAbove = t, above
	}
	return time.Time{}, ErrNoEvent
}

func bisect(altFn func(time.Time) float64, threshold float64, lo, hi time.Time) time.Time {
	loAbove := altFn(lo) > threshold
	for hi.Sub(lo) > time.Second {
		mid := lo.Add(hi.Sub(lo) / 2)
		if (altFn(mid) > threshold) == loAbove {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi.Round(time.Second)
}
