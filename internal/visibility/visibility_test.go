package visibility

import (
	"math"
	"testing"
	"time"

	"github.com/naojsoft/spot/internal/site"
	"github.com/naojsoft/spot/internal/target"
)

func subaru(t *testing.T) *site.Site {
	t.Helper()
	reg, err := site.Load("")
	if err != nil {
		t.Fatal(err)
	}
	s, err := reg.Get("subaru")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// findTransit samples a whole day and returns the highest point.
func findTransit(t *testing.T, s *site.Site, tgt *target.Target, day time.Time) TrackPoint {
	t.Helper()
	points, err := ComputeTrack(s, tgt, day, day.Add(24*time.Hour), time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	best := points[0]
	for _, p := range points {
		if p.AltDeg > best.AltDeg {
			best = p
		}
	}
	return best
}

func TestTransitAltitude(t *testing.T) {
	s := subaru(t)
	// A target at DEC equal to the site latitude culminates at the zenith.
	tgt := &target.Target{Name: "zenith", RADeg: 0, DecDeg: s.LatitudeDeg, Equinox: 2000}

	best := findTransit(t, s, tgt, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC))
	if best.AltDeg < 89.5 {
		t.Errorf("culmination alt = %v, want near 90", best.AltDeg)
	}
	if math.Abs(best.HourAngleDeg) > 1 {
		t.Errorf("hour angle at transit = %v, want near 0", best.HourAngleDeg)
	}
	if !(best.Airmass > 0.99 && best.Airmass < 1.01) {
		t.Errorf("airmass at zenith = %v, want ~1", best.Airmass)
	}
}

func TestSouthernTransitAzimuth(t *testing.T) {
	s := subaru(t)
	// A southern target transits due south of a northern site.
	tgt := &target.Target{Name: "south", RADeg: 120, DecDeg: -30, Equinox: 2000}

	best := findTransit(t, s, tgt, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC))
	if math.Abs(best.AzDeg-180) > 2 {
		t.Errorf("transit az = %v, want near 180", best.AzDeg)
	}
	want := 90 - math.Abs(s.LatitudeDeg-(-30))
	if math.Abs(best.AltDeg-want) > 0.5 {
		t.Errorf("transit alt = %v, want %v", best.AltDeg, want)
	}
}

func TestComputeTrackWindow(t *testing.T) {
	s := subaru(t)
	tgt := &target.Target{Name: "x", RADeg: 10, DecDeg: 10, Equinox: 2000}
	start := time.Date(2025, 3, 20, 6, 0, 0, 0, time.UTC)

	points, err := ComputeTrack(s, tgt, start, start.Add(time.Hour), 0)
	if err != nil {
		t.Fatal(err)
	}
	// Default 5-minute step over one hour, endpoints inclusive.
	if len(points) != 13 {
		t.Fatalf("got %d points, want 13", len(points))
	}
	if !points[0].Time.Equal(start) {
		t.Errorf("first point at %v", points[0].Time)
	}
	if !points[0].Fresh {
		t.Error("sidereal points must be fresh")
	}

	if _, err := ComputeTrack(s, tgt, start, start.Add(-time.Hour), 0); err == nil {
		t.Error("expected error for inverted window")
	}
}

func TestMoonSeparationRange(t *testing.T) {
	at := time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)
	for _, ra := range []float64{0, 90, 180, 270} {
		sep := MoonSeparation(at, ra, 0)
		if sep < 0 || sep > 180 {
			t.Errorf("separation(ra=%v) = %v out of [0, 180]", ra, sep)
		}
	}
}

func TestObservable(t *testing.T) {
	s := subaru(t)
	// The zenith-transiting target is certainly observable above 60 deg
	// for an hour at some point in the day.
	tgt := &target.Target{Name: "zenith", RADeg: 0, DecDeg: s.LatitudeDeg, Equinox: 2000}
	day := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	ok, at := Observable(s, tgt, day, day.Add(24*time.Hour), Criteria{
		MinAltDeg: 60,
		Duration:  time.Hour,
	})
	if !ok {
		t.Fatal("expected target to be observable")
	}
	p := Calc(s, tgt, at)
	if p.AltDeg < 60 {
		t.Errorf("window start alt = %v, want >= 60", p.AltDeg)
	}

	// An impossible altitude floor is never satisfied.
	ok, _ = Observable(s, tgt, day, day.Add(24*time.Hour), Criteria{MinAltDeg: 89.99, Duration: 6 * time.Hour})
	if ok {
		t.Error("expected impossible criteria to fail")
	}
}

func TestObservableAirmassLimit(t *testing.T) {
	s := subaru(t)
	// A far-southern target never rises high enough at Subaru to reach
	// airmass 1.1.
	tgt := &target.Target{Name: "deepsouth", RADeg: 0, DecDeg: -60, Equinox: 2000}
	day := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	ok, _ := Observable(s, tgt, day, day.Add(24*time.Hour), Criteria{MaxAirmass: 1.1})
	if ok {
		t.Error("dec -60 should never reach airmass 1.1 from Maunakea")
	}
}

func TestSatellitePasses(t *testing.T) {
	s := subaru(t)
	sat, err := target.NewSatellite("ISS",
		"1 25544U 98067A   24001.50000000  .00016717  00000-0  30777-3 0  9990",
		"2 25544  51.6400 208.9163 0006703 130.5360 325.0288 15.49560000429672")
	if err != nil {
		t.Fatal(err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	passes, err := SatellitePasses(s, sat, start, start.Add(24*time.Hour), 0)
	if err != nil {
		t.Fatalf("SatellitePasses: %v", err)
	}
	// A LEO orbiter passes over a mid-latitude site several times a day.
	if len(passes) == 0 {
		t.Fatal("expected at least one pass in 24 hours")
	}
	for _, p := range passes {
		if p.Set.Before(p.Rise) {
			t.Errorf("pass set %v before rise %v", p.Set, p.Rise)
		}
		if p.Culmination.Before(p.Rise) || p.Culmination.After(p.Set) {
			t.Errorf("culmination %v outside pass [%v, %v]", p.Culmination, p.Rise, p.Set)
		}
		if p.MaxAltDeg < 0 {
			t.Errorf("max alt %v below horizon", p.MaxAltDeg)
		}
	}

	sidereal := &target.Target{Name: "Vega", Kind: target.Sidereal}
	if _, err := SatellitePasses(s, sidereal, start, start.Add(time.Hour), 0); err == nil {
		t.Error("expected error for non-satellite target")
	}
}

func TestCalcSatelliteTopocentric(t *testing.T) {
	s := subaru(t)
	sat, err := target.NewSatellite("ISS",
		"1 25544U 98067A   24001.50000000  .00016717  00000-0  30777-3 0  9990",
		"2 25544  51.6400 208.9163 0006703 130.5360 325.0288 15.49560000429672")
	if err != nil {
		t.Fatal(err)
	}

	// The computed track must carry the same altitude and azimuth as the
	// look angles from the site, not the geocentric direction.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for at := start; at.Before(start.Add(6 * time.Hour)); at = at.Add(10 * time.Minute) {
		la, err := sat.LookAnglesAt(at, s.LatitudeDeg, s.LongitudeDeg, s.ElevationM)
		if err != nil {
			t.Fatal(err)
		}
		p := Calc(s, sat, at)
		if math.Abs(p.AltDeg-la.AltDeg) > 1e-9 {
			t.Fatalf("at %v: track alt %v, look angles alt %v", at, p.AltDeg, la.AltDeg)
		}
		if math.Abs(p.AzDeg-la.AzDeg) > 1e-9 {
			t.Fatalf("at %v: track az %v, look angles az %v", at, p.AzDeg, la.AzDeg)
		}
		if la.AltDeg > 0 && !(p.Airmass > 0) {
			t.Errorf("at %v: alt %v above horizon but airmass %v", at, la.AltDeg, p.Airmass)
		}
	}
}
