package target

import (
	"fmt"
	"math"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/naojsoft/spot/internal/astro"
)

// NewSatellite builds an Earth-orbiter target from its two TLE lines.
func NewSatellite(name, line1, line2 string) (*Target, error) {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)
	if !strings.HasPrefix(line1, "1 ") || !strings.HasPrefix(line2, "2 ") {
		return nil, fmt.Errorf("satellite %q: malformed TLE lines", name)
	}
	if len(line1) < 69 || len(line2) < 69 {
		return nil, fmt.Errorf("satellite %q: TLE lines too short", name)
	}
	return &Target{
		Name:     name,
		Equinox:  2000.0,
		Kind:     Satellite,
		TLELine1: line1,
		TLELine2: line2,
	}, nil
}

func (t *Target) orbitSat() *satellite.Satellite {
	if t.orbit == nil {
		sat := satellite.TLEToSat(t.TLELine1, t.TLELine2, satellite.GravityWGS72)
		t.orbit = &sat
	}
	return t.orbit
}

// satelliteRADec propagates the orbit to at and converts the ECI position
// to geocentric equatorial coordinates. The TEME frame is referred to the
// equinox of date, which is close enough to J2000 for plotting purposes
// over the TLE's validity window.
func (t *Target) satelliteRADec(at time.Time) (raDeg, decDeg float64, err error) {
	at = at.UTC()
	year, month, day := at.Date()
	hour, min, sec := at.Clock()

	pos, _ := satellite.Propagate(*t.orbitSat(), year, int(month), day, hour, min, sec)
	r := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
	if r == 0 || math.IsNaN(r) {
		return 0, 0, fmt.Errorf("satellite %q: propagation failed at %s", t.Name, at.Format(time.RFC3339))
	}
	raDeg = astro.NormalizeDeg(rad2deg(math.Atan2(pos.Y, pos.X)))
	decDeg = rad2deg(math.Asin(pos.Z / r))
	return raDeg, decDeg, nil
}

// SatLookAngles holds a satellite's topocentric direction from an observer.
type SatLookAngles struct {
	AltDeg   float64
	AzDeg    float64
	RangeKm  float64
	Eclipsed bool
}

// LookAnglesAt computes the satellite's altitude, azimuth and range from an
// observer at the given geodetic position (degrees, metres above sea level).
func (t *Target) LookAnglesAt(at time.Time, latDeg, lonDeg, elevM float64) (SatLookAngles, error) {
	if t.Kind != Satellite {
		return SatLookAngles{}, fmt.Errorf("target %q is not a satellite", t.Name)
	}
	at = at.UTC()
	year, month, day := at.Date()
	hour, min, sec := at.Clock()

	pos, _ := satellite.Propagate(*t.orbitSat(), year, int(month), day, hour, min, sec)
	r := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
	if r == 0 || math.IsNaN(r) {
		return SatLookAngles{}, fmt.Errorf("satellite %q: propagation failed at %s", t.Name, at.Format(time.RFC3339))
	}

	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	obs := satellite.LatLong{
		Latitude:  deg2rad(latDeg),
		Longitude: deg2rad(lonDeg),
	}
	la := satellite.ECIToLookAngles(pos, obs, elevM/1000.0, jd)
	return SatLookAngles{
		AltDeg:  rad2deg(la.El),
		AzDeg:   astro.NormalizeDeg(rad2deg(la.Az)),
		RangeKm: la.Rg,
	}, nil
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }
