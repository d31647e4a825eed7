// Package astro provides the coordinate and ephemeris primitives used by the
// almanac and visibility calculations: Julian dates, sidereal time,
// low-precision solar and lunar positions, and the equatorial-to-horizontal
// transform with its derived quantities (airmass, hour angle, parallactic
// angle).
//
// All angles are in degrees unless a name says otherwise, and all time
// arguments are interpreted in UTC.
package astro

import (
	"math"
	"time"
)

// J2000 is the Julian Date of the J2000.0 epoch (January 1, 2000, 12:00:00 TT).
const J2000 = 2451545.0

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

// JulianDate converts a time.Time to Julian Date.
// Uses the standard astronomical algorithm valid for dates after March 1, 4801 BC.
func JulianDate(t time.Time) float64 {
	t = t.UTC()
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())
	h := float64(t.Hour())
	min := float64(t.Minute())
	s := float64(t.Second()) + float64(t.Nanosecond())/1e9

	// Adjust year/month for Jan/Feb (treat as months 13/14 of previous year).
	if m <= 2 {
		y -= 1
		m += 12
	}

	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + B - 1524.5
	jd += (h + min/60.0 + s/3600.0) / 24.0

	return jd
}

// MJD returns the Modified Julian Date for t.
func MJD(t time.Time) float64 {
	return JulianDate(t) - 2400000.5
}

// GMST calculates Greenwich Mean Sidereal Time in degrees [0, 360) for a
// given UTC time. Uses the IAU-82 model as described in Vallado
// "Fundamentals of Astrodynamics" (Eq 3-47):
//
//	θ_GMST = 67310.54841 + (876600h + 8640184.812866)*T + 0.093104*T² - 6.2e-6*T³
//
// where T is Julian centuries of UT1 from J2000.0, result is in seconds of time.
func GMST(t time.Time) float64 {
	jd := JulianDate(t)
	tUT1 := (jd - J2000) / 36525.0

	// GMST in seconds of time.
	// 876600h = 876600 * 3600 = 3155760000 seconds.
	gmstSec := 67310.54841 +
		(3155760000.0+8640184.812866)*tUT1 +
		0.093104*tUT1*tUT1 -
		6.2e-6*tUT1*tUT1*tUT1

	gmstSec = math.Mod(gmstSec, 86400.0)
	if gmstSec < 0 {
		gmstSec += 86400.0
	}
	return gmstSec / 86400.0 * 360.0
}

// LMST calculates Local Mean Sidereal Time in degrees [0, 360) for a given
// UTC time and an east-positive longitude in degrees.
func LMST(t time.Time, lonDeg float64) float64 {
	return NormalizeDeg(GMST(t) + lonDeg)
}

// NormalizeDeg reduces an angle to the range [0, 360).
func NormalizeDeg(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

// NormalizeDeg180 reduces an angle to the range [-180, 180).
func NormalizeDeg180(d float64) float64 {
	d = NormalizeDeg(d)
	if d >= 180.0 {
		d -= 360.0
	}
	return d
}
