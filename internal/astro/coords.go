package astro

import (
	"math"
	"time"
)

// Horizontal holds topocentric horizontal coordinates.
type Horizontal struct {
	AltDeg float64 // 0 = horizon, 90 = zenith
	AzDeg  float64 // 0 = North, clockwise
}

// ToHorizontal converts equatorial coordinates to horizontal coordinates for
// an observer at latitude latDeg with local mean sidereal time lmstDeg.
// Azimuth is measured from North, clockwise through East.
func ToHorizontal(raDeg, decDeg, latDeg, lmstDeg float64) Horizontal {
	ha := HourAngle(lmstDeg, raDeg) * deg2rad
	dec := decDeg * deg2rad
	lat := latDeg * deg2rad

	sinAlt := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(ha)
	alt := math.Asin(sinAlt)

	// Azimuth from South westward (Meeus 13.5), shifted to North-based.
	az := math.Atan2(math.Sin(ha),
		math.Cos(ha)*math.Sin(lat)-math.Tan(dec)*math.Cos(lat))

	return Horizontal{
		AltDeg: alt * rad2deg,
		AzDeg:  NormalizeDeg(az*rad2deg + 180.0),
	}
}

// AltAt is a convenience over ToHorizontal for callers that only need the
// altitude of a fixed equatorial position at a given instant.
func AltAt(raDeg, decDeg, latDeg, lonDeg float64, t time.Time) float64 {
	return ToHorizontal(raDeg, decDeg, latDeg, LMST(t, lonDeg)).AltDeg
}

// HourAngle returns the hour angle in degrees in [-180, 180), negative east
// of the meridian (before transit).
func HourAngle(lmstDeg, raDeg float64) float64 {
	return NormalizeDeg180(lmstDeg - raDeg)
}

// ParallacticAngle returns the parallactic angle in degrees for a target at
// hour angle haDeg and declination decDeg seen from latitude latDeg.
func ParallacticAngle(haDeg, decDeg, latDeg float64) float64 {
	ha := haDeg * deg2rad
	dec := decDeg * deg2rad
	lat := latDeg * deg2rad
	pang := math.Atan2(math.Sin(ha),
		math.Tan(lat)*math.Cos(dec)-math.Sin(dec)*math.Cos(ha))
	return pang * rad2deg
}

// Airmass returns the relative atmospheric path length for a target at the
// given altitude, using the interpolative formula of Pickering (2002):
//
//	X = 1 / sin(alt + 244/(165 + 47·alt^1.1))
//
// Altitude is in degrees. At or below the horizon the airmass is undefined
// and NaN is returned. At the zenith the value is 1 to within 1e-6.
func Airmass(altDeg float64) float64 {
	if altDeg <= 0 {
		return math.NaN()
	}
	corr := 244.0 / (165.0 + 47.0*math.Pow(altDeg, 1.1))
	return 1.0 / math.Sin((altDeg+corr)*deg2rad)
}

// AltForAirmass returns the altitude in degrees at which Airmass equals am.
// Values at or below 1 return 90. Uses bisection on the monotonic airmass
// curve between the horizon and the zenith.
func AltForAirmass(am float64) float64 {
	if am <= Airmass(90.0) {
		return 90.0
	}
	lo, hi := 0.0, 90.0
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if Airmass(mid) > am {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// Separation returns the angular separation in degrees between two
// equatorial positions, via the haversine form which is stable for small
// angles.
func Separation(ra1, dec1, ra2, dec2 float64) float64 {
	p1 := dec1 * deg2rad
	p2 := dec2 * deg2rad
	dRA := (ra2 - ra1) * deg2rad
	dDec := p2 - p1

	a := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(p1)*math.Cos(p2)*math.Sin(dRA/2)*math.Sin(dRA/2)
	return 2 * math.Asin(math.Min(1, math.Sqrt(a))) * rad2deg
}
