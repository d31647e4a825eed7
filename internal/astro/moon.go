package astro

import (
	"math"
	"time"
)

// MoonRADec returns the geocentric right ascension and declination of the
// Moon in degrees for a given UTC time.
//
// Truncated series from Meeus "Astronomical Algorithms" chapter 47, keeping
// the largest periodic terms. Accuracy is on the order of 0.3 degrees, which
// is sufficient for moonrise/moonset and separation estimates. Topocentric
// parallax (up to about a degree) is not applied.
func MoonRADec(t time.Time) (raDeg, decDeg float64) {
	T := (JulianDate(t) - J2000) / 36525.0

	// Fundamental arguments (degrees).
	Lp := 218.3164477 + 481267.88123421*T // mean longitude
	D := 297.8501921 + 445267.1114034*T   // mean elongation
	M := 357.5291092 + 35999.0502909*T    // sun mean anomaly
	Mp := 134.9633964 + 477198.8675055*T  // moon mean anomaly
	F := 93.2720950 + 483202.0175233*T    // argument of latitude

	d := NormalizeDeg(D) * deg2rad
	m := NormalizeDeg(M) * deg2rad
	mp := NormalizeDeg(Mp) * deg2rad
	f := NormalizeDeg(F) * deg2rad

	// Longitude perturbations (degrees), largest terms of table 47.A.
	lon := NormalizeDeg(Lp) +
		6.288774*math.Sin(mp) +
		1.274027*math.Sin(2*d-mp) +
		0.658314*math.Sin(2*d) +
		0.213618*math.Sin(2*mp) -
		0.185116*math.Sin(m) -
		0.114332*math.Sin(2*f) +
		0.058793*math.Sin(2*d-2*mp) +
		0.057066*math.Sin(2*d-m-mp) +
		0.053322*math.Sin(2*d+mp) +
		0.045758*math.Sin(2*d-m) -
		0.040923*math.Sin(m-mp) -
		0.034720*math.Sin(d) -
		0.030383*math.Sin(m+mp)

	// Latitude perturbations (degrees), largest terms of table 47.B.
	lat := 5.128122*math.Sin(f) +
		0.280602*math.Sin(mp+f) +
		0.277693*math.Sin(mp-f) +
		0.173237*math.Sin(2*d-f) +
		0.055413*math.Sin(2*d+f-mp) +
		0.046271*math.Sin(2*d-f-mp)

	lamRad := NormalizeDeg(lon) * deg2rad
	betaRad := lat * deg2rad
	eps := obliquityDeg(T) * deg2rad

	ra := math.Atan2(
		math.Sin(lamRad)*math.Cos(eps)-math.Tan(betaRad)*math.Sin(eps),
		math.Cos(lamRad))
	dec := math.Asin(math.Sin(betaRad)*math.Cos(eps) +
		math.Cos(betaRad)*math.Sin(eps)*math.Sin(lamRad))

	return NormalizeDeg(ra * rad2deg), dec * rad2deg
}

// MoonIllumination returns the illuminated fraction of the Moon's disk
// (0 = new, 1 = full) at the given UTC time, from the sun-moon elongation.
func MoonIllumination(t time.Time) float64 {
	sunRA, sunDec := SunRADec(t)
	moonRA, moonDec := MoonRADec(t)
	psi := Separation(sunRA, sunDec, moonRA, moonDec) * deg2rad
	return (1 - math.Cos(psi)) / 2
}
