package astro

import "math"

// PrecessToJ2000 transforms mean equatorial coordinates referred to the
// equinox of the given (Julian) epoch year to J2000.0, using the IAU 1976
// precession angles (Meeus chapter 21). Coordinates already at equinox
// 2000.0 are returned unchanged.
func PrecessToJ2000(raDeg, decDeg, equinoxYear float64) (float64, float64) {
	if equinoxYear == 2000.0 {
		return raDeg, decDeg
	}

	jdFrom := J2000 + (equinoxYear-2000.0)*365.25
	T := (jdFrom - J2000) / 36525.0
	t := (J2000 - jdFrom) / 36525.0

	// Precession angles in arcseconds.
	zeta := (2306.2181+1.39656*T-0.000139*T*T)*t +
		(0.30188-0.000344*T)*t*t + 0.017998*t*t*t
	z := (2306.2181+1.39656*T-0.000139*T*T)*t +
		(1.09468+0.000066*T)*t*t + 0.018203*t*t*t
	theta := (2004.3109-0.85330*T-0.000217*T*T)*t -
		(0.42665+0.000217*T)*t*t - 0.041833*t*t*t

	zetaR := zeta / 3600.0 * deg2rad
	zR := z / 3600.0 * deg2rad
	thetaR := theta / 3600.0 * deg2rad

	ra := raDeg * deg2rad
	dec := decDeg * deg2rad

	A := math.Cos(dec) * math.Sin(ra+zetaR)
	B := math.Cos(thetaR)*math.Cos(dec)*math.Cos(ra+zetaR) - math.Sin(thetaR)*math.Sin(dec)
	C := math.Sin(thetaR)*math.Cos(dec)*math.Cos(ra+zetaR) + math.Cos(thetaR)*math.Sin(dec)

	raOut := math.Atan2(A, B) + zR
	decOut := math.Asin(math.Max(-1, math.Min(1, C)))

	return NormalizeDeg(raOut * rad2deg), decOut * rad2deg
}

// ApplyProperMotion advances a J2000 position by its proper motion over
// dtYears. pmRA and pmDec are in mas/year, with pmRA including the cos(dec)
// factor as catalogs list it.
func ApplyProperMotion(raDeg, decDeg, pmRA, pmDec, dtYears float64) (float64, float64) {
	if pmRA == 0 && pmDec == 0 {
		return raDeg, decDeg
	}
	cosDec := math.Cos(decDeg * deg2rad)
	if math.Abs(cosDec) < 1e-9 {
		// At the pole RA motion is degenerate; move in declination only.
		return raDeg, decDeg + pmDec/3.6e6*dtYears
	}
	ra := raDeg + pmRA/3.6e6*dtYears/cosDec
	dec := decDeg + pmDec/3.6e6*dtYears
	return NormalizeDeg(ra), dec
}
