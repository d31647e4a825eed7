package astro

import (
	"math"
	"time"
)

// SunRADec returns the apparent right ascension and declination of the Sun
// in degrees for a given UTC time.
//
// Low-precision series from Meeus "Astronomical Algorithms" chapter 25,
// accurate to about 0.01 degrees, which is ample for rise/set and twilight
// searches.
func SunRADec(t time.Time) (raDeg, decDeg float64) {
	T := (JulianDate(t) - J2000) / 36525.0

	// Geometric mean longitude and mean anomaly of the Sun.
	L0 := 280.46646 + 36000.76983*T + 0.0003032*T*T
	M := 357.52911 + 35999.05029*T - 0.0001537*T*T
	Mrad := NormalizeDeg(M) * deg2rad

	// Equation of center.
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(Mrad) +
		(0.019993-0.000101*T)*math.Sin(2*Mrad) +
		0.000289*math.Sin(3*Mrad)

	trueLon := L0 + C

	// Correct to apparent longitude (nutation and aberration).
	omega := (125.04 - 1934.136*T) * deg2rad
	appLon := trueLon - 0.00569 - 0.00478*math.Sin(omega)
	lamRad := NormalizeDeg(appLon) * deg2rad

	eps := (obliquityDeg(T) + 0.00256*math.Cos(omega)) * deg2rad

	ra := math.Atan2(math.Cos(eps)*math.Sin(lamRad), math.Cos(lamRad))
	dec := math.Asin(math.Sin(eps) * math.Sin(lamRad))

	return NormalizeDeg(ra * rad2deg), dec * rad2deg
}

// obliquityDeg returns the mean obliquity of the ecliptic in degrees for
// Julian centuries T from J2000.
func obliquityDeg(T float64) float64 {
	return 23.43929111 - 0.01300417*T - 1.64e-7*T*T
}
