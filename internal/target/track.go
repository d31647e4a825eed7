package target

import (
	"sort"
	"time"

	"github.com/naojsoft/spot/internal/astro"
)

// EphemPoint is one tabulated position of a non-sidereal body.
type EphemPoint struct {
	Time   time.Time
	RADeg  float64
	DecDeg float64
}

// EphemTrack is a time-ordered ephemeris table. Positions between points
// are linearly interpolated; outside the table the nearest endpoint is
// returned and flagged as stale.
type EphemTrack struct {
	points []EphemPoint
}

// NewEphemTrack builds a track from points, sorting them by time.
func NewEphemTrack(points []EphemPoint) *EphemTrack {
	tr := &EphemTrack{points: points}
	tr.sortPoints()
	return tr
}

// Append adds one point, keeping the table ordered.
func (tr *EphemTrack) Append(p EphemPoint) {
	tr.points = append(tr.points, p)
	tr.sortPoints()
}

func (tr *EphemTrack) sortPoints() {
	sort.Slice(tr.points, func(i, j int) bool {
		return tr.points[i].Time.Before(tr.points[j].Time)
	})
}

// Len reports the number of tabulated points.
func (tr *EphemTrack) Len() int { return len(tr.points) }

// Span reports the first and last tabulated times.
func (tr *EphemTrack) Span() (start, end time.Time) {
	if len(tr.points) == 0 {
		return time.Time{}, time.Time{}
	}
	return tr.points[0].Time, tr.points[len(tr.points)-1].Time
}

// At returns the interpolated position at t. fresh is false when t falls
// outside the tabulated span, in which case the nearest endpoint position
// is returned.
func (tr *EphemTrack) At(t time.Time) (raDeg, decDeg float64, fresh bool) {
	n := len(tr.points)
	if n == 0 {
		return 0, 0, false
	}
	if !t.After(tr.points[0].Time) {
		p := tr.points[0]
		return p.RADeg, p.DecDeg, t.Equal(p.Time)
	}
	if !t.Before(tr.points[n-1].Time) {
		p := tr.points[n-1]
		return p.RADeg, p.DecDeg, t.Equal(p.Time)
	}

	i := sort.Search(n, func(i int) bool {
		return !tr.points[i].Time.Before(t)
	})
	p0, p1 := tr.points[i-1], tr.points[i]
	dt := p1.Time.Sub(p0.Time).Seconds()
	if dt <= 0 {
		return p1.RADeg, p1.DecDeg, true
	}
	f := t.Sub(p0.Time).Seconds() / dt

	// Interpolate RA through the shorter arc so tracks crossing 0h do
	// not sweep the long way around.
	dra := astro.NormalizeDeg180(p1.RADeg - p0.RADeg)
	raDeg = astro.NormalizeDeg(p0.RADeg + f*dra)
	decDeg = p0.DecDeg + f*(p1.DecDeg-p0.DecDeg)
	return raDeg, decDeg, true
}
