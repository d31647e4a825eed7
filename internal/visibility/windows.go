package visibility

import (
	"time"

	"github.com/naojsoft/spot/internal/almanac"
)

// Time-axis windows for plotting tracks, matching how observers frame a
// night.

// NightWindow spans the night with a small margin on both ends.
func NightWindow(ev *almanac.Events) (start, stop time.Time) {
	return ev.Sunset.Add(-15 * time.Minute), ev.Sunrise.Add(15 * time.Minute)
}

// DayWindow spans the full 24 hours from the almanac's local noon.
func DayWindow(ev *almanac.Events) (start, stop time.Time) {
	return ev.Noon, ev.Noon.Add(24 * time.Hour)
}

// CurrentWindow frames the present moment: a short look back and the rest
// of the coming observing block ahead.
func CurrentWindow(now time.Time) (start, stop time.Time) {
	return now.Add(-150 * time.Minute), now.Add(450 * time.Minute)
}
