package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naojsoft/spot/internal/almanac"
	"github.com/naojsoft/spot/internal/namesearch"
	"github.com/naojsoft/spot/internal/site"
	"github.com/naojsoft/spot/internal/target"
	"github.com/naojsoft/spot/internal/visibility"
)

// computeAlmanac builds the night timetable in the background
func computeAlmanac(s *site.Site, date time.Time) tea.Cmd {
	return func() tea.Msg {
		events, err := almanac.ComputeEvents(s, date)
		return almanacComputedMsg{events: events, err: err}
	}
}

// loadTargets parses a target list file (CSV, or TLE sets for a .tle path)
func loadTargets(path string) tea.Cmd {
	return func() tea.Msg {
		list, err := target.LoadFile(path)
		return targetsLoadedMsg{list: list, err: err}
	}
}

// resolveName looks an object name up through the name resolver
func resolveName(resolver *namesearch.Resolver, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := resolver.Resolve(ctx, name)
		return nameResolvedMsg{result: result, err: err}
	}
}

// computeTracks samples visibility for every target across the night
func computeTracks(s *site.Site, targets []*target.Target, events *almanac.Events) tea.Cmd {
	return func() tea.Msg {
		// Pad an hour on both ends so the chart shows the twilight slopes.
		start := events.Sunset.Add(-time.Hour)
		stop := events.Sunrise.Add(time.Hour)

		tracks := make([]targetTrack, 0, len(targets))
		var passes []satellitePass
		for _, tgt := range targets {
			points, err := visibility.ComputeTrack(s, tgt, start, stop, 0)
			if err != nil {
				return tracksComputedMsg{err: err}
			}
			tracks = append(tracks, targetTrack{target: tgt, points: points})

			if tgt.Kind == target.Satellite {
				pp, err := visibility.SatellitePasses(s, tgt, start, stop, 0)
				if err != nil {
					return tracksComputedMsg{err: err}
				}
				for _, p := range pp {
					passes = append(passes, satellitePass{name: tgt.Name, pass: p})
				}
			}
		}
		return tracksComputedMsg{tracks: tracks, passes: passes}
	}
}

// waitForReload blocks on the file watcher and reports the next change
func waitForReload(w *target.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case list, ok := <-w.Updates():
			if !ok {
				return nil
			}
			return targetsReloadedMsg{list: list}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return targetsReloadedMsg{err: err}
		}
	}
}
