package ui

import (
	"github.com/naojsoft/spot/internal/almanac"
	"github.com/naojsoft/spot/internal/namesearch"
	"github.com/naojsoft/spot/internal/target"
	"github.com/naojsoft/spot/internal/visibility"
)

// Message types for async operations

// almanacComputedMsg is sent when the night's event timetable is ready
type almanacComputedMsg struct {
	events *almanac.Events
	err    error
}

// targetsLoadedMsg is sent when a target list file has been parsed
type targetsLoadedMsg struct {
	list *target.List
	err  error
}

// targetsReloadedMsg is sent when the watched target file changed on disk
type targetsReloadedMsg struct {
	list *target.List
	err  error
}

// nameResolvedMsg is sent when a name lookup completes
type nameResolvedMsg struct {
	result *namesearch.Result
	err    error
}

// tracksComputedMsg is sent when visibility tracks for the night are ready
type tracksComputedMsg struct {
	tracks []targetTrack
	passes []satellitePass
	err    error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}

// targetTrack pairs a target with its sampled night track.
type targetTrack struct {
	target *target.Target
	points []visibility.TrackPoint
}

// satellitePass couples a pass window with the satellite it belongs to.
type satellitePass struct {
	name string
	pass visibility.Pass
}
