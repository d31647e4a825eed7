package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/naojsoft/spot/internal/target"
	"github.com/naojsoft/spot/internal/visibility"
)

func TestNewAltitudeChartPlotsTracks(t *testing.T) {
	start := time.Date(2025, 3, 20, 5, 0, 0, 0, time.UTC)
	var points []visibility.TrackPoint
	for i := 0; i < 12; i++ {
		points = append(points, visibility.TrackPoint{
			Time:   start.Add(time.Duration(i) * 30 * time.Minute),
			AltDeg: float64(10 + i*5),
		})
	}
	tracks := []targetTrack{{
		target: &target.Target{Name: "M31"},
		points: points,
	}}

	chart := newAltitudeChart(tracks, 60, 15)
	if view := chart.View(); strings.TrimSpace(view) == "" {
		t.Fatal("chart rendered no content")
	}
}
