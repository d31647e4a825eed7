package ui

import (
	"strings"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

// newAltitudeChart builds a time-series chart of target altitudes across
// the night.
func newAltitudeChart(tracks []targetTrack, width, height int) timeserieslinechart.Model {
	chart := timeserieslinechart.New(width, height)
	chart.XLabelFormatter = timeserieslinechart.HourTimeLabelFormatter()
	chart.SetYRange(0, 90)
	chart.SetViewYRange(0, 90)

	populateAltitudeChart(&chart, tracks)
	return chart
}

// populateAltitudeChart refills the chart datasets from tracks.
func populateAltitudeChart(chart *timeserieslinechart.Model, tracks []targetTrack) {
	chart.ClearAllData()

	for i, tr := range tracks {
		if len(tr.points) == 0 {
			continue
		}
		style := lipgloss.NewStyle().Foreground(chartLineColors[i%len(chartLineColors)])
		chart.SetDataSetStyle(tr.target.Name, style)
		for _, p := range tr.points {
			alt := p.AltDeg
			if alt < 0 {
				alt = 0 // clamp below-horizon stretches to the axis
			}
			chart.PushDataSet(tr.target.Name, timeserieslinechart.TimePoint{
				Time:  p.Time,
				Value: alt,
			})
		}
	}

	if len(tracks) > 0 && len(tracks[0].points) > 0 {
		first := tracks[0].points[0].Time
		last := tracks[0].points[len(tracks[0].points)-1].Time
		chart.SetTimeRange(first, last)
		chart.SetViewTimeRange(first, last)
	}
	chart.DrawBrailleAll()
}

// renderChartPane renders the altitude chart pane with a legend
func (m Model) renderChartPane(width int) string {
	var content strings.Builder

	content.WriteString(titleStyle.Render("Altitude"))
	content.WriteString("\n\n")

	if len(m.tracks) == 0 {
		content.WriteString(mutedStyle.Render("No targets loaded"))
		return paneStyle.Width(width).Render(content.String())
	}

	content.WriteString(m.chart.View())
	content.WriteString("\n")

	// Legend
	var legend []string
	for i, tr := range m.tracks {
		style := lipgloss.NewStyle().Foreground(chartLineColors[i%len(chartLineColors)])
		legend = append(legend, style.Render("── "+tr.target.Name))
	}
	content.WriteString(strings.Join(legend, "  "))

	style := paneStyle
	if m.activePane == PaneChart {
		style = activePaneStyle
	}
	return style.Width(width).Render(content.String())
}
