package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/naojsoft/spot/internal/visibility"
)

// targetTableColumns defines the table layout for target visibility rows.
func targetTableColumns() []table.Column {
	return []table.Column{
		{Title: "Name", Width: 16},
		{Title: "RA", Width: 12},
		{Title: "DEC", Width: 12},
		{Title: "Alt", Width: 7},
		{Title: "Az", Width: 7},
		{Title: "AM", Width: 6},
		{Title: "HA", Width: 7},
		{Title: "Moon", Width: 6},
	}
}

// createTargetTable builds the visibility table, with one row per target
// evaluated at the given time.
func createTargetTable(tracks []targetTrack, at time.Time, height int) table.Model {
	t := table.New(
		table.WithColumns(targetTableColumns()),
		table.WithRows(targetTableRows(tracks, at)),
		table.WithHeight(height),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(colorPrimary)
	styles.Selected = styles.Selected.Foreground(valueStyle.GetForeground()).Background(colorBorder)
	t.SetStyles(styles)
	return t
}

func targetTableRows(tracks []targetTrack, at time.Time) []table.Row {
	rows := make([]table.Row, 0, len(tracks))
	for _, tr := range tracks {
		p := pointNearest(tr.points, at)
		tgt := tr.target

		am := "--"
		if !math.IsNaN(p.Airmass) {
			am = fmt.Sprintf("%.2f", p.Airmass)
		}
		name := tgt.Name
		if !p.Fresh {
			name += " *" // position extrapolated outside the ephemeris
		}
		rows = append(rows, table.Row{
			name,
			tgt.FormatRA(),
			tgt.FormatDec(),
			fmt.Sprintf("%.1f", p.AltDeg),
			fmt.Sprintf("%.1f", p.AzDeg),
			am,
			fmt.Sprintf("%+.1f", p.HourAngleDeg/15), // hours
			fmt.Sprintf("%.0f", p.MoonSepDeg),
		})
	}
	return rows
}

// pointNearest returns the sampled point closest in time to at.
func pointNearest(points []visibility.TrackPoint, at time.Time) visibility.TrackPoint {
	if len(points) == 0 {
		return visibility.TrackPoint{}
	}
	best := points[0]
	bestDiff := absDuration(at.Sub(best.Time))
	for _, p := range points[1:] {
		if d := absDuration(at.Sub(p.Time)); d < bestDiff {
			best, bestDiff = p, d
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// renderTablePane renders the target visibility table pane
func (m Model) renderTablePane(width int) string {
	var content strings.Builder

	content.WriteString(titleStyle.Render("Targets"))
	content.WriteString("\n\n")

	if len(m.tracks) == 0 {
		content.WriteString(mutedStyle.Render("No targets loaded"))
		return paneStyle.Width(width).Render(content.String())
	}

	content.WriteString(m.table.View())

	style := paneStyle
	if m.activePane == PaneTable {
		style = activePaneStyle
	}
	return style.Width(width).Render(content.String())
}
