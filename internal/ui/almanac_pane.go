package ui

import (
	"fmt"
	"strings"
	"time"
)

// renderAlmanacPane renders the night event timetable pane
func (m Model) renderAlmanacPane(width int) string {
	var content strings.Builder

	content.WriteString(titleStyle.Render("Almanac"))
	content.WriteString("\n\n")

	if m.events == nil {
		content.WriteString(mutedStyle.Render("No almanac computed"))
		return paneStyle.Width(width).Render(content.String())
	}

	loc := m.site.Location()
	row := func(label string, at time.Time) {
		var value string
		if at.IsZero() {
			value = mutedStyle.Render("--:--")
		} else {
			value = valueStyle.Render(at.In(loc).Format("15:04"))
		}
		content.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Width(18).Render(label), value))
	}

	row("Sunset", m.events.Sunset)
	row("Civil dusk", m.events.CivilDusk)
	row("Nautical dusk", m.events.NauticalDusk)
	row("Astro dusk", m.events.AstronomicalDusk)
	row("Night center", m.events.NightCenter)
	row("Astro dawn", m.events.AstronomicalDawn)
	row("Nautical dawn", m.events.NauticalDawn)
	row("Civil dawn", m.events.CivilDawn)
	row("Sunrise", m.events.Sunrise)
	content.WriteString("\n")
	row("Moonrise", m.events.Moonrise)
	row("Moonset", m.events.Moonset)
	content.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Width(18).Render("Moon illum"),
		valueStyle.Render(fmt.Sprintf("%.0f%%", m.events.MoonIllum*100))))

	style := paneStyle
	if m.activePane == PaneAlmanac {
		style = activePaneStyle
	}
	return style.Width(width).Render(content.String())
}
