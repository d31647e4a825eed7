package ui

import (
	"fmt"
	"strings"
)

// renderPassesPane lists the night's satellite passes: rise, culmination
// altitude and set, in site local time.
func (m Model) renderPassesPane(width int) string {
	var content strings.Builder

	content.WriteString(titleStyle.Render("Passes"))
	content.WriteString("\n\n")

	loc := m.site.Location()
	for _, sp := range m.passes {
		content.WriteString(valueStyle.Render(sp.name))
		content.WriteString("\n")
		content.WriteString(mutedStyle.Render(fmt.Sprintf("%s → %s → %s",
			sp.pass.Rise.In(loc).Format("15:04"),
			sp.pass.Culmination.In(loc).Format("15:04"),
			sp.pass.Set.In(loc).Format("15:04"))))
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("%s %s\n",
			labelStyle.Render("max alt"),
			valueStyle.Render(fmt.Sprintf("%.0f°", sp.pass.MaxAltDeg))))
	}

	return paneStyle.Width(width).Render(content.String())
}
