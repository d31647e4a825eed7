package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/naojsoft/spot/internal/site"
)

// siteItem wraps a Site for use in a list
type siteItem struct {
	site *site.Site
}

// FilterValue implements list.Item
func (s siteItem) FilterValue() string {
	return s.site.ID + " " + s.site.Name
}

// Title implements list.DefaultItem
func (s siteItem) Title() string {
	return fmt.Sprintf("%s - %s", s.site.ID, s.site.Name)
}

// Description implements list.DefaultItem
func (s siteItem) Description() string {
	return fmt.Sprintf("lat %+.4f  lon %+.4f  elev %.0f m  (%s)",
		s.site.LatitudeDeg, s.site.LongitudeDeg, s.site.ElevationM, s.site.TimezoneName)
}

// createSiteList creates a list.Model from the site registry
func createSiteList(sites []*site.Site, width, height int) list.Model {
	items := make([]list.Item, len(sites))
	for i, s := range sites {
		items[i] = siteItem{site: s}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Select an Observing Site"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)

	return l
}
