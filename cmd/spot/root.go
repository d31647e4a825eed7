package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/naojsoft/spot/internal/site"
	"github.com/naojsoft/spot/internal/ui"
)

var (
	flagSite    string
	flagTargets string
	flagDate    string
	flagSites   string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "spot",
	Short: "Plan a night of astronomical observations from the terminal",
	Long: `SPOT is an observation planning tool for ground-based astronomy.

Pick an observing site, load a target list (or resolve object names
through SIMBAD/NED), and SPOT shows the night's almanac together with
altitude tracks, airmass and moon separation for every target. A .tle
target file is read as two-line element sets and adds satellite targets
with their passes over the site.

Controls:
  ↑/↓      - Navigate lists and the target table
  Enter    - Select / Load / Search
  Tab      - Switch panes
  N / P    - Next / previous night
  T        - Add a target
  S        - Change site
  q        - Quit`,
	RunE: runSpot,
}

func init() {
	rootCmd.Flags().StringVar(&flagSite, "site", "", "observing site id (e.g. subaru); skips the site chooser")
	rootCmd.Flags().StringVar(&flagTargets, "targets", "", "target list file (CSV, or .tle element sets) to load at startup")
	rootCmd.Flags().StringVar(&flagDate, "date", "", "observation date, YYYY-MM-DD (default: today)")
	rootCmd.Flags().StringVar(&flagSites, "sites", "", "extra site definitions YAML (default: ~/.spot/sites.yaml)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "write a debug log to spot-debug.log")
}

func runSpot(cmd *cobra.Command, args []string) error {
	if flagDebug {
		f, err := tea.LogToFile("spot-debug.log", "spot")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	}

	overridePath := flagSites
	if overridePath == "" {
		overridePath = site.DefaultOverridePath()
	}
	registry, err := site.Load(overridePath)
	if err != nil {
		return fmt.Errorf("loading site definitions: %w", err)
	}

	var date time.Time
	if flagDate != "" {
		date, err = time.Parse("2006-01-02", flagDate)
		if err != nil {
			return fmt.Errorf("parsing --date %q (want YYYY-MM-DD): %w", flagDate, err)
		}
	}

	m := ui.NewModel(ui.Config{
		Registry: registry,
		SiteID:   flagSite,
		Targets:  flagTargets,
		Date:     date,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
