// Package ui implements the interactive terminal front end: site
// selection, target entry, and the nightly visibility display.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"

	"github.com/naojsoft/spot/internal/almanac"
	"github.com/naojsoft/spot/internal/catalog"
	"github.com/naojsoft/spot/internal/namesearch"
	"github.com/naojsoft/spot/internal/site"
	"github.com/naojsoft/spot/internal/target"
)

// AppState represents the current state of the application
type AppState int

const (
	StateSiteSelect  AppState = iota // Choose an observing site
	StateTargetInput                 // Enter a target list path or object name
	StateLoading                     // Computing almanac and visibility
	StateDisplay                     // Display the night's planning view
	StateError                       // Error state
)

// ActivePane represents which pane is currently focused
type ActivePane int

const (
	PaneTable ActivePane = iota
	PaneChart
	PaneAlmanac
)

// Config carries the startup options into the model.
type Config struct {
	Registry *site.Registry
	SiteID   string // preselected site, skips the site list when set
	Targets  string // target list file to load at startup
	Date     time.Time
}

// Model represents the application's state
type Model struct {
	state      AppState
	activePane ActivePane
	width      int
	height     int
	err        error

	// Site selection
	registry *site.Registry
	siteList list.Model
	site     *site.Site

	// Observation date (anchors the night at local noon)
	date time.Time

	// Target entry
	targetInput textinput.Model
	targetsPath string
	resolver    *namesearch.Resolver
	store       *catalog.Store

	// Data
	events  *almanac.Events
	targets []*target.Target
	tracks  []targetTrack
	passes  []satellitePass

	// Display components
	table   table.Model
	chart   timeserieslinechart.Model
	watcher *target.Watcher

	// Loading
	spinner       spinner.Model
	loadingStatus string
}

// NewModel creates a new application model
func NewModel(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Target list file or object name (e.g. targets.csv or M31)..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	date := cfg.Date
	if date.IsZero() {
		date = time.Now()
	}

	m := Model{
		state:       StateSiteSelect,
		activePane:  PaneTable,
		registry:    cfg.Registry,
		date:        date,
		targetInput: ti,
		targetsPath: cfg.Targets,
		resolver:    newResolver(),
		spinner:     sp,
	}

	if cfg.SiteID != "" {
		if s, err := cfg.Registry.Get(cfg.SiteID); err == nil {
			m.site = s
			m.state = StateLoading
			m.loadingStatus = "Computing almanac..."
		} else {
			m.err = err
			m.state = StateError
		}
	}
	return m
}

// newResolver wires the name resolver to the catalog cache when the
// catalog database is usable.
func newResolver() *namesearch.Resolver {
	store, err := catalog.NewStore(catalog.DefaultPath())
	if err != nil {
		return namesearch.NewResolver()
	}
	return namesearch.NewResolver(namesearch.WithCache(store))
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	if m.state == StateLoading {
		cmds := []tea.Cmd{m.spinner.Tick, computeAlmanac(m.site, m.date)}
		if m.targetsPath != "" {
			cmds = append(cmds, loadTargets(m.targetsPath))
		}
		return tea.Batch(cmds...)
	}
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateSiteSelect && m.width > 0 {
			m.siteList = createSiteList(m.registry.All(), msg.Width-4, msg.Height-10)
		}
		if m.state == StateDisplay && len(m.tracks) > 0 {
			m.rebuildDisplay()
		}
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	case almanacComputedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = StateError
			return m, nil
		}
		m.events = msg.events
		if len(m.targets) > 0 {
			return m, computeTracks(m.site, m.targets, m.events)
		}
		if m.targetsPath == "" {
			// Nothing queued to load; ask for targets.
			m.state = StateTargetInput
			m.targetInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case targetsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = StateError
			return m, nil
		}
		m.targets = msg.list.Targets
		m.targetsPath = msg.list.Path
		cmds := []tea.Cmd{m.startWatcher()}
		if m.events != nil {
			cmds = append(cmds, computeTracks(m.site, m.targets, m.events))
		}
		return m, tea.Batch(cmds...)

	case targetsReloadedMsg:
		if msg.err != nil {
			// Keep showing the last good list; surface nothing fatal.
			if m.watcher != nil {
				return m, waitForReload(m.watcher)
			}
			return m, nil
		}
		m.targets = msg.list.Targets
		cmds := []tea.Cmd{waitForReload(m.watcher)}
		if m.events != nil {
			cmds = append(cmds, computeTracks(m.site, m.targets, m.events))
		}
		return m, tea.Batch(cmds...)

	case nameResolvedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("name search failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.targets = append(m.targets, &target.Target{
			Name:     msg.result.Name,
			RADeg:    msg.result.RADeg,
			DecDeg:   msg.result.DecDeg,
			Equinox:  2000.0,
			Category: "namesearch",
		})
		if m.events != nil {
			return m, computeTracks(m.site, m.targets, m.events)
		}
		return m, nil

	case tracksComputedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = StateError
			return m, nil
		}
		m.tracks = msg.tracks
		m.passes = msg.passes
		m.rebuildDisplay()
		m.state = StateDisplay
		return m, nil
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Global keys; typing states need their characters.
		if keyMsg.String() == "ctrl+c" {
			m.closeWatcher()
			return m, tea.Quit
		}
		if keyMsg.String() == "q" && m.state != StateTargetInput && m.state != StateSiteSelect {
			m.closeWatcher()
			return m, tea.Quit
		}

		switch m.state {
		case StateSiteSelect:
			return m.handleSiteList(msg)

		case StateTargetInput:
			return m.handleTargetInput(keyMsg)

		case StateDisplay:
			return m.handleDisplayKeys(keyMsg)

		case StateError:
			m.err = nil
			if m.site == nil {
				m.state = StateSiteSelect
				m.siteList = createSiteList(m.registry.All(), m.width-4, m.height-10)
				return m, nil
			}
			// Any key returns to target input
			m.state = StateTargetInput
			m.targetInput.Focus()
			return m, textinput.Blink
		}
	}

	// Update appropriate component based on state
	switch m.state {
	case StateLoading:
		m.spinner, cmd = m.spinner.Update(msg)
	case StateSiteSelect:
		m.siteList, cmd = m.siteList.Update(msg)
	case StateTargetInput:
		m.targetInput, cmd = m.targetInput.Update(msg)
	case StateDisplay:
		if m.activePane == PaneTable {
			m.table, cmd = m.table.Update(msg)
		}
	}

	return m, cmd
}

// handleSiteList handles input while choosing a site
func (m Model) handleSiteList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEnter {
			if item, ok := m.siteList.SelectedItem().(siteItem); ok {
				m.site = item.site
				m.state = StateLoading
				m.loadingStatus = "Computing almanac..."
				cmds := []tea.Cmd{m.spinner.Tick, computeAlmanac(m.site, m.date)}
				if m.targetsPath != "" {
					cmds = append(cmds, loadTargets(m.targetsPath))
				}
				return m, tea.Batch(cmds...)
			}
		}
	}

	m.siteList, cmd = m.siteList.Update(msg)
	return m, cmd
}

// handleTargetInput handles input while entering a target source
func (m Model) handleTargetInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.err != nil && msg.Type != tea.KeyEnter {
		m.err = nil
	}

	if msg.Type == tea.KeyEnter {
		query := m.targetInput.Value()
		if query == "" {
			return m, nil
		}
		m.err = nil
		m.state = StateLoading
		m.targetInput.SetValue("")

		// A path to an existing file loads a target list; anything else
		// goes to the name resolver.
		if _, err := os.Stat(query); err == nil {
			m.loadingStatus = "Loading target list..."
			return m, tea.Batch(m.spinner.Tick, loadTargets(query))
		}
		m.loadingStatus = fmt.Sprintf("Resolving %q...", query)
		return m, tea.Batch(m.spinner.Tick, resolveName(m.resolver, query))
	}

	m.targetInput, cmd = m.targetInput.Update(msg)
	return m, cmd
}

// handleDisplayKeys handles input on the main display
func (m Model) handleDisplayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		// Back to site selection
		m.closeWatcher()
		m.state = StateSiteSelect
		m.siteList = createSiteList(m.registry.All(), m.width-4, m.height-10)
		m.events = nil
		m.tracks = nil
		m.passes = nil
		return m, nil

	case "t":
		// Add another target
		m.state = StateTargetInput
		m.targetInput.Focus()
		return m, textinput.Blink

	case "n", "p":
		// Step the observation date
		delta := 1
		if msg.String() == "p" {
			delta = -1
		}
		m.date = m.date.AddDate(0, 0, delta)
		m.state = StateLoading
		m.loadingStatus = "Computing almanac..."
		return m, tea.Batch(m.spinner.Tick, computeAlmanac(m.site, m.date))

	case "tab":
		switch m.activePane {
		case PaneTable:
			m.activePane = PaneChart
		case PaneChart:
			m.activePane = PaneAlmanac
		default:
			m.activePane = PaneTable
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.activePane == PaneTable {
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// startWatcher begins following the loaded target file for edits.
func (m *Model) startWatcher() tea.Cmd {
	m.closeWatcher()
	if m.targetsPath == "" {
		return nil
	}
	w, err := target.NewWatcher(m.targetsPath)
	if err != nil {
		return nil // planning still works without live reload
	}
	m.watcher = w
	return waitForReload(w)
}

func (m *Model) closeWatcher() {
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
}

// rebuildDisplay refreshes the table and chart from current tracks.
func (m *Model) rebuildDisplay() {
	at := time.Now()
	if m.events != nil {
		now := time.Now()
		if now.Before(m.events.Sunset) || now.After(m.events.Sunrise) {
			at = m.events.NightCenter
		}
	}

	tableHeight := len(m.tracks) + 1
	if tableHeight > 12 {
		tableHeight = 12
	}
	m.table = createTargetTable(m.tracks, at, tableHeight)

	chartWidth := m.width - 48
	if chartWidth < 40 {
		chartWidth = 40
	}
	chartHeight := m.height - 16
	if chartHeight < 10 {
		chartHeight = 10
	}
	m.chart = newAltitudeChart(m.tracks, chartWidth, chartHeight)
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateSiteSelect:
		return m.viewSiteSelect()
	case StateTargetInput:
		return m.viewTargetInput()
	case StateLoading:
		return m.viewLoading()
	case StateDisplay:
		return m.viewDisplay()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewSiteSelect renders the observing site chooser
func (m Model) viewSiteSelect() string {
	title := titleStyle.Render("✶ SPOT - Site Planning & Observation Tool")
	subtitle := mutedStyle.Render("Choose an observing site")

	help := helpStyle.Render("↑/↓: Navigate • Enter: Select • Ctrl+C: Quit")

	var sections []string
	sections = append(sections, title)
	sections = append(sections, subtitle)
	sections = append(sections, "")
	sections = append(sections, m.siteList.View())
	sections = append(sections, "")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewTargetInput renders the target entry view
func (m Model) viewTargetInput() string {
	title := titleStyle.Render("✶ Targets")
	var subtitle string
	if m.site != nil {
		subtitle = mutedStyle.Render(fmt.Sprintf("Site: %s • Night of %s",
			m.site.Name, m.date.Format("2006-01-02")))
	}

	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 2).
		Width(64).
		Render(m.targetInput.View())

	var errLine string
	if m.err != nil {
		errLine = errorStyle.Padding(0, 2).Render("✗ " + m.err.Error())
	}

	examples := mutedStyle.Render("Examples: ./targets.csv | ./sats.tle | M31 | NGC 253 | Barnard's Star")
	help := helpStyle.Render("Press Enter to load/search • Ctrl+C to quit")

	var sections []string
	sections = append(sections, title)
	if subtitle != "" {
		sections = append(sections, subtitle)
	}
	sections = append(sections, "", inputBox)
	if errLine != "" {
		sections = append(sections, "", errLine)
	}
	sections = append(sections, "", examples, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	status := m.loadingStatus
	if status == "" {
		status = "Working..."
	}
	return lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		titleStyle.Render("✶ SPOT"),
		"",
		fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render(status)),
	)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error")

	var errorMsg string
	if m.err != nil {
		errorMsg = m.err.Error()
	} else {
		errorMsg = "An unknown error occurred"
	}

	help := helpStyle.Render("Press any key to continue • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", help)
}

// viewDisplay renders the main planning display
func (m Model) viewDisplay() string {
	if m.site == nil {
		return "No site selected"
	}

	var sections []string

	header := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Padding(0, 1).
		Render(fmt.Sprintf("✶ %s — night of %s", m.site.Name, m.date.Format("2006-01-02")))
	sections = append(sections, header)

	if m.events != nil {
		loc := m.site.Location()
		sub := mutedStyle.Render(fmt.Sprintf("sunset %s • sunrise %s • moon %.0f%%",
			m.events.Sunset.In(loc).Format("15:04"),
			m.events.Sunrise.In(loc).Format("15:04"),
			m.events.MoonIllum*100))
		sections = append(sections, sub, "")
	}

	// Left column: almanac, plus satellite passes when any were found;
	// right column: chart over table.
	left := m.renderAlmanacPane(30)
	if len(m.passes) > 0 {
		left = lipgloss.JoinVertical(lipgloss.Left, left, m.renderPassesPane(30))
	}
	right := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderChartPane(m.width-38),
		m.renderTablePane(m.width-38),
	)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, left, right))

	help := helpStyle.Render("T: Add target • N/P: Next/prev night • Tab: Switch panes • S: Change site • Q: Quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
