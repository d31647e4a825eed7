// Package site holds the observation site reference data: builtin sites
// embedded in the binary, optionally merged with a per-user override file.
package site

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed sites.yaml
var builtinYAML []byte

// earthRadiusM is the equatorial Earth radius used for the horizon
// depression estimate.
const earthRadiusM = 6378136.6

// Site is the immutable description of an observing site.
type Site struct {
	ID               string   `yaml:"-"`
	Name             string   `yaml:"name"`
	LatitudeDeg      float64  `yaml:"latitude"`
	LongitudeDeg     float64  `yaml:"longitude"`
	ElevationM       float64  `yaml:"elevation"`
	PressureMbar     float64  `yaml:"pressure"`
	TemperatureC     float64  `yaml:"temperature"`
	HumidityPct      float64  `yaml:"humidity"`
	TimezoneName     string   `yaml:"timezone"`
	UTCOffsetMin     int      `yaml:"utc_offset_min"`
	HorizonDeg       *float64 `yaml:"horizon"`
	FOVDeg           float64  `yaml:"fov"`
	ObsWavelengthA   float64  `yaml:"observing_wavelength_a"`
	GuideWavelengthA float64  `yaml:"guiding_wavelength_a"`
}

// Location returns a fixed-offset time.Location for the site's standard time.
func (s *Site) Location() *time.Location {
	return time.FixedZone(s.TimezoneName, s.UTCOffsetMin*60)
}

// HorizonDepressionDeg returns the apparent horizon altitude for the site:
// the configured override if present, otherwise the elevation-based
// depression -sqrt(2h/R) in degrees.
func (s *Site) HorizonDepressionDeg() float64 {
	if s.HorizonDeg != nil {
		return *s.HorizonDeg
	}
	return -math.Sqrt(2*s.ElevationM/earthRadiusM) * 180.0 / math.Pi
}

// Validate checks the site's coordinate and timezone fields.
func (s *Site) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("site %q: missing name", s.ID)
	}
	if s.LatitudeDeg < -90 || s.LatitudeDeg > 90 {
		return fmt.Errorf("site %q: latitude %f out of range [-90, 90]", s.ID, s.LatitudeDeg)
	}
	if s.LongitudeDeg < -180 || s.LongitudeDeg > 180 {
		return fmt.Errorf("site %q: longitude %f out of range [-180, 180]", s.ID, s.LongitudeDeg)
	}
	if s.ElevationM < 0 {
		return fmt.Errorf("site %q: negative elevation %f", s.ID, s.ElevationM)
	}
	if s.TimezoneName == "" {
		return fmt.Errorf("site %q: missing timezone name", s.ID)
	}
	if s.UTCOffsetMin < -14*60 || s.UTCOffsetMin > 14*60 {
		return fmt.Errorf("site %q: utc_offset_min %d out of range", s.ID, s.UTCOffsetMin)
	}
	return nil
}

type sitesFile struct {
	Sites map[string]*Site `yaml:"sites"`
}

// Registry is the set of known sites keyed by identifier.
type Registry struct {
	sites map[string]*Site
}

// DefaultOverridePath returns the per-user site override file path.
func DefaultOverridePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".spot", "sites.yaml")
}

// Load builds a registry from the builtin site table, merged with the
// override file at overridePath if it exists. An empty overridePath uses
// the default per-user location.
func Load(overridePath string) (*Registry, error) {
	r := &Registry{sites: make(map[string]*Site)}
	if err := r.merge(builtinYAML); err != nil {
		return nil, fmt.Errorf("builtin site table: %w", err)
	}

	if overridePath == "" {
		overridePath = DefaultOverridePath()
	}
	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err == nil {
			if err := r.merge(data); err != nil {
				return nil, fmt.Errorf("site override %s: %w", overridePath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading site override %s: %w", overridePath, err)
		}
	}
	return r, nil
}

func (r *Registry) merge(data []byte) error {
	var f sitesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing sites: %w", err)
	}
	for id, s := range f.Sites {
		s.ID = id
		if err := s.Validate(); err != nil {
			return err
		}
		r.sites[id] = s
	}
	return nil
}

// Get looks up a site by identifier.
func (r *Registry) Get(id string) (*Site, error) {
	s, ok := r.sites[id]
	if !ok {
		return nil, fmt.Errorf("unknown site %q (known: %v)", id, r.IDs())
	}
	return s, nil
}

// IDs returns the sorted site identifiers.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.sites))
	for id := range r.sites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns all sites sorted by name.
func (r *Registry) All() []*Site {
	sites := make([]*Site, 0, len(r.sites))
	for _, s := range r.sites {
		sites = append(sites, s)
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].Name < sites[j].Name })
	return sites
}
