package target

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingColumn reports a target file whose header lacks a required
// column.
var ErrMissingColumn = errors.New("missing required column")

// MissingColumnError carries which required column was absent. It unwraps
// to ErrMissingColumn.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("target list missing required column %q", e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// List is a set of targets loaded from one file.
type List struct {
	Path    string
	Targets []*Target
}

// requiredColumns must all be present in a target list header.
var requiredColumns = []string{"Name", "RA", "DEC"}

// dateTimeLayouts are the accepted DateTime column formats, interpreted as UTC.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// LoadCSV loads a comma-separated target list. Recognized columns are Name,
// RA, DEC, Equinox, PM-RA, PM-DEC, DateTime and Comment; Name, RA and DEC
// are required. Rows sharing a Name and carrying a DateTime value form the
// ephemeris track of a single non-sidereal target.
func LoadCSV(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening target list: %w", err)
	}
	defer f.Close()

	targets, err := ParseCSV(f, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &List{Path: path, Targets: targets}, nil
}

// ParseCSV parses target rows from r. category is recorded on each target
// (normally the source file path).
func ParseCSV(r io.Reader, category string) ([]*Target, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	col := make(map[string]int)
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := col[strings.ToLower(required)]; !ok {
			return nil, &MissingColumnError{Column: required}
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var targets []*Target
	tracks := make(map[string]*Target) // non-sidereal accumulation by name

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(row) == 0 {
			continue
		}

		name := field(row, "name")
		if name == "" {
			name = "none"
		}

		ra, err := NormalizeRA(field(row, "ra"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		dec, err := NormalizeDec(field(row, "dec"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		eq, err := NormalizeEquinox(field(row, "equinox"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var pmRA, pmDec float64
		if s := field(row, "pm-ra"); s != "" {
			if pmRA, err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("line %d: parsing PM-RA: %w", line, err)
			}
		}
		if s := field(row, "pm-dec"); s != "" {
			if pmDec, err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("line %d: parsing PM-DEC: %w", line, err)
			}
		}

		if s := field(row, "datetime"); s != "" {
			at, err := parseDateTime(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			tgt, ok := tracks[name]
			if !ok {
				tgt = &Target{
					Name:     name,
					RADeg:    ra,
					DecDeg:   dec,
					Equinox:  eq,
					Comment:  field(row, "comment"),
					Category: category,
					Kind:     NonSidereal,
					Track:    NewEphemTrack(nil),
				}
				tracks[name] = tgt
				targets = append(targets, tgt)
			}
			tgt.Track.Append(EphemPoint{Time: at, RADeg: ra, DecDeg: dec})
			continue
		}

		targets = append(targets, &Target{
			Name:     name,
			RADeg:    ra,
			DecDeg:   dec,
			Equinox:  eq,
			PMRA:     pmRA,
			PMDec:    pmDec,
			Comment:  field(row, "comment"),
			Category: category,
			Kind:     Sidereal,
		})
	}

	return targets, nil
}

func parseDateTime(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing DateTime %q", s)
}
