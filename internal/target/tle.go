package target

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile loads a target list, dispatching on the file extension: ".tle"
// files hold two-line element sets, everything else is read as CSV.
func LoadFile(path string) (*List, error) {
	if strings.EqualFold(filepath.Ext(path), ".tle") {
		return LoadTLE(path)
	}
	return LoadCSV(path)
}

// LoadTLE loads satellite targets from a two-line element file.
func LoadTLE(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening TLE file: %w", err)
	}
	defer f.Close()

	targets, err := ParseTLE(f, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &List{Path: path, Targets: targets}, nil
}

// ParseTLE parses two-line element sets from r. Each set may be preceded by
// a name line (a "0 " prefix, as some feeds write, is stripped); unnamed
// sets take their NORAD catalog number as the name. category is recorded on
// each target.
func ParseTLE(r io.Reader, category string) ([]*Target, error) {
	sc := bufio.NewScanner(r)
	var targets []*Target
	var name, line1 string
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "1 "):
			if line1 != "" {
				return nil, fmt.Errorf("line %d: element line 1 repeated without a line 2", lineNo)
			}
			line1 = line
		case strings.HasPrefix(line, "2 "):
			if line1 == "" {
				return nil, fmt.Errorf("line %d: element line 2 without a preceding line 1", lineNo)
			}
			if name == "" && len(line1) >= 7 {
				name = "NORAD " + strings.TrimSpace(line1[2:7])
			}
			tgt, err := NewSatellite(name, line1, line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			tgt.Category = category
			targets = append(targets, tgt)
			name, line1 = "", ""
		default:
			name = strings.TrimSpace(strings.TrimPrefix(line, "0 "))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading TLE data: %w", err)
	}
	if line1 != "" {
		return nil, fmt.Errorf("element set %q missing its line 2", line1)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no element sets found")
	}
	return targets, nil
}
