package target

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const tleData = `ISS (ZARYA)
1 25544U 98067A   24001.50000000  .00016717  00000-0  30777-3 0  9990
2 25544  51.6400 208.9163 0006703 130.5360 325.0288 15.49560000429672
`

func TestParseTLE(t *testing.T) {
	targets, err := ParseTLE(strings.NewReader(tleData), "test")
	if err != nil {
		t.Fatalf("ParseTLE: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(targets))
	}
	sat := targets[0]
	if sat.Name != "ISS (ZARYA)" {
		t.Errorf("name = %q", sat.Name)
	}
	if sat.Kind != Satellite {
		t.Errorf("kind = %v, want Satellite", sat.Kind)
	}
	if sat.Category != "test" {
		t.Errorf("category = %q", sat.Category)
	}
}

func TestParseTLEUnnamed(t *testing.T) {
	// A bare two-line set takes its catalog number as the name.
	bare := strings.Join(strings.Split(tleData, "\n")[1:], "\n")
	targets, err := ParseTLE(strings.NewReader(bare), "test")
	if err != nil {
		t.Fatalf("ParseTLE: %v", err)
	}
	if targets[0].Name != "NORAD 25544" {
		t.Errorf("name = %q, want NORAD 25544", targets[0].Name)
	}
}

func TestParseTLEZeroPrefixName(t *testing.T) {
	targets, err := ParseTLE(strings.NewReader("0 "+tleData), "test")
	if err != nil {
		t.Fatalf("ParseTLE: %v", err)
	}
	if targets[0].Name != "ISS (ZARYA)" {
		t.Errorf("name = %q", targets[0].Name)
	}
}

func TestParseTLEErrors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"line 2 first":   "2 25544  51.6400 208.9163 0006703 130.5360 325.0288 15.49560000429672\n",
		"missing line 2": "ISS\n1 25544U 98067A   24001.50000000  .00016717  00000-0  30777-3 0  9990\n",
		"truncated":      "ISS\n1 25544\n2 25544\n",
	}
	for label, data := range cases {
		if _, err := ParseTLE(strings.NewReader(data), "test"); err == nil {
			t.Errorf("%s: expected error", label)
		}
	}
}

func TestLoadFileDispatch(t *testing.T) {
	dir := t.TempDir()

	tlePath := filepath.Join(dir, "sats.tle")
	if err := os.WriteFile(tlePath, []byte(tleData), 0o644); err != nil {
		t.Fatal(err)
	}
	list, err := LoadFile(tlePath)
	if err != nil {
		t.Fatalf("LoadFile(.tle): %v", err)
	}
	if len(list.Targets) != 1 || list.Targets[0].Kind != Satellite {
		t.Fatalf("expected one satellite target, got %+v", list.Targets)
	}

	csvPath := filepath.Join(dir, "targets.csv")
	csvData := "Name,RA,DEC\nM31,00:42:44.3,+41:16:09\n"
	if err := os.WriteFile(csvPath, []byte(csvData), 0o644); err != nil {
		t.Fatal(err)
	}
	list, err = LoadFile(csvPath)
	if err != nil {
		t.Fatalf("LoadFile(.csv): %v", err)
	}
	if len(list.Targets) != 1 || list.Targets[0].Kind != Sidereal {
		t.Fatalf("expected one sidereal target, got %+v", list.Targets)
	}
}
