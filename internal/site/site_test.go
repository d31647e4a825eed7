package site

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Builtins(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := []string{"aao", "gtc", "oao", "salt", "subaru", "vlt"}
	got := r.IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLoad_SubaruValues(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	s, err := r.Get("subaru")
	if err != nil {
		t.Fatalf("Get(subaru) error: %v", err)
	}

	if math.Abs(s.LatitudeDeg-19.8255) > 0.001 {
		t.Errorf("latitude = %f, want 19.8255", s.LatitudeDeg)
	}
	if math.Abs(s.LongitudeDeg-(-155.4760)) > 0.001 {
		t.Errorf("longitude = %f, want -155.4760", s.LongitudeDeg)
	}
	if s.ElevationM != 4163 {
		t.Errorf("elevation = %f, want 4163", s.ElevationM)
	}
	if s.UTCOffsetMin != -600 {
		t.Errorf("utc_offset_min = %d, want -600", s.UTCOffsetMin)
	}

	// At 4163 m the horizon depression is about -2.07 degrees.
	if h := s.HorizonDepressionDeg(); math.Abs(h-(-2.07)) > 0.05 {
		t.Errorf("HorizonDepressionDeg() = %f, want about -2.07", h)
	}

	loc := s.Location()
	if loc.String() != "HST" {
		t.Errorf("Location() = %s, want HST", loc)
	}
}

func TestLoad_OverrideMergesAndAdds(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "sites.yaml")
	content := `sites:
  subaru:
    name: Subaru (test override)
    latitude: 19.8255
    longitude: -155.4760
    elevation: 4163
    timezone: HST
    utc_offset_min: -600
    fov: 1.5
  backyard:
    name: Backyard
    latitude: 35.0
    longitude: -120.0
    elevation: 100
    timezone: PST
    utc_offset_min: -480
    fov: 2.0
`
	if err := os.WriteFile(override, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(override)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	s, err := r.Get("subaru")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "Subaru (test override)" {
		t.Errorf("override not applied, name = %s", s.Name)
	}

	if _, err := r.Get("backyard"); err != nil {
		t.Errorf("added site not found: %v", err)
	}

	if len(r.IDs()) != 7 {
		t.Errorf("len(IDs()) = %d, want 7", len(r.IDs()))
	}
}

func TestLoad_InvalidOverride(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "sites.yaml")
	content := `sites:
  broken:
    name: Broken
    latitude: 99.0
    longitude: 0.0
    timezone: UTC
    utc_offset_min: 0
`
	if err := os.WriteFile(override, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(override); err == nil {
		t.Fatal("Load() with latitude 99 should fail")
	}
}

func TestGet_UnknownSite(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get("nope"); err == nil {
		t.Error("Get(nope) should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		site    Site
		wantErr bool
	}{
		{"valid", Site{ID: "x", Name: "X", LatitudeDeg: 10, LongitudeDeg: 20, TimezoneName: "UTC"}, false},
		{"bad latitude", Site{ID: "x", Name: "X", LatitudeDeg: -91, TimezoneName: "UTC"}, true},
		{"bad longitude", Site{ID: "x", Name: "X", LongitudeDeg: 181, TimezoneName: "UTC"}, true},
		{"missing name", Site{ID: "x", TimezoneName: "UTC"}, true},
		{"missing timezone", Site{ID: "x", Name: "X"}, true},
		{"bad offset", Site{ID: "x", Name: "X", TimezoneName: "UTC", UTCOffsetMin: 900}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.site.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
