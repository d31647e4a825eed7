// Package findimage fetches survey sky cutouts around a position from the
// ESO and STScI Digitized Sky Survey archives.
package findimage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/naojsoft/spot/internal/astro"
)

const (
	esoDSSURL   = "https://archive.eso.org/dss/dss"
	stsciDSSURL = "https://archive.stsci.edu/cgi-bin/dss_search"
)

// Surveys available per service.
var (
	ESOSurveys   = []string{"DSS1", "DSS2-red", "DSS2-blue", "DSS2-infrared"}
	STScISurveys = []string{"poss1_blue", "poss1_red", "poss2ukstu_blue", "poss2ukstu_red", "poss2ukstu_ir"}
)

// Request describes one cutout: a J2000 position and a square field of
// view in arcminutes.
type Request struct {
	RADeg     float64
	DecDeg    float64
	Equinox   float64 // 2000 when zero
	Survey    string
	FOVArcmin float64
}

func (r Request) equinoxYear() int {
	if r.Equinox == 0 {
		return 2000
	}
	return int(r.Equinox)
}

// ESOCutoutURL builds the ESO archive request. The position travels as
// space-separated sexagesimal fields.
func (r Request) ESOCutoutURL() string {
	ra := strings.ReplaceAll(astro.FormatHMS(r.RADeg, 3), ":", " ")
	dec := strings.ReplaceAll(astro.FormatDMS(r.DecDeg, 2), ":", " ")

	v := url.Values{}
	v.Set("ra", ra)
	v.Set("dec", dec)
	v.Set("mime-type", "application/x-fits")
	v.Set("x", fmt.Sprintf("%g", r.FOVArcmin))
	v.Set("y", fmt.Sprintf("%g", r.FOVArcmin))
	v.Set("Sky-Survey", r.Survey)
	v.Set("equinox", fmt.Sprintf("%d", r.equinoxYear()))
	return esoDSSURL + "?" + v.Encode()
}

// STScICutoutURL builds the STScI archive request. The position travels
// in decimal degrees.
func (r Request) STScICutoutURL() string {
	v := url.Values{}
	v.Set("v", r.Survey)
	v.Set("r", fmt.Sprintf("%f", r.RADeg))
	v.Set("d", fmt.Sprintf("%f", r.DecDeg))
	v.Set("e", fmt.Sprintf("J%d", r.equinoxYear()))
	v.Set("h", fmt.Sprintf("%g", r.FOVArcmin))
	v.Set("w", fmt.Sprintf("%g", r.FOVArcmin))
	v.Set("f", "fits")
	v.Set("c", "none")
	v.Set("fov", "NONE")
	v.Set("v3", "")
	return stsciDSSURL + "?" + v.Encode()
}

// Fetcher downloads cutouts into a local cache directory.
type Fetcher struct {
	httpClient *http.Client
	cacheDir   string

	// overridable endpoints for tests
	esoURL   string
	stsciURL string
}

// NewFetcher creates a fetcher caching downloads under dir.
func NewFetcher(dir string) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		cacheDir: dir,
		esoURL:   esoDSSURL,
		stsciURL: stsciDSSURL,
	}
}

// cacheName is stable for a given request so repeated fetches hit the
// local copy.
func (r Request) cacheName(service string) string {
	return fmt.Sprintf("%s_%s_%.5f_%+.5f_%g.fits",
		service, strings.ReplaceAll(r.Survey, "/", "-"), r.RADeg, r.DecDeg, r.FOVArcmin)
}

// FetchESO downloads an ESO DSS cutout, returning the path of the cached
// FITS file.
func (f *Fetcher) FetchESO(ctx context.Context, r Request) (string, error) {
	u := r.ESOCutoutURL()
	if f.esoURL != esoDSSURL {
		u = f.esoURL + "?" + strings.SplitN(u, "?", 2)[1]
	}
	return f.download(ctx, u, r.cacheName("eso"))
}

// FetchSTScI downloads an STScI DSS cutout, returning the path of the
// cached FITS file.
func (f *Fetcher) FetchSTScI(ctx context.Context, r Request) (string, error) {
	u := r.STScICutoutURL()
	if f.stsciURL != stsciDSSURL {
		u = f.stsciURL + "?" + strings.SplitN(u, "?", 2)[1]
	}
	return f.download(ctx, u, r.cacheName("stsci"))
}

func (f *Fetcher) download(ctx context.Context, rawURL, name string) (string, error) {
	if err := os.MkdirAll(f.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("creating image cache: %w", err)
	}
	dest := filepath.Join(f.cacheDir, name)
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading cutout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cutout service returned status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(f.cacheDir, name+".part*")
	if err != nil {
		return "", fmt.Errorf("creating cache file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing cutout: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("finalizing cache file: %w", err)
	}
	return dest, nil
}
