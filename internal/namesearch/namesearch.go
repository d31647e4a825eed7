// Package namesearch resolves astronomical object names to coordinates
// through the CDS Sesame service, which fronts SIMBAD, NED and VizieR.
package namesearch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	sesameURL = "https://cds.unistra.fr/cgi-bin/nph-sesame"
	userAgent = "spot/1.0"
)

// Cache stores resolved names between sessions. The catalog store
// implements it.
type Cache interface {
	CachedCoords(name string) (raDeg, decDeg float64, ok bool, err error)
	StoreCoords(name string, raDeg, decDeg float64, resolver string) error
}

// Result is one resolved object.
type Result struct {
	Name     string
	RADeg    float64
	DecDeg   float64
	Resolver string // which backing service answered
	Cached   bool
}

// Resolver queries the Sesame name resolver, with local caching and
// polite rate limiting.
type Resolver struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	cache      Cache
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBaseURL overrides the Sesame endpoint, chiefly for tests.
func WithBaseURL(u string) Option {
	return func(r *Resolver) { r.baseURL = u }
}

// WithCache attaches a persistent cache.
func WithCache(c Cache) Option {
	return func(r *Resolver) { r.cache = c }
}

// NewResolver creates a Sesame resolver. Requests are limited to one per
// second to stay within the CDS usage guidance.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: sesameURL,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve looks a name up, consulting the cache first.
func (r *Resolver) Resolve(ctx context.Context, name string) (*Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("object name cannot be empty")
	}

	if r.cache != nil {
		ra, dec, ok, err := r.cache.CachedCoords(name)
		if err != nil {
			return nil, err
		}
		if ok {
			return &Result{Name: name, RADeg: ra, DecDeg: dec, Cached: true}, nil
		}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	// -oI selects plain-text output with identifiers; SN tries SIMBAD
	// then NED.
	reqURL := fmt.Sprintf("%s/-oI/SN?%s", r.baseURL, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying sesame: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sesame returned status %d", resp.StatusCode)
	}

	res, err := parseSesame(resp.Body, name)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.StoreCoords(name, res.RADeg, res.DecDeg, res.Resolver); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// parseSesame extracts the J2000 position from Sesame's plain-text reply.
// The relevant line has the form "%J 10.68470833 +41.26875000 = ...";
// "#=Simbad" style markers name the answering service.
func parseSesame(body io.Reader, name string) (*Result, error) {
	res := &Result{Name: name}
	found := false

	sc := bufio.NewScanner(body)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "#=S"):
			res.Resolver = "simbad"
		case strings.HasPrefix(line, "#=N"):
			res.Resolver = "ned"
		case strings.HasPrefix(line, "#=V"):
			res.Resolver = "vizier"
		case strings.HasPrefix(line, "%J ") && !found:
			fields := strings.Fields(line)
			if len(fields) < 3 {
				continue
			}
			ra, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				continue
			}
			dec, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				continue
			}
			res.RADeg, res.DecDeg = ra, dec
			found = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading sesame response: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no match found for %q", name)
	}
	return res, nil
}
