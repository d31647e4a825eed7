package findimage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
)

func TestESOCutoutURL(t *testing.T) {
	r := Request{RADeg: 10.684583, DecDeg: 41.269167, Survey: "DSS2-red", FOVArcmin: 15}
	raw := r.ESOCutoutURL()

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if u.Host != "archive.eso.org" {
		t.Errorf("host = %q", u.Host)
	}
	q := u.Query()
	if got := q.Get("ra"); !strings.HasPrefix(got, "00 42 44") {
		t.Errorf("ra = %q, want sexagesimal fields", got)
	}
	if got := q.Get("dec"); !strings.HasPrefix(got, "+41 16") {
		t.Errorf("dec = %q", got)
	}
	if q.Get("Sky-Survey") != "DSS2-red" || q.Get("equinox") != "2000" {
		t.Errorf("query = %v", q)
	}
	if q.Get("x") != "15" || q.Get("y") != "15" {
		t.Errorf("fov = (%q, %q)", q.Get("x"), q.Get("y"))
	}
	if q.Get("mime-type") != "application/x-fits" {
		t.Errorf("mime-type = %q", q.Get("mime-type"))
	}
}

func TestSTScICutoutURL(t *testing.T) {
	r := Request{RADeg: 10.684583, DecDeg: -41.269167, Equinox: 1950, Survey: "poss2ukstu_red", FOVArcmin: 10}
	u, err := url.Parse(r.STScICutoutURL())
	if err != nil {
		t.Fatal(err)
	}
	q := u.Query()
	if q.Get("v") != "poss2ukstu_red" || q.Get("f") != "fits" {
		t.Errorf("query = %v", q)
	}
	if q.Get("e") != "J1950" {
		t.Errorf("equinox = %q", q.Get("e"))
	}
	if !strings.HasPrefix(q.Get("r"), "10.684") || !strings.HasPrefix(q.Get("d"), "-41.269") {
		t.Errorf("position = (%q, %q)", q.Get("r"), q.Get("d"))
	}
}

func TestFetchCachesDownloads(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("SIMPLE  =                    T"))
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir())
	f.esoURL = srv.URL

	req := Request{RADeg: 150.0, DecDeg: 2.0, Survey: "DSS1", FOVArcmin: 5}
	path1, err := f.FetchESO(context.Background(), req)
	if err != nil {
		t.Fatalf("FetchESO: %v", err)
	}
	data, err := os.ReadFile(path1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "SIMPLE") {
		t.Errorf("cached content = %q", data)
	}

	path2, err := f.FetchESO(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if path1 != path2 {
		t.Errorf("cache paths differ: %q vs %q", path1, path2)
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1", calls)
	}
}

func TestFetchPropagatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no coverage", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir())
	f.stsciURL = srv.URL

	req := Request{RADeg: 150.0, DecDeg: 2.0, Survey: "poss1_red", FOVArcmin: 5}
	if _, err := f.FetchSTScI(context.Background(), req); err == nil {
		t.Fatal("expected error for 404")
	}
}
