package temperature

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"temperature-heatmap/internal/infra/fs"
	"temperature-heatmap/internal/infra/retry"
)

const sampleJSON = `{"baseTemperature":8.66,"monthlyVariance":[{"year":1900,"month":1,"variance":-0.5},{"year":1901,"month":2,"variance":0}]}`

func TestParseDataset(t *testing.T) {
	ds, err := ParseDataset([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("ParseDataset failed: %v", err)
	}
	if ds.BaseTemperature != 8.66 || len(ds.MonthlyVariance) != 2 {
		t.Fatalf("unexpected dataset %+v", ds)
	}
	if ds.MonthlyVariance[1].Variance != 0 {
		t.Fatalf("zero variance should be accepted")
	}
}

func TestParseDatasetRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"not json":        `<html>blocked</html>`,
		"missing base":    `{"monthlyVariance":[{"year":1900,"month":1,"variance":0.1}]}`,
		"empty series":    `{"baseTemperature":8.66,"monthlyVariance":[]}`,
		"month too large": `{"baseTemperature":8.66,"monthlyVariance":[{"year":1900,"month":13,"variance":0.1}]}`,
		"missing var":     `{"baseTemperature":8.66,"monthlyVariance":[{"year":1900,"month":1}]}`,
	}
	for name, body := range cases {
		if _, err := ParseDataset([]byte(body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestFetchDatasetOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	c := NewClient(Options{URL: srv.URL, Timeout: 5 * time.Second})
	ds, err := c.FetchDataset(context.Background())
	if err != nil {
		t.Fatalf("FetchDataset failed: %v", err)
	}
	if len(ds.MonthlyVariance) != 2 {
		t.Fatalf("expected 2 records, got %d", len(ds.MonthlyVariance))
	}
}

func TestFetchDatasetStatusError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Options{URL: srv.URL, MaxRetries: 3})
	_, err := c.FetchDataset(context.Background())
	var he *retry.HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("404 must not be retried, got %d calls", calls)
	}
}

func TestFetchDatasetRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	c := NewClient(Options{URL: srv.URL, MaxRetries: 2})
	if _, err := c.FetchDataset(context.Background()); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestFetchDatasetFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "global-temperature.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0644); err != nil {
		t.Fatal(err)
	}

	for _, source := range []string{path, "file://" + path} {
		c := NewClient(Options{URL: source})
		ds, err := c.FetchDataset(context.Background())
		if err != nil {
			t.Fatalf("%s: FetchDataset failed: %v", source, err)
		}
		if ds.BaseTemperature != 8.66 {
			t.Fatalf("%s: unexpected base temperature %v", source, ds.BaseTemperature)
		}
	}
}

func TestFetchDatasetMissingFile(t *testing.T) {
	c := NewClient(Options{URL: filepath.Join(t.TempDir(), "missing.json")})
	_, err := c.FetchDataset(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to fetch dataset") {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestFetchDatasetRejectsOversizedResponse(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	c := NewClient(Options{URL: srv.URL, MaxResponseSize: int64(len(sampleJSON) - 1), MaxRetries: 2})
	_, err := c.FetchDataset(context.Background())
	if !errors.Is(err, fs.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("oversized response must not be retried, got %d calls", calls)
	}

	c = NewClient(Options{URL: srv.URL, MaxResponseSize: int64(len(sampleJSON))})
	if _, err := c.FetchDataset(context.Background()); err != nil {
		t.Fatalf("response at the limit should pass, got %v", err)
	}
}

func TestFetchDatasetRejectsOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "global-temperature.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewClient(Options{URL: path, MaxResponseSize: 16})
	_, err := c.FetchDataset(context.Background())
	if !errors.Is(err, fs.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}
