package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"temperature-heatmap/internal/features/charts"
	"temperature-heatmap/internal/features/heatmap"
)

type fetchFunc func(ctx context.Context) (*heatmap.Dataset, error)

func (f fetchFunc) FetchDataset(ctx context.Context) (*heatmap.Dataset, error) { return f(ctx) }

func staticDataset(ds *heatmap.Dataset) fetchFunc {
	return func(context.Context) (*heatmap.Dataset, error) { return ds, nil }
}

func singleRecord() *heatmap.Dataset {
	return &heatmap.Dataset{
		BaseTemperature: 8.66,
		MonthlyVariance: []heatmap.Variance{{Year: 1900, Month: 1, Variance: -0.5}},
	}
}

func TestRunWritesEveryFormat(t *testing.T) {
	dir := t.TempDir()
	p := &Pipeline{
		Fetcher: staticDataset(singleRecord()),
		Formats: []string{"svg", "html", "png"},
		Dir:     dir,
	}

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Outputs) != 3 {
		t.Fatalf("expected 3 outputs, got %d", len(res.Outputs))
	}
	for _, name := range []string{"heatmap.svg", "index.html", "heatmap.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || info.Size() == 0 {
			t.Fatalf("%s not written: %v", name, err)
		}
	}
	if out, ok := res.Find("png"); !ok || out.Path != filepath.Join(dir, "heatmap.png") {
		t.Fatalf("unexpected png output %+v", out)
	}
}

func TestRunSkipsTrendForSingleYear(t *testing.T) {
	p := &Pipeline{
		Fetcher: staticDataset(singleRecord()),
		Formats: []string{"svg", "trend"},
	}
	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Outputs) != 1 || res.Outputs[0].Format != "svg" {
		t.Fatalf("expected only svg output, got %+v", res.Outputs)
	}
	if res.Outputs[0].Path != "" {
		t.Fatalf("no path expected without an output dir")
	}
}

func TestRunFetchFailureDrawsNothing(t *testing.T) {
	dir := t.TempDir()
	p := &Pipeline{
		Fetcher: fetchFunc(func(context.Context) (*heatmap.Dataset, error) {
			return nil, errors.New("dial tcp: connection refused")
		}),
		Formats: []string{"svg"},
		Dir:     dir,
	}

	res, err := p.Run(context.Background())
	if !errors.Is(err, ErrNothingDrawn) {
		t.Fatalf("expected ErrNothingDrawn, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected no result")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected no files, got %d", len(entries))
	}
}

func TestRunEmptyDatasetDrawsNothing(t *testing.T) {
	p := &Pipeline{
		Fetcher: staticDataset(&heatmap.Dataset{BaseTemperature: 8.66}),
		Formats: []string{"svg"},
	}
	if _, err := p.Run(context.Background()); !errors.Is(err, ErrNothingDrawn) {
		t.Fatalf("expected ErrNothingDrawn, got %v", err)
	}
}

func TestRunRejectsUnknownFormatBeforeFetching(t *testing.T) {
	fetched := false
	p := &Pipeline{
		Fetcher: fetchFunc(func(context.Context) (*heatmap.Dataset, error) {
			fetched = true
			return singleRecord(), nil
		}),
		Formats: []string{"gif"},
	}
	if _, err := p.Run(context.Background()); !errors.Is(err, charts.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if fetched {
		t.Fatalf("dataset should not be fetched for an invalid format list")
	}
}
