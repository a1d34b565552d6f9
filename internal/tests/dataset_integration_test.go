//go:build integration

package tests

import (
	"context"
	"testing"
	"time"

	"temperature-heatmap/internal/clients_api/temperature"
	"temperature-heatmap/internal/features/heatmap"
)

// TestIntegration_Dataset_FetchAndBuild downloads the public dataset and
// builds the full chart model from it.
func TestIntegration_Dataset_FetchAndBuild(t *testing.T) {
	c := temperature.NewClient(temperature.Options{URL: temperature.DefaultURL, MaxRetries: 2})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	ds, err := c.FetchDataset(ctx)
	if err != nil {
		t.Fatalf("FetchDataset failed: %v", err)
	}
	if len(ds.MonthlyVariance) < 12 {
		t.Fatalf("expected at least a year of records, got %d", len(ds.MonthlyVariance))
	}

	chart, err := heatmap.Build(ds, heatmap.Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(chart.Rects) != len(ds.MonthlyVariance) {
		t.Fatalf("expected %d rects, got %d", len(ds.MonthlyVariance), len(chart.Rects))
	}
	if chart.Layout.YearStart >= chart.Layout.YearEnd {
		t.Fatalf("unexpected year range %d-%d", chart.Layout.YearStart, chart.Layout.YearEnd)
	}
}
