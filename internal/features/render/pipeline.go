package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"temperature-heatmap/internal/features/charts"
	"temperature-heatmap/internal/features/heatmap"
	storage "temperature-heatmap/internal/infra/fs"
	logging "temperature-heatmap/internal/infra/log"

	"go.uber.org/zap"
)

// ErrNothingDrawn is returned when the dataset could not be fetched or used.
// The failure has already been logged as a warning.
var ErrNothingDrawn = errors.New("nothing drawn")

type DatasetFetcher interface {
	FetchDataset(ctx context.Context) (*heatmap.Dataset, error)
}

// Pipeline fetches the dataset once per run and renders it in each format.
type Pipeline struct {
	Fetcher DatasetFetcher
	Chart   heatmap.Options
	Formats []string
	Dir     string
}

// Output is one rendered file.
type Output struct {
	Format string
	Path   string
	Data   []byte
}

type Result struct {
	Chart   *heatmap.Chart
	Outputs []Output
}

// Find returns the output for format, if it was rendered.
func (r *Result) Find(format string) (Output, bool) {
	for _, o := range r.Outputs {
		if o.Format == format {
			return o, true
		}
	}
	return Output{}, false
}

// Build fetches the dataset and lays out the chart without rendering.
func (p *Pipeline) Build(ctx context.Context) (*heatmap.Chart, error) {
	ds, err := p.Fetcher.FetchDataset(ctx)
	if err != nil {
		logging.LogWarn("Dataset fetch failed, nothing drawn", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNothingDrawn, err)
	}

	chart, err := heatmap.Build(ds, p.Chart)
	if err != nil {
		logging.LogWarn("Dataset unusable, nothing drawn", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNothingDrawn, err)
	}
	return chart, nil
}

// Run builds the chart and renders every configured format. When Dir is set
// each output is also written there.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	renderers := make([]charts.Renderer, 0, len(p.Formats))
	for _, f := range p.Formats {
		r, err := charts.Lookup(f)
		if err != nil {
			return nil, err
		}
		renderers = append(renderers, r)
	}

	chart, err := p.Build(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Chart: chart}
	for _, r := range renderers {
		var buf bytes.Buffer
		if err := r.Render(&buf, chart); err != nil {
			if errors.Is(err, charts.ErrNotEnoughYears) {
				logging.LogWarn("Skipping format", zap.String("format", r.Format()), zap.Error(err))
				continue
			}
			return nil, fmt.Errorf("failed to render %s: %w", r.Format(), err)
		}

		out := Output{Format: r.Format(), Data: buf.Bytes()}
		if p.Dir != "" {
			path, err := storage.WriteChartFile(p.Dir, r.FileName(), out.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", r.FileName(), err)
			}
			out.Path = path
		}
		result.Outputs = append(result.Outputs, out)
	}

	logging.LogSuccess("Heatmap rendered",
		zap.Int("cells", len(chart.Cells)),
		zap.Int("outputs", len(result.Outputs)),
		zap.String("years", fmt.Sprintf("%d-%d", chart.Layout.YearStart, chart.Layout.YearEnd)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return result, nil
}
