package commands

import (
	"temperature-heatmap/internal/clients_api/temperature"
	"temperature-heatmap/internal/features/heatmap"
	"temperature-heatmap/internal/features/render"
	"temperature-heatmap/internal/infra/config"
)

func newDatasetClient(cfg *config.Config) *temperature.Client {
	return temperature.NewClient(temperature.Options{
		URL:             cfg.Dataset.URL,
		Timeout:         cfg.Dataset.Timeout(),
		MaxRetries:      cfg.Dataset.MaxRetries,
		MaxResponseSize: cfg.Dataset.MaxResponseSize,
	})
}

func chartOptions(cfg *config.Config) heatmap.Options {
	return heatmap.Options{
		Width:    cfg.Chart.Width,
		Height:   cfg.Chart.Height,
		BarWidth: cfg.Chart.BarWidth,
	}
}

// newPipeline renders formats into dir. An empty dir keeps outputs in memory.
func newPipeline(cfg *config.Config, formats []string, dir string) *render.Pipeline {
	return &render.Pipeline{
		Fetcher: newDatasetClient(cfg),
		Chart:   chartOptions(cfg),
		Formats: formats,
		Dir:     dir,
	}
}
