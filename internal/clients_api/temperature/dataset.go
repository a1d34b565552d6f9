package temperature

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"temperature-heatmap/internal/features/heatmap"
	"temperature-heatmap/internal/infra/log"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// datasetDocument mirrors the JSON shape. Pointers let validation tell a
// missing field from a zero value.
type datasetDocument struct {
	BaseTemperature *float64         `json:"baseTemperature" validate:"required"`
	MonthlyVariance []varianceRecord `json:"monthlyVariance" validate:"required,min=1,dive"`
}

type varianceRecord struct {
	Year     int      `json:"year" validate:"required"`
	Month    int      `json:"month" validate:"min=1,max=12"`
	Variance *float64 `json:"variance" validate:"required"`
}

// ParseDataset decodes and validates a dataset document.
func ParseDataset(data []byte) (*heatmap.Dataset, error) {
	var doc datasetDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	ds := &heatmap.Dataset{
		BaseTemperature: *doc.BaseTemperature,
		MonthlyVariance: make([]heatmap.Variance, len(doc.MonthlyVariance)),
	}
	for i, r := range doc.MonthlyVariance {
		ds.MonthlyVariance[i] = heatmap.Variance{Year: r.Year, Month: r.Month, Variance: *r.Variance}
	}
	return ds, nil
}

// FetchDataset downloads and parses the dataset once.
func (c *Client) FetchDataset(ctx context.Context) (*heatmap.Dataset, error) {
	startTime := time.Now()

	body, err := c.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	ds, err := ParseDataset(body)
	if err != nil {
		return nil, err
	}

	log.LogSuccess("Dataset fetched",
		zap.String("url", c.url),
		zap.Int("records", len(ds.MonthlyVariance)),
		zap.Float64("base_temperature", ds.BaseTemperature),
		zap.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return ds, nil
}
