package charts

import (
	"errors"
	"fmt"
	"io"

	"temperature-heatmap/internal/features/heatmap"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNotEnoughYears = errors.New("trend needs at least two years of data")

// Trend draws the annual mean absolute temperature as a line chart.
type Trend struct{}

func (Trend) Format() string      { return "trend" }
func (Trend) FileName() string    { return "trend.png" }
func (Trend) ContentType() string { return "image/png" }

func (Trend) Render(w io.Writer, c *heatmap.Chart) error {
	years, means := heatmap.AnnualMeans(c.Cells)
	if len(years) < 2 {
		return ErrNotEnoughYears
	}

	hot := c.Color.Stops[len(c.Color.Stops)-1].Color
	graph := chart.Chart{
		Title:  "Annual Mean Land-Surface Temperature",
		Width:  int(c.Layout.Width),
		Height: int(c.Layout.Height) / 2,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name: "Year",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%d", int(f))
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "°C",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.1f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "annual mean",
				XValues: years,
				YValues: means,
				Style: chart.Style{
					StrokeColor: drawing.Color{R: hot.R, G: hot.G, B: hot.B, A: 255},
					StrokeWidth: 1.5,
				},
			},
		},
	}

	return graph.Render(chart.PNG, w)
}
