package charts

import (
	"fmt"
	"io"
	"strconv"

	"temperature-heatmap/internal/features/heatmap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ECharts writes an interactive ECharts page of the same grid. The visual
// map uses the chart's colour stops over the observed temperature range.
type ECharts struct{}

func (ECharts) Format() string      { return "echarts" }
func (ECharts) FileName() string    { return "echarts.html" }
func (ECharts) ContentType() string { return "text/html; charset=utf-8" }

func (ECharts) Render(w io.Writer, chart *heatmap.Chart) error {
	l := chart.Layout

	years := make([]string, 0, l.YearSpan()+1)
	for y := l.YearStart; y <= l.YearEnd; y++ {
		years = append(years, strconv.Itoa(y))
	}

	data := make([]opts.HeatMapData, 0, len(chart.Cells))
	for _, c := range chart.Cells {
		data = append(data, opts.HeatMapData{
			Name:  fmt.Sprintf("%d-%s", c.Year, c.MonthName()),
			Value: [3]interface{}{c.Year - l.YearStart, c.MonthIndex(), c.Temp},
		})
	}

	colors := make([]string, len(chart.Color.Stops))
	for i, s := range chart.Color.Stops {
		colors[i] = s.Color.Hex()
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: chart.Title,
			Width:     fmt.Sprintf("%dpx", int(l.Width)),
			Height:    fmt.Sprintf("%dpx", int(l.Height)),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    chart.Title,
			Subtitle: chart.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category",
			Data: years,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category",
			Data: heatmap.MonthNames[:],
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        float32(chart.Color.Min),
			Max:        float32(chart.Color.Max),
			InRange:    &opts.VisualMapInRange{Color: colors},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:  "slider",
			Start: 0,
			End:   100,
		}),
	)
	hm.SetXAxis(years).AddSeries("temperature", data)

	return hm.Render(w)
}
