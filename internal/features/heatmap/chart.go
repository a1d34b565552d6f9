package heatmap

import "fmt"

const DefaultTitle = "Monthly Global Land-Surface Temperature"

type Options struct {
	Width    float64
	Height   float64
	BarWidth float64
	Title    string
	Stops    []ColorStop
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.BarWidth <= 0 {
		o.BarWidth = DefaultBarWidth
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if len(o.Stops) == 0 {
		o.Stops = DefaultStops
	}
	return o
}

// Chart is the full render model handed to a surface-specific renderer.
type Chart struct {
	BaseTemperature float64
	Cells           []Cell
	Layout          Layout
	X               LinearScale
	Bands           BandScale
	Color           ColorScale
	XAxis           Axis
	YAxis           Axis
	Rects           []Rect
	Title           string
	Subtitle        string
	Legend          Legend
	Surface         *Surface
}

// Build runs one render pass over ds. It does not touch any shared state.
func Build(ds *Dataset, opts Options) (*Chart, error) {
	opts = opts.withDefaults()

	cells := DeriveCells(ds)
	if len(cells) == 0 {
		return nil, ErrEmptyDataset
	}

	layout := NewLayout(opts.Width, opts.Height, opts.BarWidth, cells)
	x := layout.XScale()
	bands := NewMonthBands(layout.H)
	minT, maxT := TempRange(cells)
	color := NewColorScale(minT, maxT, opts.Stops)

	return &Chart{
		BaseTemperature: ds.BaseTemperature,
		Cells:           cells,
		Layout:          layout,
		X:               x,
		Bands:           bands,
		Color:           color,
		XAxis:           YearAxis(layout),
		YAxis:           MonthAxis(layout, bands),
		Rects:           BuildRects(cells, layout, x, color),
		Title:           opts.Title,
		Subtitle:        Subtitle(layout.YearStart, layout.YearEnd, ds.BaseTemperature),
		Legend:          BuildLegend(layout, color),
		Surface:         NewSurface(int(opts.Width), int(opts.Height)),
	}, nil
}

func Subtitle(yearStart, yearEnd int, base float64) string {
	return fmt.Sprintf("%d - %d: base temperature %s°C", yearStart, yearEnd, FormatNumber(base))
}

// AnnualMeans averages the temperature of every year, in ascending year order.
func AnnualMeans(cells []Cell) (years []float64, means []float64) {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	start, end := YearRange(cells)
	for _, c := range cells {
		sums[c.Year] += c.Temp
		counts[c.Year]++
	}
	for y := start; y <= end && len(cells) > 0; y++ {
		if counts[y] == 0 {
			continue
		}
		years = append(years, float64(y))
		means = append(means, sums[y]/float64(counts[y]))
	}
	return years, means
}
