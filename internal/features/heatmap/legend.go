package heatmap

const LegendSwatchHeight = 40

type Swatch struct {
	X, Y          float64
	Width, Height float64
	Fill          RGB
}

// Legend is a row of colour swatches plus an axis over the temperature range.
type Legend struct {
	X, Y        float64
	Swatches    []Swatch
	StrokeWidth float64
	Axis        Axis
}

func (lg Legend) Width() float64 {
	return float64(len(lg.Swatches)) * lg.swatchWidth()
}

func (lg Legend) swatchWidth() float64 {
	if len(lg.Swatches) == 0 {
		return 0
	}
	return lg.Swatches[0].Width
}

// BuildLegend sizes the swatches to half the drawable width and centres the
// row under the chart area.
func BuildLegend(l Layout, color ColorScale) Legend {
	n := len(color.Stops)
	rectWidth := l.W / 2 / float64(n)
	swatches := make([]Swatch, n)
	for i, s := range color.Stops {
		swatches[i] = Swatch{
			X:      float64(i) * rectWidth,
			Y:      0,
			Width:  rectWidth,
			Height: LegendSwatchHeight,
			Fill:   s.Color,
		}
	}

	width := float64(n) * rectWidth
	scale := NewLinearScale(color.Min, color.Max, 0, width)

	return Legend{
		X:           l.Margin.Left + width/2,
		Y:           l.H - LegendSwatchHeight + l.Margin.Top + l.Margin.Bottom*2/3,
		Swatches:    swatches,
		StrokeWidth: 1,
		Axis:        LinearAxis("legend-axis", scale, 0, LegendSwatchHeight),
	}
}
