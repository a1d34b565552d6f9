package heatmap

// Rect is a drawable cell descriptor, independent of the output surface.
type Rect struct {
	X, Y          float64
	Width, Height float64
	Fill          RGB
	Month         int // 0-based band index
	Year          int
	Temp          float64
	Variance      float64
}

// DataMonth, DataYear and DataTemp are the machine-readable attribute values.
func (r Rect) DataMonth() string { return FormatNumber(float64(r.Month)) }
func (r Rect) DataYear() string  { return FormatNumber(float64(r.Year)) }
func (r Rect) DataTemp() string  { return FormatNumber(r.Temp) }

func (r Rect) Tooltip() Tooltip {
	return NewTooltip(Cell{Year: r.Year, Month: r.Month + 1, Temp: r.Temp, Variance: r.Variance})
}

// BuildRects produces one Rect per cell, in cell order.
func BuildRects(cells []Cell, l Layout, x LinearScale, color ColorScale) []Rect {
	rects := make([]Rect, len(cells))
	for i, c := range cells {
		rects[i] = Rect{
			X:        x.Map(float64(c.Year)),
			Y:        float64(c.MonthIndex()) * l.BarHeight,
			Width:    l.BarWidth,
			Height:   l.BarHeight - 1,
			Fill:     color.Map(c.Temp),
			Month:    c.MonthIndex(),
			Year:     c.Year,
			Temp:     c.Temp,
			Variance: c.Variance,
		}
	}
	return rects
}
