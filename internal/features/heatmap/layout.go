package heatmap

type Margin struct {
	Left, Right, Top, Bottom float64
}

var DefaultMargin = Margin{Left: 100, Right: 50, Top: 100, Bottom: 150}

const (
	DefaultWidth    = 1200
	DefaultHeight   = 600
	DefaultBarWidth = 7
)

// Layout is the geometry of one render pass.
type Layout struct {
	Width, Height float64 // whole surface
	Margin        Margin
	W, H          float64 // drawable area
	BarWidth      float64
	BarHeight     float64
	YearStart     int
	YearEnd       int
}

// NewLayout derives the drawable area and bar sizes from the surface size.
func NewLayout(width, height, barWidth float64, cells []Cell) Layout {
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}
	m := DefaultMargin
	w := width - m.Left - m.Right
	h := height - m.Top - m.Bottom
	start, end := YearRange(cells)
	return Layout{
		Width:     width,
		Height:    height,
		Margin:    m,
		W:         w,
		H:         h,
		BarWidth:  barWidth,
		BarHeight: h / 12,
		YearStart: start,
		YearEnd:   end,
	}
}

func (l Layout) YearSpan() int { return l.YearEnd - l.YearStart }

// ContentWidth is the width of the horizontally scrollable inner surface.
func (l Layout) ContentWidth() float64 {
	return float64(l.YearSpan()) * l.BarWidth
}

// XScale maps a year onto the inner surface.
func (l Layout) XScale() LinearScale {
	return NewLinearScale(float64(l.YearStart), float64(l.YearEnd), 0, l.ContentWidth())
}

func (l Layout) TitleX() float64    { return l.W/2 + l.Margin.Left }
func (l Layout) TitleY() float64    { return l.Margin.Top / 2 }
func (l Layout) SubtitleX() float64 { return l.W/2 + 20 }
func (l Layout) SubtitleY() float64 { return l.Margin.Top - 20 }
