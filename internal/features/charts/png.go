package charts

import (
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sync"

	"temperature-heatmap/internal/features/heatmap"
	logging "temperature-heatmap/internal/infra/log"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

const (
	titleFontSize    = 24.0
	subtitleFontSize = 16.0
	labelFontSize    = heatmap.AxisFontSize
	tickLength       = 6.0
)

// PNG rasterises the chart with the full year range laid out, since an image
// cannot scroll.
type PNG struct{}

func (PNG) Format() string      { return "png" }
func (PNG) FileName() string    { return "heatmap.png" }
func (PNG) ContentType() string { return "image/png" }

func (PNG) Render(w io.Writer, chart *heatmap.Chart) error {
	l := chart.Layout
	width := l.Margin.Left + l.ContentWidth() + l.BarWidth + l.Margin.Right
	if width < l.Width {
		width = l.Width
	}

	dc := gg.NewContext(int(width), int(l.Height))
	dc.SetColor(color.White)
	dc.Clear()

	fonts := newFontLoader(dc)

	// Title and subtitle are centred over the plotted area.
	centre := l.Margin.Left + l.ContentWidth()/2
	dc.SetColor(color.Black)
	fonts.use(titleFontSize)
	dc.DrawStringAnchored(chart.Title, centre, l.TitleY(), 0.5, 0.5)
	fonts.use(subtitleFontSize)
	dc.DrawStringAnchored(chart.Subtitle, centre, l.SubtitleY(), 0.5, 0.5)

	for _, r := range chart.Rects {
		dc.SetColor(r.Fill.RGBA())
		dc.DrawRectangle(l.Margin.Left+r.X, l.Margin.Top+r.Y, r.Width, r.Height)
		dc.Fill()
	}

	fonts.use(labelFontSize)
	drawAxis(dc, chart.XAxis, l.Margin.Left, l.Margin.Top)
	drawAxis(dc, chart.YAxis, 0, 0)

	lg := chart.Legend
	dc.SetLineWidth(lg.StrokeWidth)
	for _, s := range lg.Swatches {
		dc.DrawRectangle(lg.X+s.X, lg.Y+s.Y, s.Width, s.Height)
		dc.SetColor(s.Fill.RGBA())
		dc.FillPreserve()
		dc.SetColor(color.Black)
		dc.Stroke()
	}
	drawAxis(dc, lg.Axis, lg.X, lg.Y)

	return dc.EncodePNG(w)
}

// drawAxis draws a at its own offset shifted by (ox, oy).
func drawAxis(dc *gg.Context, a heatmap.Axis, ox, oy float64) {
	x0, y0 := ox+a.X, oy+a.Y
	dc.SetColor(color.Black)
	dc.SetLineWidth(1)

	if a.Orient == heatmap.OrientBottom {
		dc.DrawLine(x0, y0, x0+a.Length, y0)
		dc.Stroke()
		for _, t := range a.Ticks {
			dc.DrawLine(x0+t.Pos, y0, x0+t.Pos, y0+tickLength)
			dc.Stroke()
			dc.DrawStringAnchored(t.Label, x0+t.Pos, y0+tickLength+3, 0.5, 1)
		}
		return
	}

	dc.DrawLine(x0, y0, x0, y0+a.Length)
	dc.Stroke()
	for _, t := range a.Ticks {
		dc.DrawLine(x0-tickLength, y0+t.Pos, x0, y0+t.Pos)
		dc.Stroke()
		dc.DrawStringAnchored(t.Label, x0-tickLength-3, y0+t.Pos, 1, 0.5)
	}
}

var fontPaths = []string{
	"etc/fonts/Inter-Regular.ttf",
	"etc/fonts/InterVariable.ttf",
	"~/Library/Fonts/Inter-Regular.ttf",
	"/Library/Fonts/Inter-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/usr/share/fonts/truetype/inter/Inter-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
}

var (
	fontOnce sync.Once
	fontPath string
)

// findFont returns the first usable TrueType font, or "" when none exists.
func findFont() string {
	fontOnce.Do(func() {
		for _, p := range fontPaths {
			if len(p) > 0 && p[0] == '~' {
				home, err := os.UserHomeDir()
				if err != nil {
					continue
				}
				p = filepath.Join(home, p[1:])
			}
			if _, err := os.Stat(p); err == nil {
				fontPath = p
				logging.LogDebug("Using chart font", zap.String("path", p))
				return
			}
		}
		logging.LogDebug("No TrueType font found, using basic bitmap font", zap.Int("paths_checked", len(fontPaths)))
	})
	return fontPath
}

type fontLoader struct {
	dc   *gg.Context
	path string
}

func newFontLoader(dc *gg.Context) *fontLoader {
	return &fontLoader{dc: dc, path: findFont()}
}

func (f *fontLoader) use(size float64) {
	if f.path != "" {
		if err := f.dc.LoadFontFace(f.path, size); err == nil {
			return
		}
		logging.LogWarn("Font file exists but failed to load", zap.String("path", f.path))
		f.path = ""
	}
	f.dc.SetFontFace(basicfont.Face7x13)
}
