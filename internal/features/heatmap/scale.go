package heatmap

import (
	"fmt"
	"image/color"
	"math"
)

// LinearScale maps a continuous domain onto a continuous range.
type LinearScale struct {
	D0, D1 float64
	R0, R1 float64
}

func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map returns the range position of v. A zero-width domain maps to R0.
func (s LinearScale) Map(v float64) float64 {
	if s.D1 == s.D0 {
		return s.R0
	}
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

// BandScale splits [0, Extent] into equal unrounded bands, one per key.
type BandScale struct {
	Keys   []string
	Extent float64
}

// NewMonthBands returns twelve bands in calendar order over height h.
func NewMonthBands(h float64) BandScale {
	return BandScale{Keys: MonthNames[:], Extent: h}
}

func (b BandScale) Bandwidth() float64 {
	if len(b.Keys) == 0 {
		return 0
	}
	return b.Extent / float64(len(b.Keys))
}

// At returns the start offset of band i.
func (b BandScale) At(i int) float64 {
	return float64(i) * b.Bandwidth()
}

// Index returns the band index for key, or -1.
func (b BandScale) Index(key string) int {
	for i, k := range b.Keys {
		if k == key {
			return i
		}
	}
	return -1
}

type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// ColorStop pairs an offset in [0, 1] of the temperature range with a colour.
type ColorStop struct {
	Name   string
	Offset float64
	Color  RGB
}

// Percent is the stop offset as written in a gradient, e.g. "25%".
func (s ColorStop) Percent() string {
	return fmt.Sprintf("%g%%", s.Offset*100)
}

var DefaultStops = []ColorStop{
	{Name: "blue", Offset: 0, Color: RGB{0, 0, 255}},
	{Name: "lightblue", Offset: 0.25, Color: RGB{173, 216, 230}},
	{Name: "lightyellow", Offset: 0.5, Color: RGB{255, 255, 224}},
	{Name: "orange", Offset: 0.75, Color: RGB{255, 165, 0}},
	{Name: "darkred", Offset: 1, Color: RGB{139, 0, 0}},
}

// ColorScale is a piecewise-linear temperature to colour map.
type ColorScale struct {
	Min, Max float64
	Stops    []ColorStop
	domain   []float64
}

// NewColorScale places each stop at min + offset*(max-min).
func NewColorScale(min, max float64, stops []ColorStop) ColorScale {
	if len(stops) == 0 {
		stops = DefaultStops
	}
	domain := make([]float64, len(stops))
	for i, s := range stops {
		domain[i] = min + s.Offset*(max-min)
	}
	return ColorScale{Min: min, Max: max, Stops: stops, domain: domain}
}

// Domain returns the temperature at each stop.
func (s ColorScale) Domain() []float64 {
	out := make([]float64, len(s.domain))
	copy(out, s.domain)
	return out
}

// Map interpolates the colour for t, clamping outside the observed range.
// A zero-width range maps everything to the first stop.
func (s ColorScale) Map(t float64) RGB {
	n := len(s.Stops)
	if n == 1 || s.Max <= s.Min || t <= s.domain[0] {
		return s.Stops[0].Color
	}
	if t >= s.domain[n-1] {
		return s.Stops[n-1].Color
	}
	for i := 0; i < n-1; i++ {
		lo, hi := s.domain[i], s.domain[i+1]
		if t >= lo && t <= hi {
			f := (t - lo) / (hi - lo)
			return lerpRGB(s.Stops[i].Color, s.Stops[i+1].Color, f)
		}
	}
	return s.Stops[n-1].Color
}

func lerpRGB(a, b RGB, f float64) RGB {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + f*(float64(y)-float64(x))))
	}
	return RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}
