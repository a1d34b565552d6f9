package heatmap

import (
	"math"
	"strconv"
)

const AxisFontSize = 14

type Orient string

const (
	OrientBottom Orient = "bottom"
	OrientLeft   Orient = "left"
)

type Tick struct {
	Pos   float64
	Label string
}

// Axis is a positioned tick ruler. Pos of each tick is relative to (X, Y).
type Axis struct {
	ID       string
	Orient   Orient
	X, Y     float64
	Length   float64
	Ticks    []Tick
	FontSize int
}

// NiceTicks returns round values (multiples of 1, 2 or 5 × 10^k) covering
// [start, stop], aiming for roughly count of them.
func NiceTicks(start, stop float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	if start > stop {
		start, stop = stop, start
	}
	step := tickStep(start, stop, count)
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil
	}
	decimals := tickDecimals(step)
	p := math.Pow(10, float64(decimals))

	i0 := math.Ceil(start / step)
	i1 := math.Floor(stop / step)
	ticks := make([]float64, 0, int(i1-i0)+1)
	for i := i0; i <= i1; i++ {
		ticks = append(ticks, math.Round(i*step*p)/p)
	}
	return ticks
}

func tickStep(start, stop float64, count int) float64 {
	step0 := math.Abs(stop-start) / float64(count)
	step1 := math.Pow(10, math.Floor(math.Log10(step0)))
	e := step0 / step1
	switch {
	case e >= math.Sqrt(50):
		step1 *= 10
	case e >= math.Sqrt(10):
		step1 *= 5
	case e >= math.Sqrt(2):
		step1 *= 2
	}
	return step1
}

func tickDecimals(step float64) int {
	d := -int(math.Floor(math.Log10(step)))
	if d < 0 {
		return 0
	}
	return d
}

// formatTick prints v with as many decimals as the tick step needs.
func formatTick(v, step float64) string {
	return strconv.FormatFloat(v, 'f', tickDecimals(step), 64)
}

// YearAxis sits at the bottom of the inner scrolling surface.
func YearAxis(l Layout) Axis {
	x := l.XScale()
	var ticks []Tick
	for _, v := range NiceTicks(float64(l.YearStart), float64(l.YearEnd), 10) {
		if v != math.Trunc(v) {
			continue
		}
		ticks = append(ticks, Tick{Pos: x.Map(v), Label: strconv.Itoa(int(v))})
	}
	return Axis{
		ID:       "x-axis",
		Orient:   OrientBottom,
		X:        0,
		Y:        l.H,
		Length:   l.ContentWidth(),
		Ticks:    ticks,
		FontSize: AxisFontSize,
	}
}

// MonthAxis labels each band at its centre.
func MonthAxis(l Layout, bands BandScale) Axis {
	ticks := make([]Tick, len(bands.Keys))
	for i, name := range bands.Keys {
		ticks[i] = Tick{Pos: bands.At(i) + bands.Bandwidth()/2, Label: name}
	}
	return Axis{
		ID:       "y-axis",
		Orient:   OrientLeft,
		X:        l.Margin.Left,
		Y:        l.Margin.Top,
		Length:   bands.Extent,
		Ticks:    ticks,
		FontSize: AxisFontSize,
	}
}

// LinearAxis builds a bottom axis for a linear scale with default formatting.
func LinearAxis(id string, s LinearScale, x, y float64) Axis {
	values := NiceTicks(s.D0, s.D1, 10)
	step := 1.0
	if len(values) > 1 {
		step = values[1] - values[0]
	}
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Pos: s.Map(v), Label: formatTick(v, step)}
	}
	return Axis{
		ID:       id,
		Orient:   OrientBottom,
		X:        x,
		Y:        y,
		Length:   math.Abs(s.R1 - s.R0),
		Ticks:    ticks,
		FontSize: AxisFontSize,
	}
}
