package heatmap

import (
	"fmt"
	"html"
	"math"
	"math/big"
	"time"
)

const (
	TooltipFade    = 200 * time.Millisecond
	TooltipOpacity = 0.9
	TooltipOffsetX = 10
	TooltipOffsetY = -10
)

// Tooltip is the hover content for one cell.
type Tooltip struct {
	Year      int
	MonthName string
	Temp      string
	Variance  string
}

func NewTooltip(c Cell) Tooltip {
	return Tooltip{
		Year:      c.Year,
		MonthName: c.MonthName(),
		Temp:      FormatTenths(c.Temp),
		Variance:  FormatTenths(c.Variance),
	}
}

// Text is the plain form, used for SVG <title> and chat captions.
func (t Tooltip) Text() string {
	return fmt.Sprintf("%d-%s\n%s°C\n%s°C", t.Year, t.MonthName, t.Temp, t.Variance)
}

// HTML is the markup placed in the tooltip element.
func (t Tooltip) HTML() string {
	return fmt.Sprintf("<strong>%d-%s</strong><br>%s&deg;C<br>%s&deg;C",
		t.Year, html.EscapeString(t.MonthName), t.Temp, t.Variance)
}

// FormatTenths formats v with one decimal the way a browser's toFixed(1)
// does: the exact binary value is rounded and exact ties go away from zero.
// Negative values keep their sign even when they round to zero.
func FormatTenths(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	sign := ""
	if v < 0 {
		sign = "-"
	}
	x := new(big.Float).SetPrec(256).SetFloat64(math.Abs(v))
	x.Mul(x, big.NewFloat(10))
	x.Add(x, big.NewFloat(0.5))
	n, _ := x.Int(nil)

	tenth := new(big.Int)
	whole, _ := new(big.Int).QuoRem(n, big.NewInt(10), tenth)
	return fmt.Sprintf("%s%s.%s", sign, whole.String(), tenth.String())
}
