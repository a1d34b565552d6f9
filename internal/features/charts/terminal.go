package charts

import (
	"fmt"
	"io"
	"strings"

	"temperature-heatmap/internal/features/heatmap"

	"github.com/charmbracelet/lipgloss"
)

const monthLabelWidth = 4

// Preview prints the heatmap as coloured blocks, one row per month. Years
// are grouped into buckets so the grid fits in columns characters.
func Preview(w io.Writer, c *heatmap.Chart, columns int) error {
	l := c.Layout
	span := l.YearSpan() + 1
	cols := columns - monthLabelWidth - 1
	if cols < 1 {
		cols = 1
	}
	if cols > span {
		cols = span
	}
	bucket := (span + cols - 1) / cols

	var sums [12][]float64
	var counts [12][]int
	for m := range sums {
		sums[m] = make([]float64, cols)
		counts[m] = make([]int, cols)
	}
	for _, cell := range c.Cells {
		m := cell.MonthIndex()
		if m < 0 || m > 11 {
			continue
		}
		col := (cell.Year - l.YearStart) / bucket
		sums[m][col] += cell.Temp
		counts[m][col]++
	}

	title := lipgloss.NewStyle().Bold(true)
	label := lipgloss.NewStyle().Width(monthLabelWidth).Foreground(lipgloss.Color("245"))

	var b strings.Builder
	b.WriteString(title.Render(c.Title) + "\n")
	b.WriteString(c.Subtitle + "\n\n")

	for m := 0; m < 12; m++ {
		b.WriteString(label.Render(heatmap.MonthNames[m][:3]) + " ")
		for col := 0; col < cols; col++ {
			if counts[m][col] == 0 {
				b.WriteString(" ")
				continue
			}
			rgb := c.Color.Map(sums[m][col] / float64(counts[m][col]))
			b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(rgb.Hex())).Render(" "))
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", monthLabelWidth+1))
	b.WriteString(fmt.Sprintf("%d%s%d\n", l.YearStart,
		strings.Repeat(" ", max(1, cols-8)), l.YearEnd))

	b.WriteString("\n" + strings.Repeat(" ", monthLabelWidth+1))
	for _, s := range c.Color.Stops {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(s.Color.Hex())).Render("   "))
	}
	b.WriteString(fmt.Sprintf(" %s°C .. %s°C\n", heatmap.FormatTenths(c.Color.Min), heatmap.FormatTenths(c.Color.Max)))

	_, err := io.WriteString(w, b.String())
	return err
}
