package charts

import (
	"bytes"
	"errors"
	"html"
	"image/png"
	"regexp"
	"strings"
	"testing"

	"temperature-heatmap/internal/features/heatmap"
)

func buildChart(t *testing.T, ds *heatmap.Dataset) *heatmap.Chart {
	t.Helper()
	c, err := heatmap.Build(ds, heatmap.Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return c
}

func sampleChart(t *testing.T) *heatmap.Chart {
	ds := &heatmap.Dataset{BaseTemperature: 8.66}
	for y := 1900; y <= 1910; y++ {
		for m := 1; m <= 12; m++ {
			ds.MonthlyVariance = append(ds.MonthlyVariance, heatmap.Variance{
				Year: y, Month: m, Variance: float64(m-6)/4 + float64(y-1900)/10,
			})
		}
	}
	return buildChart(t, ds)
}

func TestSVGSingleRecordAttributes(t *testing.T) {
	c := buildChart(t, &heatmap.Dataset{
		BaseTemperature: 8.66,
		MonthlyVariance: []heatmap.Variance{{Year: 1900, Month: 1, Variance: -0.5}},
	})
	out, err := RenderBytes(SVG{}, c)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	s := string(out)
	for _, want := range []string{`class="cell"`, `data-month="0"`, `data-year="1900"`, `data-temp="8.16"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("svg missing %s", want)
		}
	}
}

func TestSVGContainsContractElements(t *testing.T) {
	c := sampleChart(t)
	out, err := RenderBytes(SVG{}, c)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	s := string(out)
	for _, id := range []string{"x-axis", "y-axis", "title", "description", "legend", "legend-axis"} {
		if !strings.Contains(s, `id="`+id+`"`) {
			t.Fatalf("svg missing element #%s", id)
		}
	}
	if n := strings.Count(s, `class="cell"`); n != len(c.Cells) {
		t.Fatalf("expected %d cells, got %d", len(c.Cells), n)
	}
	for _, name := range heatmap.MonthNames {
		if !strings.Contains(s, ">"+name+"<") {
			t.Fatalf("month label %s missing", name)
		}
	}
	if !strings.Contains(s, "overflow-x: scroll") {
		t.Fatalf("inner surface should scroll horizontally")
	}
	if !strings.Contains(s, `fill="rgb(0, 0, 255)"`) || !strings.Contains(s, `fill="rgb(139, 0, 0)"`) {
		t.Fatalf("coldest and hottest cells should use the end colours")
	}
	if !strings.Contains(s, "1900 - 1910: base temperature 8.66°C") {
		t.Fatalf("subtitle missing")
	}
}

func TestHTMLPage(t *testing.T) {
	c := sampleChart(t)
	out, err := RenderBytes(HTML{}, c)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		`id="tooltip"`,
		`id="container"`,
		`<svg xmlns="http://www.w3.org/2000/svg" id="chart"`,
		`"fadeMs":200`,
		`"opacity":0.9`,
		`"aspect":2`,
		"mouseenter",
		"mouseleave",
		"window.addEventListener('resize', resize)",
		"window.removeEventListener('resize', resize)",
		"if (container.stopResize) container.stopResize();",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("html missing %q", want)
		}
	}
}

func TestHTMLCellsCarryTooltipMarkup(t *testing.T) {
	c := buildChart(t, &heatmap.Dataset{
		BaseTemperature: 8.5,
		MonthlyVariance: []heatmap.Variance{{Year: 1900, Month: 1, Variance: 0.25}},
	})
	out, err := RenderBytes(HTML{}, c)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	s := string(out)

	m := regexp.MustCompile(`data-tooltip="([^"]*)"`).FindStringSubmatch(s)
	if m == nil {
		t.Fatalf("cell has no data-tooltip attribute")
	}
	want := "<strong>1900-January</strong><br>8.8&deg;C<br>0.3&deg;C"
	if got := html.UnescapeString(m[1]); got != want {
		t.Fatalf("data-tooltip = %q, want %q", got, want)
	}
	if !strings.Contains(s, "tooltip.innerHTML = cell.getAttribute('data-tooltip')") {
		t.Fatalf("script should show the prerendered tooltip")
	}
	if strings.Contains(s, "toFixed") {
		t.Fatalf("script should not format values itself")
	}
}

func TestCellTitlesOnlyInStandaloneSVG(t *testing.T) {
	c := sampleChart(t)

	page, err := RenderBytes(HTML{}, c)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if n := strings.Count(string(page), "<title>"); n != 1 {
		t.Fatalf("page should only carry the document title, got %d <title> elements", n)
	}

	svg, err := RenderBytes(SVG{}, c)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if n := strings.Count(string(svg), "<title>"); n != len(c.Cells) {
		t.Fatalf("expected %d cell titles in svg, got %d", len(c.Cells), n)
	}
}

func TestSVGSizeFollowsSurface(t *testing.T) {
	c := sampleChart(t)
	c.Surface.Resize(600)

	out, err := RenderBytes(SVG{}, c)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `id="chart" width="600" height="300"`) {
		t.Fatalf("outer svg not resized: %.200s", s)
	}
	if !strings.Contains(s, `viewBox="0 0 1200 600"`) {
		t.Fatalf("viewBox should keep the layout size")
	}
}

func TestPNGDecodes(t *testing.T) {
	c := sampleChart(t)
	out, err := RenderBytes(PNG{}, c)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("not a png: %v", err)
	}
	if cfg.Height != int(c.Layout.Height) || cfg.Width < int(c.Layout.Width) {
		t.Fatalf("unexpected png size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestEChartsPage(t *testing.T) {
	c := sampleChart(t)
	out, err := RenderBytes(ECharts{}, c)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "echarts") || !strings.Contains(s, "#0000ff") || !strings.Contains(s, "#8b0000") {
		t.Fatalf("echarts page missing chart or colours")
	}
}

func TestTrend(t *testing.T) {
	out, err := RenderBytes(Trend{}, sampleChart(t))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(out)); err != nil {
		t.Fatalf("not a png: %v", err)
	}

	single := buildChart(t, &heatmap.Dataset{
		BaseTemperature: 8.66,
		MonthlyVariance: []heatmap.Variance{{Year: 1900, Month: 1, Variance: -0.5}},
	})
	if err := (Trend{}).Render(&bytes.Buffer{}, single); !errors.Is(err, ErrNotEnoughYears) {
		t.Fatalf("expected ErrNotEnoughYears, got %v", err)
	}
}

func TestPreview(t *testing.T) {
	var buf bytes.Buffer
	if err := Preview(&buf, sampleChart(t), 40); err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	plain := regexp.MustCompile(`\x1b\[[0-9;]*m`).ReplaceAllString(buf.String(), "")
	for _, want := range []string{"Monthly Global Land-Surface Temperature", "Jan", "Dec", "1900", "1910"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("preview missing %q:\n%s", want, plain)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, f := range []string{"svg", "HTML", " png ", "echarts", "trend"} {
		if _, err := Lookup(f); err != nil {
			t.Fatalf("Lookup(%q) failed: %v", f, err)
		}
	}
	if _, err := Lookup("gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if got := Formats(); len(got) != 5 {
		t.Fatalf("unexpected formats %v", got)
	}
}
