package charts

import (
	"html/template"
	"io"
	"math"

	"temperature-heatmap/internal/features/heatmap"
)

// SVG writes the chart as a standalone SVG document. Cells sit on an inner
// surface inside a horizontally scrollable foreignObject.
type SVG struct{}

func (SVG) Format() string      { return "svg" }
func (SVG) FileName() string    { return "heatmap.svg" }
func (SVG) ContentType() string { return "image/svg+xml" }

func (SVG) Render(w io.Writer, chart *heatmap.Chart) error {
	return renderSVG(w, chart, false)
}

// svgView is the template data. Embedded charts leave out the per-cell <title>.
type svgView struct {
	*heatmap.Chart
	Embedded bool
	Width    int
	Height   int
}

func renderSVG(w io.Writer, chart *heatmap.Chart, embedded bool) error {
	width, height := chart.Surface.Size()
	return svgTemplate.ExecuteTemplate(w, "svg", svgView{
		Chart:    chart,
		Embedded: embedded,
		Width:    width,
		Height:   height,
	})
}

var svgFuncs = template.FuncMap{
	"num": func(v float64) string {
		return heatmap.FormatNumber(math.Round(v*1e4) / 1e4)
	},
	"add": func(a, b float64) float64 { return a + b },
	"raw": heatmap.FormatNumber,
	"bottom": func(a heatmap.Axis) bool {
		return a.Orient == heatmap.OrientBottom
	},
}

var svgTemplate = template.Must(template.New("heatmap").Funcs(svgFuncs).Parse(svgSource))

const svgSource = `{{define "axis"}}<g id="{{.ID}}" font-size="{{.FontSize}}" font-family="sans-serif" fill="none" transform="translate({{num .X}},{{num .Y}})">
{{- if bottom .}}
<path class="domain" stroke="currentColor" d="M0,6V0H{{num .Length}}V6"></path>
{{- range .Ticks}}
<g class="tick" opacity="1" transform="translate({{num .Pos}},0)"><line stroke="currentColor" y2="6"></line><text fill="currentColor" y="9" dy="0.71em" text-anchor="middle">{{.Label}}</text></g>
{{- end}}
{{- else}}
<path class="domain" stroke="currentColor" d="M-6,0H0V{{num .Length}}H-6"></path>
{{- range .Ticks}}
<g class="tick" opacity="1" transform="translate(0,{{num .Pos}})"><line stroke="currentColor" x2="-6"></line><text fill="currentColor" x="-9" dy="0.32em" text-anchor="end">{{.Label}}</text></g>
{{- end}}
{{- end}}
</g>{{end}}
{{- define "svg"}}<svg xmlns="http://www.w3.org/2000/svg" id="chart" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{num .Layout.Width}} {{num .Layout.Height}}" preserveAspectRatio="xMinYMid">
<foreignObject x="{{num .Layout.Margin.Left}}" y="{{num .Layout.Margin.Top}}" width="{{num .Layout.W}}" height="{{num (add .Layout.H 40)}}">
<div xmlns="http://www.w3.org/1999/xhtml" style="max-height: {{num .Layout.H}}px; max-width: {{num .Layout.W}}px; overflow-x: scroll">
<svg id="cells" width="{{num .Layout.ContentWidth}}" height="{{num (add .Layout.H 20)}}">
{{template "axis" .XAxis}}
{{- range .Rects}}
<rect class="cell" x="{{num .X}}" y="{{num .Y}}" width="{{num .Width}}" height="{{num .Height}}" fill="{{.Fill}}" data-month="{{.DataMonth}}" data-year="{{.DataYear}}" data-temp="{{.DataTemp}}" data-variance="{{raw .Variance}}" data-tooltip="{{.Tooltip.HTML}}">{{if not $.Embedded}}<title>{{.Tooltip.Text}}</title>{{end}}</rect>
{{- end}}
</svg>
</div>
</foreignObject>
{{template "axis" .YAxis}}
<text id="title" class="title" x="{{num .Layout.TitleX}}" y="{{num .Layout.TitleY}}" text-anchor="middle" font-size="24">{{.Title}}</text>
<text id="description" class="subtitle" x="{{num .Layout.SubtitleX}}" y="{{num .Layout.SubtitleY}}" font-size="16">{{.Subtitle}}</text>
<g id="legend" class="legend" transform="translate({{num .Legend.X}},{{num .Legend.Y}})">
{{- $stroke := .Legend.StrokeWidth}}
{{- range .Legend.Swatches}}
<rect x="{{num .X}}" y="{{num .Y}}" width="{{num .Width}}" height="{{num .Height}}" fill="{{.Fill}}" stroke="black" stroke-width="{{num $stroke}}"></rect>
{{- end}}
{{template "axis" .Legend.Axis}}
</g>
</svg>
{{end}}`
