package charts

import (
	"bytes"
	"html/template"
	"io"

	"temperature-heatmap/internal/features/heatmap"
)

// HTML writes a complete page with the container, tooltip element, SVG chart
// and hover script. The script shows each cell's prerendered data-tooltip.
// Its resize listener keeps the surface aspect the chart was built with and
// replaces any listener left by an earlier render of the same container.
type HTML struct{}

func (HTML) Format() string      { return "html" }
func (HTML) FileName() string    { return "index.html" }
func (HTML) ContentType() string { return "text/html; charset=utf-8" }

type pageScriptConfig struct {
	FadeMs  int64   `json:"fadeMs"`
	Opacity float64 `json:"opacity"`
	OffsetX int     `json:"offsetX"`
	OffsetY int     `json:"offsetY"`
	Aspect  float64 `json:"aspect"`
}

type pageData struct {
	Title  string
	SVG    template.HTML
	Config pageScriptConfig
	Script template.JS
}

func (HTML) Render(w io.Writer, chart *heatmap.Chart) error {
	var svg bytes.Buffer
	if err := renderSVG(&svg, chart, true); err != nil {
		return err
	}

	data := pageData{
		Title: chart.Title,
		SVG:   template.HTML(svg.String()),
		Config: pageScriptConfig{
			FadeMs:  heatmap.TooltipFade.Milliseconds(),
			Opacity: heatmap.TooltipOpacity,
			OffsetX: heatmap.TooltipOffsetX,
			OffsetY: heatmap.TooltipOffsetY,
			Aspect:  chart.Surface.Aspect(),
		},
		Script: template.JS(pageScript),
	}
	return pageTemplate.Execute(w, data)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: sans-serif; background: #f4f4f4; }
.container { position: relative; margin: 20px auto; width: 90vw; max-width: 1400px; background: #fff; }
#chart { display: block; width: 100%; }
.title { font-weight: bold; }
.tooltip { position: fixed; pointer-events: none; opacity: 0; padding: 6px 10px; border-radius: 4px; background: rgba(0, 0, 0, 0.8); color: #fff; font-size: 13px; line-height: 1.4; }
.cell:hover { stroke: black; stroke-width: 1; }
</style>
</head>
<body>
<div class="container" id="container">
<div class="tooltip" id="tooltip"></div>
{{.SVG}}
</div>
<script>
const heatmapConfig = {{.Config}};
{{.Script}}
</script>
</body>
</html>
`))

const pageScript = `(function (cfg) {
  var container = document.getElementById('container');
  var svg = document.getElementById('chart');
  var tooltip = document.getElementById('tooltip');
  tooltip.style.transition = 'opacity ' + cfg.fadeMs + 'ms';

  document.querySelectorAll('.cell').forEach(function (cell) {
    cell.addEventListener('mouseenter', function (e) {
      tooltip.innerHTML = cell.getAttribute('data-tooltip');
      tooltip.setAttribute('data-year', cell.getAttribute('data-year'));
      tooltip.style.left = (e.clientX + cfg.offsetX) + 'px';
      tooltip.style.top = (e.clientY + cfg.offsetY) + 'px';
      tooltip.style.opacity = cfg.opacity;
    });
    cell.addEventListener('mouseleave', function () {
      tooltip.style.opacity = 0;
    });
  });

  function resize() {
    var w = parseInt(window.getComputedStyle(container).width, 10);
    svg.setAttribute('width', w);
    svg.setAttribute('height', Math.round(w / cfg.aspect));
  }
  if (container.stopResize) container.stopResize();
  window.addEventListener('resize', resize);
  container.stopResize = function () {
    window.removeEventListener('resize', resize);
    container.stopResize = null;
  };
  resize();
})(heatmapConfig);`
