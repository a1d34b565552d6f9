package charts

// Output renderers for a built heatmap.Chart.

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"temperature-heatmap/internal/features/heatmap"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Renderer interface {
	Format() string
	FileName() string
	ContentType() string
	Render(w io.Writer, chart *heatmap.Chart) error
}

var registry = map[string]Renderer{}

func register(r Renderer) {
	registry[r.Format()] = r
}

func init() {
	register(SVG{})
	register(HTML{})
	register(PNG{})
	register(ECharts{})
	register(Trend{})
}

// Lookup returns the renderer for format (case-insensitive).
func Lookup(format string) (Renderer, error) {
	r, ok := registry[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return r, nil
}

// Formats lists every registered format, sorted.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// RenderBytes renders chart into memory.
func RenderBytes(r Renderer, chart *heatmap.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, chart); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", r.Format(), err)
	}
	return buf.Bytes(), nil
}
