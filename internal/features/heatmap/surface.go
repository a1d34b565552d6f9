package heatmap

import (
	"math"
	"sync"
)

// Surface tracks the outer drawing size. The aspect ratio is fixed when the
// surface is created and every resize preserves it.
type Surface struct {
	mu     sync.Mutex
	width  int
	height int
	aspect float64
}

func NewSurface(width, height int) *Surface {
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	return &Surface{width: width, height: height, aspect: aspect}
}

func (s *Surface) Aspect() float64 { return s.aspect }

func (s *Surface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Resize sets the width to the container width and recomputes the height.
// Served pages call it with the requested width before rendering; in the
// browser the page's single resize listener applies the same rule.
func (s *Surface) Resize(containerWidth int) (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = containerWidth
	s.height = int(math.Round(float64(containerWidth) / s.aspect))
	return s.width, s.height
}
