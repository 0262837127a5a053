package sim

import (
	"math"

	"github.com/iburimskiy/starfield/internal/config"
)

// Surface tracks the backing pixel size of the drawing surface and the view
// (CSS / window) size it is displayed at.
type Surface struct {
	Width, Height int // backing pixels
	ViewW, ViewH  int
	DPR           float64
}

// Resize recomputes the pixel ratio and backing size for a view of viewW x viewH.
// It reports whether the backing size or ratio changed.
func (s *Surface) Resize(viewW, viewH int, ratio float64) bool {
	dpr := clampRatio(ratio)
	viewW, viewH = max(viewW, 0), max(viewH, 0)
	w := int(math.Floor(float64(viewW) * dpr))
	h := int(math.Floor(float64(viewH) * dpr))

	changed := w != s.Width || h != s.Height || dpr != s.DPR
	s.Width, s.Height = w, h
	s.ViewW, s.ViewH = viewW, viewH
	s.DPR = dpr
	return changed
}

// W returns the backing width as a float.
func (s Surface) W() float64 { return float64(s.Width) }

// H returns the backing height as a float.
func (s Surface) H() float64 { return float64(s.Height) }

// Contains reports whether (x, y) lies on the surface.
func (s Surface) Contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x < s.W() && y < s.H()
}

func clampRatio(r float64) float64 {
	if !finite(r) || r < 1 {
		return 1
	}
	if r > config.MaxPixelRatio {
		return config.MaxPixelRatio
	}
	return r
}
