package sim

import "image/color"

// GlowStops are the (offset, alpha) stops of the star glow gradient. Sinks bake
// them into whatever radial primitive they have.
var GlowStops = [3][2]float64{
	{0.0, 0.95},
	{0.4, 0.65},
	{1.0, 0.0},
}

// Canvas is the drawing sink a Sim renders into. All coordinates are backing
// (device) pixels and colours are straight alpha.
type Canvas interface {
	// Fade composites a dark rectangle of the given opacity over the whole surface.
	Fade(alpha float64)
	// Glow draws a radial gradient shaped by GlowStops, scaled by alpha.
	Glow(x, y, radius float64, c color.NRGBA, alpha float64)
	// Circle draws a filled circle.
	Circle(x, y, radius float64, c color.NRGBA)
	// Streak draws a line whose opacity runs from alpha0 at (x0,y0) to alpha1 at (x1,y1).
	Streak(x0, y0, x1, y1, width float64, c color.NRGBA, alpha0, alpha1 float64)
}

// Discard is a Canvas that draws nothing.
var Discard Canvas = discard{}

type discard struct{}

func (discard) Fade(float64) {}
func (discard) Glow(float64, float64, float64, color.NRGBA, float64) {}
func (discard) Circle(float64, float64, float64, color.NRGBA) {}
func (discard) Streak(float64, float64, float64, float64, float64, color.NRGBA, float64, float64) {}
