package sim

import (
	"image/color"
	"io"
	"log"
	"math"
	"testing"
)

type op struct {
	kind  string
	x, y  float64
	r     float64
	alpha float64
	col   color.NRGBA
}

// recorder is a Canvas that keeps every call in order.
type recorder struct {
	ops []op
}

func (r *recorder) Fade(alpha float64) {
	r.ops = append(r.ops, op{kind: "fade", alpha: alpha})
}

func (r *recorder) Glow(x, y, radius float64, c color.NRGBA, alpha float64) {
	r.ops = append(r.ops, op{kind: "glow", x: x, y: y, r: radius, col: c, alpha: alpha})
}

func (r *recorder) Circle(x, y, radius float64, c color.NRGBA) {
	r.ops = append(r.ops, op{kind: "circle", x: x, y: y, r: radius, col: c, alpha: float64(c.A) / 255})
}

func (r *recorder) Streak(x0, y0, x1, y1, width float64, c color.NRGBA, alpha0, alpha1 float64) {
	r.ops = append(r.ops, op{kind: "streak", x: x1, y: y1, r: width, col: c, alpha: alpha1})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

// panicky panics on the n-th Glow call and records everything else.
type panicky struct {
	recorder
	n, glows int
}

func (p *panicky) Glow(x, y, radius float64, c color.NRGBA, alpha float64) {
	p.glows++
	if p.glows == p.n {
		panic("glow failed")
	}
	p.recorder.Glow(x, y, radius, c, alpha)
}

func newTestSim(t *testing.T, v Variant, viewW, viewH int, ratio float64) *Sim {
	t.Helper()
	return New(Options{
		Variant: v,
		ViewW:   viewW,
		ViewH:   viewH,
		Ratio:   ratio,
		Seed:    1,
		Logger:  log.New(io.Discard, "", 0),
	})
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
