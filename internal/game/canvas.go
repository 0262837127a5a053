package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/sim"
)

var background = color.NRGBA{R: config.BackgroundR, G: config.BackgroundG, B: config.BackgroundB, A: 255}

// screenCanvas renders simulation frames onto an ebiten image. Star glows are
// quads over a baked radial texture, batched until the next non-glow call.
type screenCanvas struct {
	dst   *ebiten.Image
	glow  *ebiten.Image
	white *ebiten.Image

	verts []ebiten.Vertex
	idx   []uint16

	strokeVerts []ebiten.Vertex
	strokeIdx   []uint16
}

func newScreenCanvas() *screenCanvas {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &screenCanvas{
		glow:  bakeGlowTexture(config.GlowTextureSize),
		white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// bakeGlowTexture renders sim.GlowStops into a white, premultiplied radial
// texture of size x size pixels.
func bakeGlowTexture(size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	img.WritePixels(glowPixels(size))
	return img
}

func glowPixels(size int) []byte {
	pixels := make([]byte, size*size*4)
	center := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-center, float64(y)+0.5-center
			a := glowAlpha(math.Hypot(dx, dy) / center)
			v := uint8(math.Round(a * 255))
			i := (y*size + x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = v, v, v, v
		}
	}
	return pixels
}

// glowAlpha interpolates the gradient stops at normalized radius t.
func glowAlpha(t float64) float64 {
	stops := sim.GlowStops
	if t <= stops[0][0] {
		return stops[0][1]
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i][0] {
			lo, hi := stops[i-1], stops[i]
			k := (t - lo[0]) / (hi[0] - lo[0])
			return lo[1] + (hi[1]-lo[1])*k
		}
	}
	return 0
}

// begin points the canvas at dst for one frame.
func (c *screenCanvas) begin(dst *ebiten.Image) {
	c.dst = dst
	c.verts = c.verts[:0]
	c.idx = c.idx[:0]
}

// end flushes pending glows.
func (c *screenCanvas) end() {
	c.flush()
	c.dst = nil
}

func (c *screenCanvas) flush() {
	if len(c.idx) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	c.dst.DrawTriangles(c.verts, c.idx, c.glow, op)
	c.verts = c.verts[:0]
	c.idx = c.idx[:0]
}

func (c *screenCanvas) Fade(alpha float64) {
	c.flush()
	b := c.dst.Bounds()
	col := background
	col.A = uint8(math.Round(clamp01(alpha) * 255))
	vector.DrawFilledRect(c.dst, 0, 0, float32(b.Dx()), float32(b.Dy()), col, false)
}

func (c *screenCanvas) Glow(x, y, radius float64, col color.NRGBA, alpha float64) {
	if len(c.verts)+4 > math.MaxUint16 {
		c.flush()
	}
	a := float32(clamp01(alpha))
	r, g, b := float32(col.R)/255, float32(col.G)/255, float32(col.B)/255
	size := float32(config.GlowTextureSize)
	x0, y0 := float32(x-radius), float32(y-radius)
	x1, y1 := float32(x+radius), float32(y+radius)

	base := uint16(len(c.verts))
	c.verts = append(c.verts,
		ebiten.Vertex{DstX: x0, DstY: y0, SrcX: 0, SrcY: 0, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		ebiten.Vertex{DstX: x1, DstY: y0, SrcX: size, SrcY: 0, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		ebiten.Vertex{DstX: x0, DstY: y1, SrcX: 0, SrcY: size, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		ebiten.Vertex{DstX: x1, DstY: y1, SrcX: size, SrcY: size, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
	)
	c.idx = append(c.idx, base, base+1, base+2, base+1, base+3, base+2)
}

func (c *screenCanvas) Circle(x, y, radius float64, col color.NRGBA) {
	c.flush()
	vector.DrawFilledCircle(c.dst, float32(x), float32(y), float32(radius), col, true)
}

// Streak strokes the segment and shades each stroke vertex by its position
// along it, giving a linear opacity gradient.
func (c *screenCanvas) Streak(x0, y0, x1, y1, width float64, col color.NRGBA, alpha0, alpha1 float64) {
	c.flush()
	var path vector.Path
	path.MoveTo(float32(x0), float32(y0))
	path.LineTo(float32(x1), float32(y1))
	c.strokeVerts, c.strokeIdx = path.AppendVerticesAndIndicesForStroke(c.strokeVerts[:0], c.strokeIdx[:0], &vector.StrokeOptions{
		Width:   float32(width),
		LineCap: vector.LineCapRound,
	})

	r, g, b := float32(col.R)/255, float32(col.G)/255, float32(col.B)/255
	for i := range c.strokeVerts {
		v := &c.strokeVerts[i]
		t := segmentT(float64(v.DstX), float64(v.DstY), x0, y0, x1, y1)
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB = r, g, b
		v.ColorA = float32(alpha0 + (alpha1-alpha0)*t)
	}
	c.dst.DrawTriangles(c.strokeVerts, c.strokeIdx, c.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// segmentT projects (px, py) onto the segment and returns the clamped
// parameter in [0, 1].
func segmentT(px, py, x0, y0, x1, y1 float64) float64 {
	dx, dy := x1-x0, y1-y0
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return 1
	}
	return clamp01(((px-x0)*dx + (py-y0)*dy) / l2)
}
