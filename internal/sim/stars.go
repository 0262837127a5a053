package sim

import (
	"image/color"
	"math"

	"github.com/iburimskiy/starfield/internal/config"
)

// Star is one ambient background point. R, Hue and the derived colour are
// fixed at creation.
type Star struct {
	X, Y       float64
	R          float64
	Hue        float64
	Phase      float64 // twinkle phase, radians
	PhaseSpeed float64 // radians per ms
	VX, VY     float64 // drift direction, each in [-0.5, 0.5)

	// Repulsion mode: the anchor the star drifts with and eases back to,
	// its push strength and its spring easing velocity.
	BaseX, BaseY   float64
	Density        float64
	EaseVX, EaseVY float64

	col color.NRGBA
}

func (st *Star) valid() bool {
	return finite(st.X, st.Y, st.BaseX, st.BaseY, st.VX, st.VY, st.Phase)
}

func (s *Sim) newStar() Star {
	r := s.rng
	x, y := r.Float64()*s.surf.W(), r.Float64()*s.surf.H()
	hue := config.StarHueMin + r.Float64()*config.StarHueSpan
	return Star{
		X:          x,
		Y:          y,
		R:          (config.StarRadiusMin + r.Float64()*config.StarRadiusSpan) * s.params.Get(Size) * s.surf.DPR,
		Hue:        hue,
		Phase:      r.Float64() * 2 * math.Pi,
		PhaseSpeed: (0.5 + r.Float64()) * config.StarPhaseSpeed,
		VX:         r.Float64() - 0.5,
		VY:         r.Float64() - 0.5,
		BaseX:      x,
		BaseY:      y,
		Density:    config.StarDensityMin + r.Float64()*config.StarDensitySpan,
		col:        HSL(hue, 1, 0.88),
	}
}

// syncStars grows the arena with new stars or truncates it to target.
// Existing entries are never touched.
func (s *Sim) syncStars(target int) {
	target = max(target, 0)
	if len(s.stars) > target {
		clear(s.stars[target:])
		s.stars = s.stars[:target]
		return
	}
	if cap(s.stars) < target {
		grown := make([]Star, len(s.stars), target)
		copy(grown, s.stars)
		s.stars = grown
	}
	for len(s.stars) < target {
		s.stars = append(s.stars, s.newStar())
	}
}

func (s *Sim) updateStar(st *Star) {
	f := &s.frame
	st.Phase += st.PhaseSpeed * f.dt

	w, h := s.surf.W(), s.surf.H()
	if s.variant.Interaction == ModeRepel {
		bx := wrap(st.BaseX+st.VX*f.drift, w)
		by := wrap(st.BaseY+st.VY*f.drift, h)
		// A wrapped anchor carries the star with it instead of letting it
		// ease back across the whole surface.
		st.X += bx - st.BaseX - st.VX*f.drift
		st.Y += by - st.BaseY - st.VY*f.drift
		st.BaseX, st.BaseY = bx, by
		s.repel(st)
	} else {
		st.X = wrap(st.X+st.VX*f.drift, w)
		st.Y = wrap(st.Y+st.VY*f.drift, h)
	}

	if s.rng.Float64() < config.StarReaimChance {
		st.VX = s.rng.Float64() - 0.5
		st.VY = s.rng.Float64() - 0.5
	}
}

// wrap moves a coordinate that left [-margin, size+margin] to the opposite edge.
func wrap(v, size float64) float64 {
	const m = config.StarWrapMargin
	if v < -m {
		return size + m
	}
	if v > size+m {
		return -m
	}
	return v
}

// repel pushes st away from a present pointer inside the interaction radius,
// holding it inside the wrap margin, otherwise eases it toward its anchor.
func (s *Sim) repel(st *Star) {
	f := &s.frame
	if p := &s.ptr; p.Present {
		dx, dy := st.X-p.X, st.Y-p.Y
		dist := math.Hypot(dx, dy)
		if dist < f.radius {
			if dist > 0 {
				const m = config.StarWrapMargin
				force := (f.radius - dist) / f.radius
				st.X = clamp(st.X+dx/dist*force*st.Density, -m, s.surf.W()+m)
				st.Y = clamp(st.Y+dy/dist*force*st.Density, -m, s.surf.H()+m)
			}
			st.EaseVX, st.EaseVY = 0, 0
			return
		}
	}

	switch s.variant.Ease {
	case EaseFrame:
		st.X -= (st.X - st.BaseX) / config.RepelEaseDivisor
		st.Y -= (st.Y - st.BaseY) / config.RepelEaseDivisor
	case EaseSpring:
		st.X, st.EaseVX = s.spring.Update(st.X, st.EaseVX, st.BaseX)
		st.Y, st.EaseVY = s.spring.Update(st.Y, st.EaseVY, st.BaseY)
	default:
		st.X -= (st.X - st.BaseX) * f.easeK
		st.Y -= (st.Y - st.BaseY) * f.easeK
	}
}

func (s *Sim) drawStar(c Canvas, st *Star) {
	a := 0.75 + math.Sin(st.Phase)*0.25*s.frame.twinkle
	c.Glow(st.X, st.Y, st.R*config.StarGlowScale, st.col, a)
}

// DriftBias adds a drag delta, given in view pixels, to every star's velocity.
func (s *Sim) DriftBias(dx, dy float64) {
	bx, by := dx*config.DriftBiasPerPixel, dy*config.DriftBiasPerPixel
	for i := range s.stars {
		s.stars[i].VX += bx
		s.stars[i].VY += by
	}
}
