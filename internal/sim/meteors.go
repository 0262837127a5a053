package sim

import (
	"math"

	"github.com/iburimskiy/starfield/internal/config"
)

// Meteor is one transient streak.
type Meteor struct {
	X, Y   float64
	VX, VY float64 // pixels per ms
	Length float64 // tail length for line tails
	Width  float64
	Age    float64 // ms
	Hue    float64
	Trail  Trail
}

func (m *Meteor) valid() bool {
	return finite(m.X, m.Y, m.VX, m.VY, m.Age)
}

// SpawnInterval returns the current timer spawn interval in ms.
func (s *Sim) SpawnInterval() float64 {
	return config.MeteorBaseIntervalMs * s.params.Get(Spawn)
}

// spawnTimed feeds dt into the spawn accumulator and spawns one meteor per
// whole interval, keeping the remainder for later frames.
func (s *Sim) spawnTimed(dt float64) {
	if !s.variant.TimerSpawn {
		return
	}
	interval := s.SpawnInterval()
	if interval <= 0 {
		return
	}
	s.spawnAcc += dt
	for s.spawnAcc >= interval {
		s.spawnAcc -= interval
		s.spawn(s.timedMeteor())
	}
}

func (s *Sim) timedMeteor() Meteor {
	r, dpr := s.rng, s.surf.DPR
	w, h := s.surf.W(), s.surf.H()
	heading := config.MeteorHeading + (r.Float64()*2-1)*config.MeteorHeadingJitter
	speed := (config.MeteorSpeedMin + r.Float64()*config.MeteorSpeedSpan) * dpr
	return Meteor{
		X:      w*0.2 + r.Float64()*(w*0.8+config.MeteorMargin/2),
		Y:      h*r.Float64()*0.35 - config.MeteorMargin/2,
		VX:     math.Cos(heading) * speed,
		VY:     math.Sin(heading) * speed,
		Length: (config.MeteorLengthMin + r.Float64()*config.MeteorLengthSpan) * dpr,
		Width:  (1 + r.Float64()) * dpr,
		Hue:    config.MeteorHueMin + r.Float64()*config.MeteorHueSpan,
	}
}

// SpawnAt spawns a meteor at (x, y) moving at (vx, vy) px/ms. It reports false
// when the concurrency cap refuses it.
func (s *Sim) SpawnAt(x, y, vx, vy float64) bool {
	r, dpr := s.rng, s.surf.DPR
	speed := math.Hypot(vx, vy)
	if limit := config.GestureMaxSpeed * dpr; speed > limit {
		vx, vy = vx/speed*limit, vy/speed*limit
	}
	return s.spawn(Meteor{
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Length: (config.MeteorLengthMin + r.Float64()*config.MeteorLengthSpan) * dpr,
		Width:  (1 + r.Float64()) * dpr,
		Hue:    config.MeteorHueMin + r.Float64()*config.MeteorHueSpan,
	})
}

func (s *Sim) spawn(m Meteor) bool {
	if s.variant.MaxActive > 0 && len(s.meteors) >= s.variant.MaxActive {
		s.stats.Skipped++
		return false
	}
	var buf []Point
	if n := len(s.spare); n > 0 {
		buf = s.spare[n-1]
		s.spare = s.spare[:n-1]
	} else {
		buf = make([]Point, s.trailCap)
	}
	m.Trail = newTrail(buf)
	s.meteors = append(s.meteors, m)
	s.stats.Spawned++
	if s.OnSpawn != nil {
		s.OnSpawn(m)
	}
	return true
}

func (s *Sim) recycle(m *Meteor) {
	if buf := m.Trail.release(); cap(buf) == s.trailCap {
		s.spare = append(s.spare, buf)
	}
	s.stats.Recycled++
}

// advanceMeteor ages and moves m. It reports false once m has left the
// surface by more than the margin or outlived its lifetime.
func (s *Sim) advanceMeteor(m *Meteor, dt float64) bool {
	m.Age += dt
	m.Trail.Push(Point{m.X, m.Y})
	m.X += m.VX * dt
	m.Y += m.VY * dt

	const margin = config.MeteorMargin
	w, h := s.surf.W(), s.surf.H()
	if m.X < -margin || m.X > w+margin || m.Y < -margin || m.Y > h+margin {
		return false
	}
	return m.Age <= config.MeteorMaxAgeMs
}

func (s *Sim) drawMeteor(c Canvas, m *Meteor) {
	tail := HSL(m.Hue, 1, 0.8)
	switch s.variant.Tail {
	case TailTrail:
		n := m.Trail.Len()
		for i := 0; i < n; i++ {
			p := m.Trail.At(i)
			k := float64(i+1) / float64(n+1)
			col := tail
			col.A = uint8(math.Round(0.8 * k * 255))
			c.Circle(p.X, p.Y, m.Width*k, col)
		}
	default:
		if speed := math.Hypot(m.VX, m.VY); speed > 0 {
			tx := m.X - m.VX/speed*m.Length
			ty := m.Y - m.VY/speed*m.Length
			c.Streak(tx, ty, m.X, m.Y, m.Width, tail, 0, 0.9)
		}
	}
	c.Circle(m.X, m.Y, m.Width, HSL(m.Hue, 1, 0.9))
}
