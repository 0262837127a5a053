// Package sim is the starfield simulation: a star population, a meteor
// population, the pointer interaction model and the per-frame step that
// renders both into a Canvas.
//
// A Sim has two mutation entry points: Step (the frame) and the event
// methods (Pointer*, Resize, Params().Set). Callers must never run them
// concurrently.
package sim

import (
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/iburimskiy/starfield/internal/config"
)

// Options configures a new Sim.
type Options struct {
	Variant  Variant
	Params   *Params // nil means NewParams()
	ViewW    int
	ViewH    int
	Ratio    float64
	TrailCap int    // 0 means config.MeteorTrailCap
	Seed     uint64 // 0 means random
	Logger   *log.Logger
}

// Stats is a snapshot of simulation counters.
type Stats struct {
	Frames   uint64
	Spawned  uint64
	Skipped  uint64 // spawns refused at the concurrency cap
	Recycled uint64
	Faults   uint64
	Stars    int
	Meteors  int
}

// Sim is the simulation context. It owns every piece of mutable state.
type Sim struct {
	surf     Surface
	params   *Params
	variant  Variant
	rng      *rand.Rand
	log      *log.Logger
	trailCap int

	stars    []Star
	meteors  []Meteor
	spare    [][]Point
	spawnAcc float64

	ptr                Pointer
	captureUnsupported bool

	frame    frame
	spring   harmonica.Spring
	springDt float64

	stats Stats

	// OnSpawn, when set, runs after every successful meteor spawn.
	OnSpawn func(m Meteor)
}

// frame caches per-frame values so the per-entity loops skip map lookups.
type frame struct {
	dt      float64
	drift   float64
	twinkle float64
	radius  float64
	easeK   float64
}

// New builds a Sim, sizes its surface and seeds the star population.
func New(opts Options) *Sim {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	params := opts.Params
	if params == nil {
		params = NewParams()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	trailCap := opts.TrailCap
	if trailCap <= 0 {
		trailCap = config.MeteorTrailCap
	}

	s := &Sim{
		params:   params,
		variant:  opts.Variant,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log:      logger,
		trailCap: trailCap,
		springDt: -1,
		ptr:      Pointer{ID: NoPointer},
	}
	s.surf.Resize(opts.ViewW, opts.ViewH, opts.Ratio)

	// Registered first so the star population is already resized when any
	// later subscriber (a panel, say) observes the change.
	params.OnChange(func(name Param, v float64) {
		if name == Count {
			s.syncStars(int(v))
		}
	})
	s.syncStars(params.Int(Count))
	return s
}

// Params returns the parameter store driving the simulation.
func (s *Sim) Params() *Params { return s.params }

// Surface returns a copy of the current surface geometry.
func (s *Sim) Surface() Surface { return s.surf }

// Variant returns the policy knobs.
func (s *Sim) Variant() Variant { return s.variant }

// Stars exposes the star arena. Callers must not retain it across events.
func (s *Sim) Stars() []Star { return s.stars }

// Meteors exposes the active meteors. Callers must not retain it across events.
func (s *Sim) Meteors() []Meteor { return s.meteors }

// Stats returns a snapshot of the counters.
func (s *Sim) Stats() Stats {
	st := s.stats
	st.Stars = len(s.stars)
	st.Meteors = len(s.meteors)
	return st
}

// Resize applies a new view size and pixel ratio. Stars keep their relative
// placement: positions and anchors are rescaled into the new bounds.
func (s *Sim) Resize(viewW, viewH int, ratio float64) bool {
	oldW, oldH := s.surf.W(), s.surf.H()
	if !s.surf.Resize(viewW, viewH, ratio) {
		return false
	}
	w, h := s.surf.W(), s.surf.H()
	if oldW <= 0 || oldH <= 0 {
		for i := range s.stars {
			st := &s.stars[i]
			st.X, st.Y = s.rng.Float64()*w, s.rng.Float64()*h
			st.BaseX, st.BaseY = st.X, st.Y
		}
		return true
	}
	sx, sy := w/oldW, h/oldH
	for i := range s.stars {
		st := &s.stars[i]
		st.X *= sx
		st.Y *= sy
		st.BaseX *= sx
		st.BaseY *= sy
	}
	return true
}

// Step advances the simulation by dt milliseconds and draws the frame:
// fade, then stars, then meteor spawning, update and drawing.
func (s *Sim) Step(c Canvas, dt float64) {
	dt = clampFrame(dt)
	s.stats.Frames++
	s.prepareFrame(dt)

	c.Fade(s.fadeAlpha())
	faults := s.stepStars(c)
	s.spawnTimed(dt)
	faults += s.stepMeteors(c)

	if faults > 0 {
		s.stats.Faults += faults
		s.log.Printf("frame %d: replaced %d faulty entities", s.stats.Frames, faults)
	}
}

func (s *Sim) prepareFrame(dt float64) {
	p := s.params
	s.frame = frame{
		dt:      dt,
		drift:   p.Get(Speed) * config.StarDriftFactor * dt,
		twinkle: p.Get(Twinkle),
		radius:  p.Get(Radius) * s.surf.DPR,
		easeK:   1 - math.Pow(1-1/config.RepelEaseDivisor, dt/config.RepelEaseFrameMs),
	}
	if s.variant.Ease == EaseSpring && dt != s.springDt {
		s.spring = harmonica.NewSpring(dt/1000, config.RepelSpringFreq, config.RepelSpringDamping)
		s.springDt = dt
	}
}

func (s *Sim) fadeAlpha() float64 {
	if s.variant.FixedFade > 0 {
		return clamp(s.variant.FixedFade, 0, 1)
	}
	return 1 - s.params.Get(Persistence)
}

func (s *Sim) stepStars(c Canvas) (faults uint64) {
	for i := range s.stars {
		if !s.starStep(c, i) {
			s.stars[i] = s.newStar()
			faults++
		}
	}
	return faults
}

func (s *Sim) starStep(c Canvas, i int) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	st := &s.stars[i]
	s.updateStar(st)
	if !st.valid() {
		return false
	}
	s.drawStar(c, st)
	return true
}

func (s *Sim) stepMeteors(c Canvas) (faults uint64) {
	live := s.meteors[:0]
	for i := range s.meteors {
		m := s.meteors[i]
		alive, ok := s.meteorStep(c, &m)
		if !ok {
			faults++
		}
		if alive && ok {
			live = append(live, m)
			continue
		}
		s.recycle(&m)
	}
	for i := len(live); i < len(s.meteors); i++ {
		s.meteors[i] = Meteor{}
	}
	s.meteors = live
	return faults
}

func (s *Sim) meteorStep(c Canvas, m *Meteor) (alive, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			alive, ok = false, false
		}
	}()
	if !s.advanceMeteor(m, s.frame.dt) {
		return false, true
	}
	if !m.valid() {
		return false, false
	}
	s.drawMeteor(c, m)
	return true, true
}

func clampFrame(dt float64) float64 {
	if !finite(dt) || dt < 0 {
		return 0
	}
	return math.Min(dt, config.MaxFrameMs)
}

// Loop drives a Sim from wall-clock time and can be stopped and restarted.
type Loop struct {
	sim     *Sim
	last    time.Time
	primed  bool
	stopped bool
}

// NewLoop returns a running loop over s.
func NewLoop(s *Sim) *Loop {
	return &Loop{sim: s}
}

// Tick steps the simulation by the time elapsed since the previous tick,
// clamped to config.MaxFrameMs, and returns the step used. The first tick
// after creation or Start steps by zero. A stopped loop does nothing.
func (l *Loop) Tick(c Canvas, now time.Time) float64 {
	if l.stopped {
		return 0
	}
	dt := 0.0
	if l.primed {
		dt = float64(now.Sub(l.last)) / float64(time.Millisecond)
	}
	l.last, l.primed = now, true
	dt = clampFrame(dt)
	l.sim.Step(c, dt)
	return dt
}

// Stop halts stepping until Start.
func (l *Loop) Stop() { l.stopped = true }

// Start resumes a stopped loop without a catch-up jump.
func (l *Loop) Start() {
	if l.stopped {
		l.stopped = false
		l.primed = false
	}
}

// Running reports whether the loop steps on Tick.
func (l *Loop) Running() bool { return !l.stopped }
