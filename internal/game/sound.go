package game

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/starfield/internal/config"
)

// chime plays a short filtered-noise swoosh when a meteor appears. The
// swooshes are rendered once up front; the speaker goroutine only replays
// them.
type chime struct {
	format   beep.Format
	swooshes []*beep.Buffer
	gap      time.Duration
	last     time.Time
}

func newChime() (*chime, error) {
	c := newSilentChime()
	if err := speaker.Init(c.format.SampleRate, c.format.SampleRate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return c, nil
}

// newSilentChime renders the swooshes without touching the audio device.
func newSilentChime() *chime {
	sr := beep.SampleRate(config.CueSampleRate)
	c := &chime{
		format: beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2},
		gap:    config.CueMinGapMs * time.Millisecond,
	}
	d := config.CueDurationMs * time.Millisecond
	for i := range config.CueVariants {
		cutoff := 700 + float64(i)*400
		c.swooshes = append(c.swooshes, renderSwoosh(c.format, d, cutoff, uint64(i+1)))
	}
	return c
}

// renderSwoosh renders d of low-passed noise whose cutoff sweeps down from
// cutoff Hz under an attack/decay envelope.
func renderSwoosh(format beep.Format, d time.Duration, cutoff float64, seed uint64) *beep.Buffer {
	rng := rand.New(rand.NewPCG(seed, seed*31+7))
	total := format.SampleRate.N(d)
	rate := float64(format.SampleRate)
	attack := total * 15 / 100
	var y float64
	pos := 0

	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n := 0
		for ; n < len(samples) && pos < total; n, pos = n+1, pos+1 {
			t := float64(pos) / float64(total)
			fc := cutoff * (1 - 0.75*t)
			k := 1 - math.Exp(-2*math.Pi*fc/rate)
			y += k * (rng.Float64()*2 - 1 - y)

			env := float64(pos) / float64(max(attack, 1))
			if pos >= attack {
				rest := 1 - float64(pos-attack)/float64(total-attack)
				env = rest * rest
			}
			v := y * env * 0.8
			samples[n] = [2]float64{v, v}
		}
		return n, n > 0
	})

	buf := beep.NewBuffer(format)
	buf.Append(src)
	return buf
}

// allow rate-limits cues so gesture bursts do not pile up.
func (c *chime) allow(now time.Time) bool {
	if !c.last.IsZero() && now.Sub(c.last) < c.gap {
		return false
	}
	c.last = now
	return true
}

// pick maps a meteor hue onto one of the rendered swooshes.
func (c *chime) pick(hue float64) *beep.Buffer {
	i := int((hue - config.MeteorHueMin) / config.MeteorHueSpan * float64(len(c.swooshes)))
	i = max(0, min(i, len(c.swooshes)-1))
	return c.swooshes[i]
}

// play queues a swoosh panned by pan in [-1, 1].
func (c *chime) play(now time.Time, pan, hue float64) {
	if !c.allow(now) {
		return
	}
	buf := c.pick(hue)
	speaker.Play(&effects.Volume{
		Streamer: &effects.Pan{Streamer: buf.Streamer(0, buf.Len()), Pan: math.Max(-1, math.Min(1, pan))},
		Base:     2,
		Volume:   config.CueVolume,
	})
}
