package sim

import "fmt"

// Mode selects how pointer drags act on the field.
type Mode int

const (
	// ModeDrift nudges every star's velocity by the drag delta.
	ModeDrift Mode = iota
	// ModeRepel pushes stars away from the pointer and eases them home.
	ModeRepel
	// ModeGesture spawns a meteor along a fast enough drag.
	ModeGesture
)

var modeNames = []string{"drift", "repel", "gesture"}

func (m Mode) String() string {
	if int(m) < len(modeNames) && m >= 0 {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown interaction mode %q", s)
}

// TailStyle selects how meteor tails are drawn.
type TailStyle int

const (
	// TailLine draws a gradient streak behind the head along the velocity.
	TailLine TailStyle = iota
	// TailTrail draws shrinking, fading circles along the stored history.
	TailTrail
)

var tailNames = []string{"line", "trail"}

func (t TailStyle) String() string {
	if int(t) < len(tailNames) && t >= 0 {
		return tailNames[t]
	}
	return fmt.Sprintf("TailStyle(%d)", int(t))
}

// ParseTailStyle parses a tail style name.
func ParseTailStyle(s string) (TailStyle, error) {
	for i, n := range tailNames {
		if n == s {
			return TailStyle(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tail style %q", s)
}

// Ease selects how repelled stars return to their anchor.
type Ease int

const (
	// EaseExp closes 1/20 of the gap per 60Hz frame, scaled by elapsed time.
	EaseExp Ease = iota
	// EaseFrame closes 1/20 of the gap per frame regardless of elapsed time.
	EaseFrame
	// EaseSpring runs a critically damped spring toward the anchor.
	EaseSpring
)

var easeNames = []string{"exp", "frame", "spring"}

func (e Ease) String() string {
	if int(e) < len(easeNames) && e >= 0 {
		return easeNames[e]
	}
	return fmt.Sprintf("Ease(%d)", int(e))
}

// ParseEase parses an ease name.
func ParseEase(s string) (Ease, error) {
	for i, n := range easeNames {
		if n == s {
			return Ease(i), nil
		}
	}
	return 0, fmt.Errorf("unknown ease %q", s)
}

// Variant holds the policy knobs fixed for the lifetime of a Sim.
type Variant struct {
	Interaction Mode
	Tail        TailStyle
	TimerSpawn  bool
	MaxActive   int     // 0 means uncapped
	Ease        Ease
	FixedFade   float64 // 0 means 1 - trail
}

// DefaultVariant is drift interaction with timed meteors and line tails.
func DefaultVariant() Variant {
	return Variant{
		Interaction: ModeDrift,
		Tail:        TailLine,
		TimerSpawn:  true,
		Ease:        EaseExp,
	}
}
