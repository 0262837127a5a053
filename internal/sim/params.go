package sim

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iburimskiy/starfield/internal/config"
)

// Param names a tunable value.
type Param string

const (
	Count       Param = "count"
	Size        Param = "size"
	Speed       Param = "speed"
	Twinkle     Param = "twinkle"
	Spawn       Param = "spawn"
	Persistence Param = "trail"
	Radius      Param = "radius"
)

// ParamSpec describes the valid range and default of a parameter.
type ParamSpec struct {
	Name    Param
	Label   string
	Min     float64
	Max     float64
	Default float64
	Integer bool
	Step    float64
}

var paramSpecs = []ParamSpec{
	{Name: Count, Label: "Stars", Min: 100, Max: 5000, Default: 1200, Integer: true, Step: 50},
	{Name: Size, Label: "Size", Min: 0.5, Max: 3, Default: 1.4, Step: 0.1},
	{Name: Speed, Label: "Drift", Min: 0, Max: 1, Default: 0.15, Step: 0.01},
	{Name: Twinkle, Label: "Twinkle", Min: 0, Max: 1, Default: 0.5, Step: 0.01},
	{Name: Spawn, Label: "Meteor interval", Min: 0.2, Max: 3, Default: 1, Step: 0.1},
	{Name: Persistence, Label: "Trail", Min: 0.6, Max: 0.98, Default: 0.85, Step: 0.01},
	{Name: Radius, Label: "Radius", Min: 40, Max: 400, Default: 120, Integer: true, Step: 10},
}

// Specs returns the parameter specs in display order.
func Specs() []ParamSpec {
	out := make([]ParamSpec, len(paramSpecs))
	copy(out, paramSpecs)
	return out
}

// SpecFor looks up the spec of name.
func SpecFor(name Param) (ParamSpec, bool) {
	for _, s := range paramSpecs {
		if s.Name == name {
			return s, true
		}
	}
	return ParamSpec{}, false
}

// Clamp coerces v into the parameter's range. NaN maps to Min.
func (s ParamSpec) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.Min
	}
	if s.Integer && !math.IsInf(v, 0) {
		v = math.Trunc(v)
	}
	return clamp(v, s.Min, s.Max)
}

// Params holds the current parameter values and notifies subscribers of
// every write.
type Params struct {
	values map[Param]float64
	subs   []func(Param, float64)
}

// NewParams returns a store seeded with defaults.
func NewParams() *Params {
	p := &Params{values: make(map[Param]float64, len(paramSpecs))}
	for _, s := range paramSpecs {
		p.values[s.Name] = s.Default
	}
	return p
}

// OnChange registers fn to run after every Set, in registration order.
func (p *Params) OnChange(fn func(name Param, value float64)) {
	p.subs = append(p.subs, fn)
}

// Get returns the value of name, or 0 for unknown names.
func (p *Params) Get(name Param) float64 {
	return p.values[name]
}

// Int returns the value of name truncated to an int.
func (p *Params) Int(name Param) int {
	return int(p.values[name])
}

// Set clamps raw into range, stores it and returns the stored value.
// Unknown names are ignored.
func (p *Params) Set(name Param, raw float64) float64 {
	spec, ok := SpecFor(name)
	if !ok {
		return 0
	}
	v := spec.Clamp(raw)
	p.values[name] = v
	for _, fn := range p.subs {
		fn(name, v)
	}
	return v
}

// SetString coerces raw to a number and sets it. Text that does not parse is
// treated as NaN and so lands on the minimum.
func (p *Params) SetString(name Param, raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		v = math.NaN()
	}
	return p.Set(name, v)
}

// Reset restores and reapplies every default.
func (p *Params) Reset() {
	for _, s := range paramSpecs {
		p.Set(s.Name, s.Default)
	}
}

// Text formats the stored value of name for display.
func (p *Params) Text(name Param) string {
	return FormatParam(name, p.Get(name))
}

// FormatParam formats v the way the control panel shows it.
func FormatParam(name Param, v float64) string {
	switch name {
	case Count, Radius:
		return strconv.Itoa(int(v))
	case Spawn:
		return fmt.Sprintf("%dms", int(math.Round(v*config.MeteorBaseIntervalMs)))
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}
