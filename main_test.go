package main

import (
	"testing"

	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/sim"
)

func TestVariantMaxMeteors(t *testing.T) {
	tests := []struct {
		mode string
		max  int
		want int
	}{
		{"drift", -1, 0},
		{"repel", -1, 0},
		{"gesture", -1, config.DefaultMaxMeteors},
		{"gesture", 0, 0},
		{"drift", 3, 3},
	}
	for _, tt := range tests {
		c := cli{Mode: tt.mode, Tail: "line", Ease: "exp", MaxMeteors: tt.max}
		v, err := c.variant()
		if err != nil {
			t.Fatalf("%s: %v", tt.mode, err)
		}
		if v.MaxActive != tt.want {
			t.Errorf("mode %s max %d: MaxActive = %d, want %d", tt.mode, tt.max, v.MaxActive, tt.want)
		}
	}
}

func TestVariantFlags(t *testing.T) {
	c := cli{Mode: "repel", Tail: "trail", Ease: "spring", NoTimer: true, FixedFade: 0.25}
	v, err := c.variant()
	if err != nil {
		t.Fatal(err)
	}
	if v.Interaction != sim.ModeRepel || v.Tail != sim.TailTrail || v.Ease != sim.EaseSpring {
		t.Errorf("variant = %+v", v)
	}
	if v.TimerSpawn || v.FixedFade != 0.25 {
		t.Errorf("timer %v fade %v", v.TimerSpawn, v.FixedFade)
	}

	c.Mode = "orbit"
	if _, err := c.variant(); err == nil {
		t.Error("unknown mode accepted")
	}
}

func TestParamsFromFlagsClamp(t *testing.T) {
	c := cli{Count: 99999, Size: 2, Speed: -1, Twinkle: 0.5, Spawn: 1, Trail: 0.85, Radius: 120}
	p := c.params()
	if got := p.Get(sim.Count); got != 5000 {
		t.Errorf("count = %v, want 5000", got)
	}
	if got := p.Get(sim.Speed); got != 0 {
		t.Errorf("speed = %v, want 0", got)
	}
	if got := p.Get(sim.Size); got != 2 {
		t.Errorf("size = %v, want 2", got)
	}
}

func TestDefaultVarsCoverParams(t *testing.T) {
	vars := defaultVars()
	for _, spec := range sim.Specs() {
		if _, ok := vars[string(spec.Name)]; !ok {
			t.Errorf("no default for --%s", spec.Name)
		}
	}
	if vars["count"] != "1200" || vars["trail"] != "0.85" {
		t.Errorf("count %q trail %q", vars["count"], vars["trail"])
	}
}
