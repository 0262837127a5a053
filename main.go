package main

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/game"
	"github.com/iburimskiy/starfield/internal/sim"
)

type cli struct {
	Mode       string  `help:"Pointer interaction: drift, repel or gesture." enum:"drift,repel,gesture" default:"drift"`
	Tail       string  `help:"Meteor tail style: line or trail." enum:"line,trail" default:"line"`
	MaxMeteors int     `help:"Concurrent meteor cap, 0 for none, -1 picks by mode." default:"-1"`
	NoTimer    bool    `help:"Disable timed meteor spawns."`
	Ease       string  `help:"Repel return easing: exp, frame or spring." enum:"exp,frame,spring" default:"exp"`
	FixedFade  float64 `help:"Constant fade alpha per frame, 0 derives it from the trail parameter." default:"0"`

	Count   float64 `help:"Star count." default:"${count}"`
	Size    float64 `help:"Star size multiplier." default:"${size}"`
	Speed   float64 `help:"Drift speed." default:"${speed}"`
	Twinkle float64 `help:"Twinkle amount." default:"${twinkle}"`
	Spawn   float64 `help:"Meteor interval multiplier." default:"${spawn}"`
	Trail   float64 `help:"Trail persistence." default:"${trail}"`
	Radius  float64 `help:"Repel radius in CSS pixels." default:"${radius}"`

	Width      int    `help:"Initial window width." default:"${width}"`
	Height     int    `help:"Initial window height." default:"${height}"`
	TPS        int    `name:"tps" help:"Updates per second." default:"${tps}"`
	Sound      bool   `help:"Play a cue when a meteor spawns."`
	CaptureDir string `help:"Save captures here instead of asking." type:"path"`
	HidePanel  bool   `help:"Start with the control panel hidden."`
	Seed       uint64 `help:"Random seed, 0 for a random one."`
	Verbose    bool   `short:"v" help:"Log frame stats every second."`
}

func defaultVars() kong.Vars {
	vars := kong.Vars{
		"width":  strconv.Itoa(config.WindowWidth),
		"height": strconv.Itoa(config.WindowHeight),
		"tps":    strconv.Itoa(config.DefaultTPS),
	}
	for _, spec := range sim.Specs() {
		vars[string(spec.Name)] = strconv.FormatFloat(spec.Default, 'f', -1, 64)
	}
	return vars
}

func (c *cli) variant() (sim.Variant, error) {
	v := sim.DefaultVariant()
	var err error
	if v.Interaction, err = sim.ParseMode(c.Mode); err != nil {
		return v, err
	}
	if v.Tail, err = sim.ParseTailStyle(c.Tail); err != nil {
		return v, err
	}
	if v.Ease, err = sim.ParseEase(c.Ease); err != nil {
		return v, err
	}
	v.TimerSpawn = !c.NoTimer
	v.FixedFade = c.FixedFade
	v.MaxActive = c.MaxMeteors
	if v.MaxActive < 0 {
		v.MaxActive = 0
		if v.Interaction == sim.ModeGesture {
			v.MaxActive = config.DefaultMaxMeteors
		}
	}
	return v, nil
}

func (c *cli) params() *sim.Params {
	p := sim.NewParams()
	for name, raw := range map[sim.Param]float64{
		sim.Count:       c.Count,
		sim.Size:        c.Size,
		sim.Speed:       c.Speed,
		sim.Twinkle:     c.Twinkle,
		sim.Spawn:       c.Spawn,
		sim.Persistence: c.Trail,
		sim.Radius:      c.Radius,
	} {
		if got := p.Set(name, raw); got != raw {
			log.Printf("--%s %v clamped to %s", name, raw, sim.FormatParam(name, got))
		}
	}
	return p
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	var c cli
	ctx := kong.Parse(&c,
		kong.Name("starfield"),
		kong.Description("An animated starfield with meteors and pointer interaction."),
		kong.UsageOnError(),
		defaultVars(),
	)

	variant, err := c.variant()
	ctx.FatalIfErrorf(err)

	s := sim.New(sim.Options{
		Variant: variant,
		Params:  c.params(),
		ViewW:   c.Width,
		ViewH:   c.Height,
		Ratio:   1,
		Seed:    c.Seed,
	})

	g, err := game.New(s, game.Options{
		Sound:      c.Sound,
		CaptureDir: c.CaptureDir,
		Verbose:    c.Verbose,
		HidePanel:  c.HidePanel,
	})
	if err != nil {
		log.Fatalf("Error starting: %v", err)
	}

	ebiten.SetWindowSize(c.Width, c.Height)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(c.TPS)
	ebiten.SetScreenClearedEveryFrame(false)

	if c.Verbose {
		v := s.Variant()
		log.Printf("Starting: mode=%s tail=%s ease=%s max-meteors=%d timer=%v",
			v.Interaction, v.Tail, v.Ease, v.MaxActive, v.TimerSpawn)
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
