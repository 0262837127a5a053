// Package game hosts the starfield simulation in an ebiten window: it feeds
// window size and input into the simulation, renders its frames, and draws
// the control panel over them.
package game

import (
	"fmt"
	"log"
	"math"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/sim"
)

// Options configures the host.
type Options struct {
	Sound      bool
	CaptureDir string
	Verbose    bool
	HidePanel  bool
}

// Game implements ebiten.Game around a sim.Sim.
type Game struct {
	sim     *sim.Sim
	loop    *sim.Loop
	canvas  *screenCanvas
	field   *ebiten.Image
	panel   *panel
	input   *input
	chime   *chime
	capture *capturer

	captureQueued bool
	chars         []rune
	status        string
	statusUntil   time.Time

	verbose   bool
	started   time.Time
	lastStats time.Time
	lastFrame uint64
}

// New wraps s. Sound failures are logged and leave the game silent.
func New(s *sim.Sim, opts Options) (*Game, error) {
	p, err := newPanel(s.Params())
	if err != nil {
		return nil, err
	}
	if opts.HidePanel {
		p.toggle()
	}

	g := &Game{
		sim:     s,
		loop:    sim.NewLoop(s),
		canvas:  newScreenCanvas(),
		panel:   p,
		input:   newInput(),
		capture: newCapturer(opts.CaptureDir),
		verbose: opts.Verbose,
		started: time.Now(),
	}
	// Browsers stop delivering cursor moves once the pointer leaves the canvas.
	s.SetCaptureSupported(runtime.GOOS != "js")

	if opts.Sound {
		c, err := newChime()
		if err != nil {
			log.Printf("Sound disabled: %v", err)
		} else {
			g.chime = c
			s.OnSpawn = g.onSpawn
		}
	}
	return g, nil
}

func (g *Game) onSpawn(m sim.Meteor) {
	surf := g.sim.Surface()
	if surf.Width == 0 {
		return
	}
	g.chime.play(time.Now(), m.X/surf.W()*2-1, m.Hue)
}

func (g *Game) Update() error {
	if g.panel.editing() {
		// Keys go to the open value entry, not to the shortcuts.
		g.chars = ebiten.AppendInputChars(g.chars[:0])
		g.panel.edit(editKeys{
			Chars:     g.chars,
			Enter:     inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter),
			Backspace: repeatingKey(ebiten.KeyBackspace),
			Escape:    inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		})
	} else if err := g.shortcuts(); err != nil {
		return err
	}

	g.input.update(g.sim, g.panel)

	if path, ok := g.capture.lastSaved(); ok {
		g.flash("Saved " + path)
	}
	if g.verbose {
		g.logStats(time.Now())
	}
	return nil
}

func (g *Game) shortcuts() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Params().Reset()
		g.flash("Parameters reset")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.panel.toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.captureQueued = true
	}
	return nil
}

// repeatingKey reports a fresh press of key and then auto-repeats while it
// stays held.
func repeatingKey(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 30 && d%4 == 0)
}

func (g *Game) togglePause() {
	if g.loop.Running() {
		g.loop.Stop()
		return
	}
	g.loop.Start()
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusUntil = time.Now().Add(2 * time.Second)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.ensureField(screen.Bounds().Dx(), screen.Bounds().Dy())

	g.canvas.begin(g.field)
	g.loop.Tick(g.canvas, time.Now())
	g.canvas.end()

	if g.captureQueued {
		g.captureQueued = false
		g.capture.capture(g.field, time.Now())
	}

	screen.DrawImage(g.field, nil)
	g.panel.draw(screen)

	status := g.status
	if time.Now().After(g.statusUntil) {
		status = ""
	}
	if !g.loop.Running() {
		status = "Paused - P to resume"
	}
	if status != "" {
		ebitenutil.DebugPrintAt(screen, status, 12, 12)
	}
}

// ensureField keeps the persistent frame image at the screen size. A new
// field starts from the background colour.
func (g *Game) ensureField(w, h int) {
	if g.field != nil {
		b := g.field.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		g.field.Deallocate()
	}
	g.field = ebiten.NewImage(max(w, 1), max(h, 1))
	g.field.Fill(background)
}

// Layout sizes the screen in backing pixels so one screen pixel is one
// device pixel, up to the clamped pixel ratio.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := 1.0
	if m := ebiten.Monitor(); m != nil {
		ratio = m.DeviceScaleFactor()
	}
	g.sim.Resize(outsideWidth, outsideHeight, ratio)
	surf := g.sim.Surface()
	g.panel.resize(surf.W(), surf.DPR)
	return max(surf.Width, 1), max(surf.Height, 1)
}

func (g *Game) logStats(now time.Time) {
	if g.lastStats.IsZero() {
		g.lastStats = now
		return
	}
	elapsed := now.Sub(g.lastStats)
	if elapsed < config.StatsIntervalMs*time.Millisecond {
		return
	}
	st := g.sim.Stats()
	fps := float64(st.Frames-g.lastFrame) / elapsed.Seconds()
	g.lastStats, g.lastFrame = now, st.Frames
	log.Printf("[%s] %s", formatUptime(now.Sub(g.started)), statsLine(st, fps))
}

func statsLine(st sim.Stats, fps float64) string {
	return fmt.Sprintf("fps=%.1f stars=%d meteors=%d spawned=%d skipped=%d recycled=%d faults=%d",
		math.Round(fps*10)/10, st.Stars, st.Meteors, st.Spawned, st.Skipped, st.Recycled, st.Faults)
}
