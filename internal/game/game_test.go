package game

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/starfield/internal/sim"
)

func TestGlowAlpha(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 0.95},
		{0.2, 0.8},
		{0.4, 0.65},
		{0.7, 0.325},
		{1, 0},
		{1.5, 0},
	}
	for _, tt := range tests {
		if got := glowAlpha(tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("glowAlpha(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestGlowPixelsFadeOut(t *testing.T) {
	const size = 16
	px := glowPixels(size)
	alpha := func(x, y int) byte { return px[(y*size+x)*4+3] }

	if alpha(0, 0) != 0 {
		t.Errorf("corner alpha = %d, want 0", alpha(0, 0))
	}
	if alpha(size/2, size/2) < 200 {
		t.Errorf("centre alpha = %d, want bright", alpha(size/2, size/2))
	}
	for x := size / 2; x < size-1; x++ {
		if alpha(x+1, size/2) > alpha(x, size/2) {
			t.Fatalf("alpha rises from x=%d to x=%d", x, x+1)
		}
	}
	i := (3*size + 5) * 4
	if px[i] != px[i+3] {
		t.Error("texture is not premultiplied white")
	}
}

func TestSegmentT(t *testing.T) {
	tests := []struct {
		px, py float64
		want   float64
	}{
		{5, 0, 0.5},
		{5, 3, 0.5},
		{-3, 2, 0},
		{14, 0, 1},
	}
	for _, tt := range tests {
		if got := segmentT(tt.px, tt.py, 0, 0, 10, 0); got != tt.want {
			t.Errorf("segmentT(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
		}
	}
	if got := segmentT(1, 1, 2, 2, 2, 2); got != 1 {
		t.Errorf("degenerate segment = %v, want 1", got)
	}
}

func TestClamp01(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{
		{-1, 0}, {0.3, 0.3}, {7, 1}, {math.NaN(), 0},
	} {
		if got := clamp01(tt.in); got != tt.want {
			t.Errorf("clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{75*time.Second + 400*time.Millisecond, "1:15"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{61*time.Minute + 2*time.Second, "1:01:02"},
	}
	for _, tt := range tests {
		if got := formatUptime(tt.d); got != tt.want {
			t.Errorf("formatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestStatsLine(t *testing.T) {
	st := sim.Stats{Frames: 10, Spawned: 4, Skipped: 1, Recycled: 3, Faults: 0, Stars: 1200, Meteors: 1}
	want := "fps=59.9 stars=1200 meteors=1 spawned=4 skipped=1 recycled=3 faults=0"
	if got := statsLine(st, 59.94); got != want {
		t.Errorf("statsLine = %q, want %q", got, want)
	}
}

func TestCaptureName(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 6e6, time.UTC)
	if got := captureName(ts); got != "starfield-20260102-030405.006.png" {
		t.Errorf("captureName = %q", got)
	}
}

func TestEnsurePNG(t *testing.T) {
	for in, want := range map[string]string{
		"frame":     "frame.png",
		"frame.PNG": "frame.PNG",
		"a/b.png":   "a/b.png",
		"shot.jpg":  "shot.jpg.png",
	} {
		if got := ensurePNG(in); got != want {
			t.Errorf("ensurePNG(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(2, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	path := filepath.Join(t.TempDir(), "frame.png")

	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Fatalf("bounds %v, want %v", got.Bounds(), img.Bounds())
	}
	r, g, b, _ := got.At(2, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel = %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestWritePNGMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "frame.png")
	err := writePNG(path, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want wrapped ErrNotExist", err)
	}
}

func TestCaptureDestination(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	c := newCapturer(dir)
	path, err := c.destination("x.png")
	if err != nil {
		t.Fatalf("destination: %v", err)
	}
	if path != filepath.Join(dir, "x.png") {
		t.Errorf("path = %q", path)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("capture dir not created: %v", err)
	}

	c = newCapturer("")
	c.pick = func(name string) (string, error) { return "/chosen/" + name, nil }
	if path, _ := c.destination("y.png"); path != "/chosen/y.png" {
		t.Errorf("dialog path = %q", path)
	}
}

func TestLastSaved(t *testing.T) {
	c := newCapturer("")
	if _, ok := c.lastSaved(); ok {
		t.Fatal("lastSaved reported a capture before any")
	}
	c.done <- "a.png"
	if p, ok := c.lastSaved(); !ok || p != "a.png" {
		t.Errorf("lastSaved = %q, %v", p, ok)
	}
}

func streamAll(buf *beep.Buffer) [][2]float64 {
	out := make([][2]float64, buf.Len())
	s := buf.Streamer(0, buf.Len())
	n, _ := s.Stream(out)
	return out[:n]
}

func TestRenderSwoosh(t *testing.T) {
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	buf := renderSwoosh(format, 100*time.Millisecond, 900, 1)

	if want := format.SampleRate.N(100 * time.Millisecond); buf.Len() != want {
		t.Fatalf("len = %d, want %d", buf.Len(), want)
	}
	samples := streamAll(buf)
	peak := 0.0
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
			t.Fatalf("sample %d = %v", i, s)
		}
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak < 0.01 {
		t.Errorf("peak %v, swoosh is silent", peak)
	}
	if last := math.Abs(samples[len(samples)-1][0]); last > 1e-3 {
		t.Errorf("tail sample %v, want faded out", last)
	}
}

func TestChimeRateLimit(t *testing.T) {
	c := newSilentChime()
	t0 := time.Unix(100, 0)
	if !c.allow(t0) {
		t.Fatal("first cue refused")
	}
	if c.allow(t0.Add(50 * time.Millisecond)) {
		t.Error("cue inside the gap allowed")
	}
	if !c.allow(t0.Add(120 * time.Millisecond)) {
		t.Error("cue after the gap refused")
	}
}

func TestChimePick(t *testing.T) {
	c := newSilentChime()
	n := len(c.swooshes)
	if c.pick(190) != c.swooshes[0] || c.pick(-10) != c.swooshes[0] {
		t.Error("low hues should map to the first swoosh")
	}
	if c.pick(229.9) != c.swooshes[n-1] || c.pick(999) != c.swooshes[n-1] {
		t.Error("high hues should map to the last swoosh")
	}
}

func TestTouchPointerAvoidsMouse(t *testing.T) {
	if touchPointer(0) == mousePointer {
		t.Error("first touch shares the mouse pointer id")
	}
}
