package game

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/starfield/internal/config"
)

// capturer saves frames as PNG, into dir when set and through a save dialog
// otherwise. Encoding and the dialog run off the game goroutine.
type capturer struct {
	dir  string
	pick func(name string) (string, error)
	done chan string
}

func newCapturer(dir string) *capturer {
	return &capturer{dir: dir, pick: pickSavePath, done: make(chan string, 1)}
}

func captureName(ts time.Time) string {
	return fmt.Sprintf("%s-%s.png", config.CapturePrefix, ts.Format("20060102-150405.000"))
}

func pickSavePath(name string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save Frame"),
		zenity.Filename(name),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		return "", err
	}
	return ensurePNG(path), nil
}

func ensurePNG(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return path
	}
	return path + ".png"
}

// capture copies img and writes it out in the background.
func (c *capturer) capture(img *ebiten.Image, ts time.Time) {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	img.ReadPixels(rgba.Pix)

	go func() {
		path, err := c.destination(captureName(ts))
		if errors.Is(err, zenity.ErrCanceled) {
			return
		}
		if err != nil {
			log.Printf("Error choosing capture path: %v", err)
			return
		}
		if err := writePNG(path, rgba); err != nil {
			log.Printf("Error saving capture: %v", err)
			return
		}
		log.Printf("Captured frame: %s", path)
		select {
		case c.done <- path:
		default:
		}
	}()
}

func (c *capturer) destination(name string) (string, error) {
	if c.dir == "" {
		return c.pick(name)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating capture directory: %w", err)
	}
	return filepath.Join(c.dir, name), nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// lastSaved returns the path of a capture finished since the previous call.
func (c *capturer) lastSaved() (string, bool) {
	select {
	case p := <-c.done:
		return p, true
	default:
		return "", false
	}
}
