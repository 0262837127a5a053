package game

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/sim"
)

var (
	panelFill   = color.RGBA{R: 10, G: 14, B: 28, A: 210}
	panelBorder = color.RGBA{R: 60, G: 72, B: 100, A: 255}
	trackColor  = color.RGBA{R: 40, G: 48, B: 70, A: 255}
	labelColor  = color.RGBA{R: 200, G: 210, B: 230, A: 255}
	valueColor  = color.RGBA{R: 150, G: 200, B: 255, A: 255}
	buttonFill  = color.RGBA{R: 30, G: 40, B: 64, A: 255}
	buttonHover = color.RGBA{R: 50, G: 64, B: 100, A: 255}
)

// panelLayout is the panel geometry in backing pixels.
type panelLayout struct {
	x, y, w, h float64
	scale      float64
	rows       int
}

func layoutPanel(surfaceW, scale float64, rows int) panelLayout {
	pad := config.PanelPadding * scale
	w := config.PanelWidth * scale
	h := pad + float64(rows)*config.PanelRowH*scale + pad/2 + config.PanelButtonH*scale + pad
	return panelLayout{x: surfaceW - w - pad, y: pad, w: w, h: h, scale: scale, rows: rows}
}

func (l panelLayout) contains(x, y float64) bool {
	return x >= l.x && x < l.x+l.w && y >= l.y && y < l.y+l.h
}

func (l panelLayout) rowTop(i int) float64 {
	return l.y + config.PanelPadding*l.scale + float64(i)*config.PanelRowH*l.scale
}

// track returns the horizontal extent and centre line of row i's slider.
func (l panelLayout) track(i int) (x0, x1, y float64) {
	pad := config.PanelPadding * l.scale
	return l.x + pad, l.x + l.w - pad, l.rowTop(i) + config.PanelRowH*l.scale*0.7
}

func (l panelLayout) hitRow(x, y float64) int {
	if !l.contains(x, y) {
		return -1
	}
	for i := 0; i < l.rows; i++ {
		top := l.rowTop(i)
		if y >= top && y < top+config.PanelRowH*l.scale {
			return i
		}
	}
	return -1
}

// valueBox is the area of row i's value text, which opens a text entry.
func (l panelLayout) valueBox(i int) (x, y, w, h float64) {
	pad := config.PanelPadding * l.scale
	w = config.PanelValueW * l.scale
	return l.x + l.w - pad - w, l.rowTop(i), w, config.PanelRowH * l.scale * 0.5
}

func (l panelLayout) hitValue(x, y float64) int {
	row := l.hitRow(x, y)
	if row < 0 {
		return -1
	}
	bx, by, bw, bh := l.valueBox(row)
	if x >= bx && x < bx+bw && y >= by && y < by+bh {
		return row
	}
	return -1
}

func (l panelLayout) button() (x, y, w, h float64) {
	pad := config.PanelPadding * l.scale
	return l.x + pad, l.rowTop(l.rows) + pad/2, l.w - 2*pad, config.PanelButtonH * l.scale
}

func (l panelLayout) hitButton(x, y float64) bool {
	bx, by, bw, bh := l.button()
	return x >= bx && x < bx+bw && y >= by && y < by+bh
}

// sliderFrac maps a value to its knob position in [0, 1].
func sliderFrac(spec sim.ParamSpec, v float64) float64 {
	if spec.Max <= spec.Min {
		return 0
	}
	return clamp01((v - spec.Min) / (spec.Max - spec.Min))
}

// sliderValue maps a knob position to a value snapped to the parameter's step.
func sliderValue(spec sim.ParamSpec, frac float64) float64 {
	v := spec.Min + clamp01(frac)*(spec.Max-spec.Min)
	if spec.Step > 0 {
		v = spec.Min + math.Round((v-spec.Min)/spec.Step)*spec.Step
		v = math.Round(v*1e6) / 1e6
	}
	return spec.Clamp(v)
}

// panel is the in-window control panel: one slider per parameter and a
// reset button. It holds at most one pointer at a time.
type panel struct {
	params *sim.Params
	specs  []sim.ParamSpec
	texts  map[sim.Param]string

	source *text.GoTextFaceSource
	face   *text.GoTextFace

	layout  panelLayout
	visible bool

	owner     int
	dragRow   int
	resetDown bool
	hoverX    float64
	hoverY    float64

	editRow int // row whose value is being typed, or -1
	editBuf []rune
}

// editKeys is the keyboard state a text entry consumes in one tick.
type editKeys struct {
	Chars     []rune
	Enter     bool
	Backspace bool
	Escape    bool
}

func newPanel(params *sim.Params) (*panel, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading panel font: %w", err)
	}
	p := &panel{
		params:  params,
		specs:   sim.Specs(),
		texts:   make(map[sim.Param]string),
		source:  src,
		visible: true,
		owner:   sim.NoPointer,
		dragRow: -1,
		editRow: -1,
	}
	for _, s := range p.specs {
		p.texts[s.Name] = params.Text(s.Name)
	}
	params.OnChange(func(name sim.Param, v float64) {
		p.texts[name] = sim.FormatParam(name, v)
	})
	p.resize(0, 1)
	return p, nil
}

// resize lays the panel out against the right edge of a surface surfaceW
// pixels wide at the given pixel ratio.
func (p *panel) resize(surfaceW, scale float64) {
	p.layout = layoutPanel(surfaceW, scale, len(p.specs))
	if p.face == nil || p.face.Size != config.PanelFontSize*scale {
		p.face = &text.GoTextFace{Source: p.source, Size: config.PanelFontSize * scale}
	}
}

func (p *panel) toggle() {
	p.commitEdit()
	p.visible = !p.visible
	p.owner, p.dragRow, p.resetDown = sim.NoPointer, -1, false
}

func (p *panel) contains(x, y float64) bool {
	return p.visible && p.layout.contains(x, y)
}

// press offers a pointer-down to the panel and reports whether the panel
// took it. Presses on the panel while another pointer holds it are swallowed.
func (p *panel) press(id int, x, y float64) bool {
	if !p.contains(x, y) {
		p.commitEdit()
		return false
	}
	if p.owner != sim.NoPointer {
		return true
	}
	p.commitEdit()
	p.owner = id
	if row := p.layout.hitValue(x, y); row >= 0 {
		p.editRow, p.editBuf = row, p.editBuf[:0]
		return true
	}
	if p.layout.hitButton(x, y) {
		p.resetDown = true
		return true
	}
	if row := p.layout.hitRow(x, y); row >= 0 {
		p.dragRow = row
		p.setFromX(row, x)
	}
	return true
}

func (p *panel) drag(id int, x float64) {
	if id != p.owner || p.dragRow < 0 {
		return
	}
	p.setFromX(p.dragRow, x)
}

func (p *panel) release(id int, x, y float64) {
	if id != p.owner {
		return
	}
	if p.resetDown && p.layout.hitButton(x, y) {
		p.params.Reset()
	}
	p.owner, p.dragRow, p.resetDown = sim.NoPointer, -1, false
}

// cancel drops id's grab without acting on it.
func (p *panel) cancel(id int) {
	if id != p.owner {
		return
	}
	p.owner, p.dragRow, p.resetDown = sim.NoPointer, -1, false
}

func (p *panel) editing() bool { return p.editRow >= 0 }

// edit feeds one tick of typing into the open text entry. Enter commits
// through the store, which clamps the value and echoes it back; Escape
// abandons the entry.
func (p *panel) edit(k editKeys) {
	if !p.editing() {
		return
	}
	for _, r := range k.Chars {
		if len(p.editBuf) >= config.PanelEditMax {
			break
		}
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			p.editBuf = append(p.editBuf, r)
		}
	}
	if k.Backspace && len(p.editBuf) > 0 {
		p.editBuf = p.editBuf[:len(p.editBuf)-1]
	}
	switch {
	case k.Escape:
		p.editRow = -1
	case k.Enter:
		p.commitEdit()
	}
}

// commitEdit applies a non-empty entry and closes it.
func (p *panel) commitEdit() {
	if !p.editing() {
		return
	}
	row := p.editRow
	p.editRow = -1
	if len(p.editBuf) > 0 {
		p.params.SetString(p.specs[row].Name, string(p.editBuf))
	}
}

func (p *panel) hover(x, y float64) {
	p.hoverX, p.hoverY = x, y
}

func (p *panel) setFromX(row int, x float64) {
	x0, x1, _ := p.layout.track(row)
	spec := p.specs[row]
	p.params.Set(spec.Name, sliderValue(spec, (x-x0)/(x1-x0)))
}

func (p *panel) draw(dst *ebiten.Image) {
	if !p.visible {
		return
	}
	l := p.layout
	s := l.scale
	vector.DrawFilledRect(dst, float32(l.x), float32(l.y), float32(l.w), float32(l.h), panelFill, false)
	vector.StrokeRect(dst, float32(l.x), float32(l.y), float32(l.w), float32(l.h), float32(s), panelBorder, false)

	for i, spec := range p.specs {
		x0, x1, ty := l.track(i)
		top := l.rowTop(i) + 4*s
		p.drawText(dst, spec.Label, x0, top, labelColor)

		val := p.texts[spec.Name]
		if p.editRow == i {
			bx, by, bw, bh := l.valueBox(i)
			vector.StrokeRect(dst, float32(bx), float32(by), float32(bw), float32(bh), float32(s), valueColor, false)
			val = string(p.editBuf) + "_"
		}
		vw, _ := text.Measure(val, p.face, 0)
		p.drawText(dst, val, x1-vw, top, valueColor)

		frac := sliderFrac(spec, p.params.Get(spec.Name))
		th := config.PanelTrackH * s
		fill := sim.HSL(200+float64(i)*8, 0.85, 0.72)
		kx := x0 + (x1-x0)*frac
		vector.DrawFilledRect(dst, float32(x0), float32(ty-th/2), float32(x1-x0), float32(th), trackColor, false)
		vector.DrawFilledRect(dst, float32(x0), float32(ty-th/2), float32(kx-x0), float32(th), fill, false)
		vector.DrawFilledCircle(dst, float32(kx), float32(ty), float32(config.PanelKnobR*s), fill, true)
	}

	bx, by, bw, bh := l.button()
	bg := buttonFill
	if l.hitButton(p.hoverX, p.hoverY) || p.resetDown {
		bg = buttonHover
	}
	vector.DrawFilledRect(dst, float32(bx), float32(by), float32(bw), float32(bh), bg, false)
	vector.StrokeRect(dst, float32(bx), float32(by), float32(bw), float32(bh), float32(s), panelBorder, false)
	tw, th := text.Measure("Reset", p.face, 0)
	p.drawText(dst, "Reset", bx+(bw-tw)/2, by+(bh-th)/2, labelColor)
}

func (p *panel) drawText(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, p.face, op)
}
