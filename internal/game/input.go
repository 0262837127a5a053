package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/starfield/internal/sim"
)

// mousePointer is the pointer id of the mouse. Touches use their touch id
// plus one.
const mousePointer = 0

func touchPointer(id ebiten.TouchID) int { return int(id) + 1 }

// pointerSink receives translated pointer events.
type pointerSink interface {
	PointerDown(id int, x, y float64)
	PointerMove(id int, x, y float64)
	PointerHover(x, y float64)
	PointerUp(id int)
	PointerLeave()
	Pointer() sim.Pointer
}

// touchSample is one touch as seen in one tick. PrevX and PrevY hold the
// position of the previous tick.
type touchSample struct {
	ID           ebiten.TouchID
	X, Y         int
	PrevX, PrevY int
}

// tickInput is the pointer state ebiten reports for one tick.
type tickInput struct {
	CursorX, CursorY int
	Focused          bool

	MouseDown     bool // held
	MousePressed  bool // went down this tick
	MouseReleased bool // went up this tick

	TouchesPressed  []touchSample
	TouchesHeld     []touchSample
	TouchesReleased []touchSample
}

// readTickInput samples ebiten's input state, reusing the slices of prev.
func readTickInput(prev tickInput) tickInput {
	ti := tickInput{
		Focused:         ebiten.IsFocused(),
		MouseDown:       ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		MousePressed:    inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		MouseReleased:   inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		TouchesPressed:  prev.TouchesPressed[:0],
		TouchesHeld:     prev.TouchesHeld[:0],
		TouchesReleased: prev.TouchesReleased[:0],
	}
	ti.CursorX, ti.CursorY = ebiten.CursorPosition()

	var ids []ebiten.TouchID
	ids = inpututil.AppendJustPressedTouchIDs(ids)
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		ti.TouchesPressed = append(ti.TouchesPressed, touchSample{ID: id, X: x, Y: y, PrevX: x, PrevY: y})
	}
	ids = ebiten.AppendTouchIDs(ids[:0])
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		px, py := x, y
		if !inpututil.IsTouchJustPressed(id) {
			px, py = inpututil.TouchPositionInPreviousTick(id)
		}
		ti.TouchesHeld = append(ti.TouchesHeld, touchSample{ID: id, X: x, Y: y, PrevX: px, PrevY: py})
	}
	ids = inpututil.AppendJustReleasedTouchIDs(ids[:0])
	for _, id := range ids {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		ti.TouchesReleased = append(ti.TouchesReleased, touchSample{ID: id, X: x, Y: y, PrevX: x, PrevY: y})
	}
	return ti
}

// input turns per-tick pointer state into pointer events. Pointers that go
// down on the panel belong to it until released.
type input struct {
	mouseOnPanel bool
	cursorX      int
	cursorY      int
	cursorSeen   bool
	focused      bool

	touchOnPanel map[ebiten.TouchID]bool
	touching     bool

	last tickInput
}

func newInput() *input {
	return &input{touchOnPanel: make(map[ebiten.TouchID]bool), focused: true}
}

func (in *input) update(s pointerSink, p *panel) {
	in.last = readTickInput(in.last)
	in.apply(s, p, in.last)
}

func (in *input) apply(s pointerSink, p *panel, ti tickInput) {
	in.applyTouches(s, p, ti)
	in.applyMouse(s, p, ti)
}

func (in *input) applyMouse(s pointerSink, p *panel, ti tickInput) {
	if !ti.Focused {
		// The cursor is somewhere else: nothing more will arrive until it
		// comes back, so drop the field and any panel grab.
		if in.focused {
			in.focused = false
			in.cursorSeen = false
			if in.mouseOnPanel {
				p.cancel(mousePointer)
				in.mouseOnPanel = false
			}
			s.PointerLeave()
		}
		return
	}
	in.focused = true

	cx, cy := ti.CursorX, ti.CursorY
	first := !in.cursorSeen
	moved := first || cx != in.cursorX || cy != in.cursorY
	in.cursorX, in.cursorY, in.cursorSeen = cx, cy, true
	x, y := float64(cx), float64(cy)

	switch {
	case ti.MousePressed:
		if p.press(mousePointer, x, y) {
			in.mouseOnPanel = true
		} else {
			s.PointerDown(mousePointer, x, y)
		}
	case ti.MouseDown:
		if !moved {
			break
		}
		if in.mouseOnPanel {
			p.drag(mousePointer, x)
		} else {
			s.PointerMove(mousePointer, x, y)
		}
	case moved && !first && !in.touching:
		// Touch-only devices report a fixed cursor; only real motion hovers.
		p.hover(x, y)
		if p.contains(x, y) {
			if !s.Pointer().Active {
				s.PointerLeave()
			}
		} else {
			s.PointerHover(x, y)
		}
	}

	if ti.MouseReleased {
		if in.mouseOnPanel {
			p.release(mousePointer, x, y)
			in.mouseOnPanel = false
		} else {
			s.PointerUp(mousePointer)
		}
	}
}

func (in *input) applyTouches(s pointerSink, p *panel, ti tickInput) {
	for _, t := range ti.TouchesPressed {
		x, y := float64(t.X), float64(t.Y)
		if p.press(touchPointer(t.ID), x, y) {
			in.touchOnPanel[t.ID] = true
			continue
		}
		s.PointerDown(touchPointer(t.ID), x, y)
	}

	in.touching = len(ti.TouchesHeld) > 0
	for _, t := range ti.TouchesHeld {
		if t.X == t.PrevX && t.Y == t.PrevY {
			continue
		}
		if in.touchOnPanel[t.ID] {
			p.drag(touchPointer(t.ID), float64(t.X))
			continue
		}
		s.PointerMove(touchPointer(t.ID), float64(t.X), float64(t.Y))
	}

	for _, t := range ti.TouchesReleased {
		if in.touchOnPanel[t.ID] {
			p.release(touchPointer(t.ID), float64(t.X), float64(t.Y))
			delete(in.touchOnPanel, t.ID)
			continue
		}
		s.PointerUp(touchPointer(t.ID))
	}
}
