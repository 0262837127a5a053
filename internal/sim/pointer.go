package sim

import "github.com/iburimskiy/starfield/internal/config"

// NoPointer is the capture id when no pointer holds the drag.
const NoPointer = -1

// Pointer is the controller's view of the pointer, in backing pixels.
type Pointer struct {
	X, Y         float64
	LastX, LastY float64 // drag origin for the next delta
	Present      bool    // on the surface (or captured)
	Active       bool    // dragging
	ID           int     // captured pointer, or NoPointer
}

// Pointer returns the current pointer state.
func (s *Sim) Pointer() Pointer { return s.ptr }

// SetCaptureSupported records whether the host can keep delivering moves for
// a captured pointer once it leaves the surface. Without capture, leaving the
// surface ends the drag.
func (s *Sim) SetCaptureSupported(ok bool) { s.captureUnsupported = !ok }

// PointerDown starts a drag for id at (x, y) and captures it. A down from a
// second pointer while one is captured is ignored.
func (s *Sim) PointerDown(id int, x, y float64) {
	if s.ptr.Active && s.ptr.ID != id {
		return
	}
	s.ptr = Pointer{X: x, Y: y, LastX: x, LastY: y, Present: true, Active: true, ID: id}
}

// PointerMove reports a new position for id. Only the captured pointer moves
// the drag, wherever it is.
func (s *Sim) PointerMove(id int, x, y float64) {
	p := &s.ptr
	if !p.Active || p.ID != id {
		return
	}
	if s.captureUnsupported && !s.surf.Contains(x, y) {
		s.PointerLeave()
		return
	}
	dx, dy := x-p.LastX, y-p.LastY
	p.X, p.Y = x, y
	p.LastX, p.LastY = x, y

	switch s.variant.Interaction {
	case ModeDrift:
		s.DriftBias(dx/s.surf.DPR, dy/s.surf.DPR)
	case ModeGesture:
		dpr := s.surf.DPR
		if dx*dx+dy*dy > config.GestureMinDistSq*dpr*dpr {
			s.SpawnAt(x, y, dx*config.GestureVelocity, dy*config.GestureVelocity)
		}
	}
}

// PointerHover tracks a pointer with no button held. Hovering off the
// surface marks the pointer absent.
func (s *Sim) PointerHover(x, y float64) {
	if s.ptr.Active {
		return
	}
	if !s.surf.Contains(x, y) {
		s.ptr = Pointer{ID: NoPointer}
		return
	}
	s.ptr.X, s.ptr.Y = x, y
	s.ptr.LastX, s.ptr.LastY = x, y
	s.ptr.Present = true
}

// PointerUp ends the drag if id holds the capture.
func (s *Sim) PointerUp(id int) {
	if s.ptr.Active && s.ptr.ID != id {
		return
	}
	s.ptr = Pointer{ID: NoPointer}
}

// PointerLeave clears all pointer state.
func (s *Sim) PointerLeave() {
	s.ptr = Pointer{ID: NoPointer}
}
