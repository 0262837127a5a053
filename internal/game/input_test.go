package game

import (
	"fmt"
	"slices"
	"testing"

	"github.com/iburimskiy/starfield/internal/sim"
)

// sinkLog records pointer events as short strings.
type sinkLog struct {
	events []string
	active bool
}

func (l *sinkLog) PointerDown(id int, x, y float64) {
	l.active = true
	l.events = append(l.events, fmt.Sprintf("down %d %v,%v", id, x, y))
}

func (l *sinkLog) PointerMove(id int, x, y float64) {
	l.events = append(l.events, fmt.Sprintf("move %d %v,%v", id, x, y))
}

func (l *sinkLog) PointerHover(x, y float64) {
	l.events = append(l.events, fmt.Sprintf("hover %v,%v", x, y))
}

func (l *sinkLog) PointerUp(id int) {
	l.active = false
	l.events = append(l.events, fmt.Sprintf("up %d", id))
}

func (l *sinkLog) PointerLeave() {
	l.active = false
	l.events = append(l.events, "leave")
}

func (l *sinkLog) Pointer() sim.Pointer {
	return sim.Pointer{Active: l.active}
}

func mouseAt(x, y int) tickInput {
	return tickInput{CursorX: x, CursorY: y, Focused: true}
}

func mousePress(x, y int) tickInput {
	ti := mouseAt(x, y)
	ti.MousePressed, ti.MouseDown = true, true
	return ti
}

func mouseHeld(x, y int) tickInput {
	ti := mouseAt(x, y)
	ti.MouseDown = true
	return ti
}

func mouseRelease(x, y int) tickInput {
	ti := mouseAt(x, y)
	ti.MouseReleased = true
	return ti
}

func touches(pressed, held, released []touchSample) tickInput {
	ti := mouseAt(0, 0)
	ti.TouchesPressed, ti.TouchesHeld, ti.TouchesReleased = pressed, held, released
	return ti
}

func TestInputRouting(t *testing.T) {
	// The test panel spans x 728-988, y 12-308 on a 1000px wide surface.
	tests := []struct {
		name  string
		ticks []tickInput
		want  []string
	}{
		{
			name:  "drag on the field",
			ticks: []tickInput{mousePress(100, 100), mouseHeld(120, 110), mouseRelease(120, 110)},
			want:  []string{"down 0 100,100", "move 0 120,110", "up 0"},
		},
		{
			name:  "drag from the panel across the field",
			ticks: []tickInput{mousePress(800, 50), mouseHeld(500, 60), mouseHeld(100, 400), mouseRelease(100, 400)},
			want:  nil,
		},
		{
			name: "touch on the panel",
			ticks: []tickInput{
				touches([]touchSample{{ID: 3, X: 800, Y: 50}}, []touchSample{{ID: 3, X: 800, Y: 50, PrevX: 800, PrevY: 50}}, nil),
				touches(nil, []touchSample{{ID: 3, X: 300, Y: 50, PrevX: 800, PrevY: 50}}, nil),
				touches(nil, nil, []touchSample{{ID: 3, X: 300, Y: 50}}),
			},
			want: nil,
		},
		{
			name: "touch on the field",
			ticks: []tickInput{
				touches([]touchSample{{ID: 0, X: 50, Y: 60}}, []touchSample{{ID: 0, X: 50, Y: 60, PrevX: 50, PrevY: 60}}, nil),
				touches(nil, []touchSample{{ID: 0, X: 70, Y: 60, PrevX: 50, PrevY: 60}}, nil),
				touches(nil, nil, []touchSample{{ID: 0, X: 70, Y: 60}}),
			},
			want: []string{"down 1 50,60", "move 1 70,60", "up 1"},
		},
		{
			name:  "hover onto the panel",
			ticks: []tickInput{mouseAt(100, 100), mouseAt(200, 120), mouseAt(800, 50)},
			want:  []string{"hover 200,120", "leave"},
		},
		{
			name:  "still cursor does not hover",
			ticks: []tickInput{mouseAt(100, 100), mouseAt(100, 100)},
			want:  nil,
		},
		{
			name: "focus lost",
			ticks: []tickInput{
				mouseAt(100, 100), mouseAt(200, 120),
				{CursorX: 200, CursorY: 120}, {CursorX: 200, CursorY: 120},
			},
			want: []string{"hover 200,120", "leave"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPanel(t)
			in := newInput()
			var log sinkLog
			for _, ti := range tt.ticks {
				in.apply(&log, p, ti)
			}
			if !slices.Equal(log.events, tt.want) {
				t.Errorf("events = %q, want %q", log.events, tt.want)
			}
		})
	}
}

func TestInputFocusLossFreesPanel(t *testing.T) {
	p, params := newTestPanel(t)
	in := newInput()
	var log sinkLog
	x0, _, y := p.layout.track(0)

	in.apply(&log, p, mousePress(int(x0), int(y)))
	in.apply(&log, p, tickInput{CursorX: int(x0), CursorY: int(y)})
	if p.owner != sim.NoPointer {
		t.Fatalf("panel still owned by %d after focus loss", p.owner)
	}

	// A later touch can take the panel again.
	x1, _, _ := p.layout.track(0)
	in.apply(&log, p, touches([]touchSample{{ID: 0, X: int(x1) + 1, Y: int(y)}}, nil, nil))
	if p.owner != touchPointer(0) {
		t.Errorf("panel owner = %d, want the touch", p.owner)
	}
	if params.Get(sim.Count) != 100 {
		t.Errorf("count = %v, want 100", params.Get(sim.Count))
	}
}
