package sim

// Point is a position in backing pixels.
type Point struct{ X, Y float64 }

// Trail is a fixed-capacity ring of past positions. Pushing onto a full trail
// overwrites the oldest point.
type Trail struct {
	buf  []Point
	next int
	n    int
}

func newTrail(buf []Point) Trail {
	return Trail{buf: buf[:cap(buf)]}
}

// Push records p as the newest point.
func (t *Trail) Push(p Point) {
	if len(t.buf) == 0 {
		return
	}
	t.buf[t.next] = p
	t.next++
	if t.next >= len(t.buf) {
		t.next = 0
	}
	if t.n < len(t.buf) {
		t.n++
	}
}

// Len returns the number of stored points.
func (t *Trail) Len() int { return t.n }

// At returns the i-th stored point, oldest first.
func (t *Trail) At(i int) Point {
	idx := t.next - t.n + i
	if idx < 0 {
		idx += len(t.buf)
	}
	return t.buf[idx%len(t.buf)]
}

func (t *Trail) release() []Point {
	buf := t.buf
	*t = Trail{}
	return buf
}
