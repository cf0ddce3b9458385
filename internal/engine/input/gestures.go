package input

// Gestures turns pointer down/up pairs into clicks.
type Gestures struct {
	slop float32

	down       bool
	startX     float32
	startY     float32
	travelled  float32
	downButton int
}

// NewGestures creates a recognizer with the given click slop in pixels.
func NewGestures(slop float32) *Gestures {
	return &Gestures{slop: slop}
}

// Feed updates the recognizer and returns a synthesized event if e
// completes one.
func (g *Gestures) Feed(e Event) (Event, bool) {
	switch e.Type {
	case EventPointerDown:
		g.down = true
		g.startX, g.startY = e.X, e.Y
		g.travelled = 0
		g.downButton = e.Button
	case EventPointerMove:
		if g.down {
			g.travelled += abs(e.DX) + abs(e.DY)
		}
	case EventPointerUp:
		if !g.down {
			return Event{}, false
		}
		g.down = false
		moved := abs(e.X-g.startX) + abs(e.Y-g.startY)
		if moved < g.slop && g.travelled < g.slop {
			return Event{Type: EventClick, X: e.X, Y: e.Y, Button: g.downButton}, true
		}
	case EventHoverOff:
		g.down = false
	}
	return Event{}, false
}

// Pressed reports whether a pointer button is held.
func (g *Gestures) Pressed() bool {
	return g.down
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
