package input

// Dispatcher is an in-process Source. Hosts and tests push events with
// Dispatch; pointer gestures are recognized on the way through.
type Dispatcher struct {
	subs   []subscription
	nextID int

	gestures *Gestures
}

type subscription struct {
	id int
	h  Handler
}

// NewDispatcher creates a dispatcher that synthesizes clicks from pointer
// down/up pairs travelling less than slop pixels. slop <= 0 disables click
// synthesis.
func NewDispatcher(slop float32) *Dispatcher {
	d := &Dispatcher{}
	if slop > 0 {
		d.gestures = NewGestures(slop)
	}
	return d
}

// Subscribe implements Source.
func (d *Dispatcher) Subscribe(h Handler) func() {
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription{id: id, h: h})
	return func() {
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of registered handlers.
func (d *Dispatcher) Subscribers() int {
	return len(d.subs)
}

// Dispatch delivers e, followed by any event it completes (a click).
func (d *Dispatcher) Dispatch(e Event) {
	d.deliver(e)
	if d.gestures == nil {
		return
	}
	if extra, ok := d.gestures.Feed(e); ok {
		d.deliver(extra)
	}
}

func (d *Dispatcher) deliver(e Event) {
	// Handlers may unsubscribe while being called.
	subs := append([]subscription(nil), d.subs...)
	for _, s := range subs {
		s.h(e)
	}
}

// Click is shorthand for a pointer down/up pair at (x, y).
func (d *Dispatcher) Click(x, y float32) {
	d.Dispatch(Event{Type: EventPointerDown, X: x, Y: y, Button: 1})
	d.Dispatch(Event{Type: EventPointerUp, X: x, Y: y, Button: 1})
}

// Drag is shorthand for pressing at from, moving to to and releasing.
func (d *Dispatcher) Drag(fromX, fromY, toX, toY float32) {
	d.Dispatch(Event{Type: EventPointerDown, X: fromX, Y: fromY, Button: 1})
	d.Dispatch(Event{Type: EventPointerMove, X: toX, Y: toY, DX: toX - fromX, DY: toY - fromY})
	d.Dispatch(Event{Type: EventPointerUp, X: toX, Y: toY, Button: 1})
}

// Key is shorthand for a key press or release.
func (d *Dispatcher) Key(name string, down bool) {
	t := EventKeyUp
	if down {
		t = EventKeyDown
	}
	d.Dispatch(Event{Type: t, Key: name})
}
