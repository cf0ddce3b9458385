// Package input delivers pointer, keyboard and window events to the
// controller. Sources dispatch on the host thread between frames.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventKeyUp
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventClick
	EventDragStart
	EventDragEnd
	EventHoverOff
	EventWheel
)

var eventNames = [...]string{
	EventNone:        "none",
	EventQuit:        "quit",
	EventResize:      "resize",
	EventKeyDown:     "keydown",
	EventKeyUp:       "keyup",
	EventPointerDown: "pointerdown",
	EventPointerMove: "pointermove",
	EventPointerUp:   "pointerup",
	EventClick:       "click",
	EventDragStart:   "dragstart",
	EventDragEnd:     "dragend",
	EventHoverOff:    "hoveroff",
	EventWheel:       "wheel",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is one input event. Pointer coordinates are surface pixels with the
// origin top-left; DX/DY carry motion deltas or wheel scroll.
type Event struct {
	Type   EventType
	X, Y   float32
	DX, DY float32
	Key    string // Lower-case key name, e.g. "w"
	Width  int
	Height int
	Button int
}

// Handler receives events.
type Handler func(Event)

// Source is anything the controller can subscribe to.
type Source interface {
	// Subscribe registers h and returns a function removing it again.
	Subscribe(h Handler) (unsubscribe func())
}
