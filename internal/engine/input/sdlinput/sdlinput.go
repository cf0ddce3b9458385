// Package sdlinput feeds SDL2 window events into an input.Dispatcher.
package sdlinput

import (
	"strings"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/sceneview/internal/engine/input"
)

// Source polls SDL2 events and dispatches them as input events. Poll must be
// called from the thread that owns the SDL window.
type Source struct {
	*input.Dispatcher
}

// New creates an SDL event source with the given click slop.
func New(slop float32) *Source {
	return &Source{Dispatcher: input.NewDispatcher(slop)}
}

// Poll drains the SDL event queue. Returns true if the window should close.
func (s *Source) Poll() bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := convert(event)
		if !ok {
			continue
		}
		if e.Type == input.EventQuit {
			quit = true
		}
		s.Dispatch(e)
	}
	return quit
}

func convert(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return input.Event{Type: input.EventResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_LEAVE:
			return input.Event{Type: input.EventHoverOff}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return input.Event{}, false
		}
		key := strings.ToLower(sdl.GetKeyName(e.Keysym.Sym))
		if e.Type == sdl.KEYDOWN {
			return input.Event{Type: input.EventKeyDown, Key: key}, true
		}
		return input.Event{Type: input.EventKeyUp, Key: key}, true

	case *sdl.MouseMotionEvent:
		return input.Event{
			Type: input.EventPointerMove,
			X:    float32(e.X),
			Y:    float32(e.Y),
			DX:   float32(e.XRel),
			DY:   float32(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		t := input.EventPointerUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = input.EventPointerDown
		}
		return input.Event{Type: t, X: float32(e.X), Y: float32(e.Y), Button: int(e.Button)}, true

	case *sdl.MouseWheelEvent:
		return input.Event{Type: input.EventWheel, DX: float32(e.X), DY: float32(e.Y)}, true
	}
	return input.Event{}, false
}
