package control

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOrbit(t *testing.T) {
	a := New(nil)
	assert.Equal(t, Orbit, a.Mode())
	assert.True(t, a.OrbitEnabled())
	_, ok := a.Dragging()
	assert.False(t, ok)
}

func TestDragLifecycle(t *testing.T) {
	tests := []struct {
		name   string
		events []string
		want   Mode
	}{
		{"start", []string{"start"}, Drag},
		{"start end", []string{"start", "end"}, Orbit},
		{"start hoveroff", []string{"start", "hover"}, Orbit},
		{"end without start", []string{"end"}, Orbit},
		{"restart", []string{"start", "end", "start"}, Drag},
		{"double start", []string{"start", "start"}, Drag},
		{"hover while orbit", []string{"hover", "hover"}, Orbit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(nil)
			for _, e := range tt.events {
				switch e {
				case "start":
					a.DragStart(3)
				case "end":
					a.DragEnd()
				case "hover":
					a.HoverOff()
				}
			}
			assert.Equal(t, tt.want, a.Mode())
			assert.Equal(t, tt.want == Orbit, a.OrbitEnabled())
		})
	}
}

func TestDraggingTarget(t *testing.T) {
	a := New(nil)
	a.DragStart(6)
	idx, ok := a.Dragging()
	assert.True(t, ok)
	assert.Equal(t, 6, idx)

	a.DragStart(2)
	idx, _ = a.Dragging()
	assert.Equal(t, 2, idx)
}

func TestModeChangeCallback(t *testing.T) {
	a := New(nil)
	var got []Mode
	a.OnModeChange = func(m Mode) { got = append(got, m) }

	a.DragStart(1)
	a.DragStart(1)
	a.HoverOff()
	a.DragEnd()
	assert.Equal(t, []Mode{Drag, Orbit}, got)
}

// Drag holds exactly when a start was not followed by an end or hover-off.
func TestDragIffOpenStart(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	a := New(nil)
	open := false
	for i := 0; i < 1000; i++ {
		switch rng.IntN(3) {
		case 0:
			a.DragStart(rng.IntN(9))
			open = true
		case 1:
			a.DragEnd()
			open = false
		case 2:
			a.HoverOff()
			open = false
		}
		assert.Equal(t, open, a.Mode() == Drag)
		assert.NotEqual(t, a.OrbitEnabled(), a.Mode() == Drag)
	}
}
