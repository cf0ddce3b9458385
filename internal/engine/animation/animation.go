// Package animation plays named clips of a model. It tracks playback time
// only; the skeleton pose itself is up to the renderer.
package animation

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// ErrUnknownClip is returned when a model has no clip of the requested name.
var ErrUnknownClip = errors.New("unknown animation clip")

// LoopMode decides what happens when an action reaches the end of its clip.
type LoopMode int

const (
	LoopRepeat LoopMode = iota
	LoopOnce
)

// Clip is a named animation of fixed length.
type Clip struct {
	Name     string
	Duration float32 // Seconds
}

// Action is the playback state of one clip on a mixer.
type Action struct {
	clip Clip

	Loop              LoopMode
	ClampWhenFinished bool
	TimeScale         float32

	time     float32
	playing  bool
	finished bool
}

// Clip returns the clip this action plays.
func (a *Action) Clip() Clip {
	return a.clip
}

// Play starts or resumes the action. A finished LoopOnce action restarts.
func (a *Action) Play() *Action {
	if a.finished {
		a.Reset()
	}
	a.playing = true
	return a
}

// Stop halts playback and rewinds.
func (a *Action) Stop() *Action {
	a.playing = false
	a.time = 0
	a.finished = false
	return a
}

// Pause halts playback and keeps the current pose.
func (a *Action) Pause() *Action {
	a.playing = false
	return a
}

// Reset rewinds without changing whether the action is playing.
func (a *Action) Reset() *Action {
	a.time = 0
	a.finished = false
	return a
}

// Playing reports whether the action advances on Update.
func (a *Action) Playing() bool {
	return a.playing
}

// Finished reports whether a LoopOnce action reached its end.
func (a *Action) Finished() bool {
	return a.finished
}

// Time returns the playback position in seconds.
func (a *Action) Time() float32 {
	return a.time
}

func (a *Action) update(dt float32) (finished bool) {
	if !a.playing || a.clip.Duration <= 0 {
		return false
	}
	a.time += dt * a.TimeScale
	if a.time < a.clip.Duration {
		return false
	}

	switch a.Loop {
	case LoopOnce:
		a.playing = false
		a.finished = true
		if a.ClampWhenFinished {
			a.time = a.clip.Duration
		} else {
			a.time = 0
		}
		return true
	default:
		for a.time >= a.clip.Duration {
			a.time -= a.clip.Duration
		}
		return false
	}
}

// Mixer owns the actions of one model.
type Mixer struct {
	clips   map[string]Clip
	actions map[string]*Action
	log     *zap.Logger

	// OnFinished is called when a LoopOnce action ends.
	OnFinished func(a *Action)
}

// NewMixer creates a mixer for the given clips.
func NewMixer(clips []Clip, log *zap.Logger) *Mixer {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Mixer{
		clips:   make(map[string]Clip, len(clips)),
		actions: make(map[string]*Action),
		log:     log,
	}
	for _, c := range clips {
		m.clips[c.Name] = c
	}
	return m
}

// Clips returns the clip names in lexical order.
func (m *Mixer) Clips() []string {
	names := make([]string, 0, len(m.clips))
	for name := range m.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClipAction returns the action for a clip, creating it on first use. The
// same action is returned on every call.
func (m *Mixer) ClipAction(name string) (*Action, error) {
	if a, ok := m.actions[name]; ok {
		return a, nil
	}
	clip, ok := m.clips[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClip, name)
	}
	a := &Action{clip: clip, TimeScale: 1}
	m.actions[name] = a
	return a, nil
}

// StopAll stops every action.
func (m *Mixer) StopAll() {
	for _, a := range m.actions {
		a.Stop()
	}
}

// Playing returns the names of playing actions in lexical order.
func (m *Mixer) Playing() []string {
	var names []string
	for name, a := range m.actions {
		if a.playing {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Update advances every playing action by dt seconds.
func (m *Mixer) Update(dt float32) {
	if dt <= 0 {
		return
	}
	for _, name := range m.Playing() {
		a := m.actions[name]
		if a.update(dt) {
			m.log.Debug("clip finished", zap.String("clip", name))
			if m.OnFinished != nil {
				m.OnFinished(a)
			}
		}
	}
}
