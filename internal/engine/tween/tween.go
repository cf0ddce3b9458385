package tween

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/sceneview/internal/scene/graph"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Channel identifies which property of an object a tween drives.
type Channel int

const (
	ChannelTransform Channel = iota
	ChannelColor
)

// Key identifies a running tween. Starting a tween for a key that already
// has one replaces it.
type Key struct {
	Object  int
	Channel Channel
}

// Options configure a tween.
type Options struct {
	Duration float32 // Seconds
	Ease     ease.TweenFunc
}

// tween is one running interpolation. progress runs 0 -> 1 along the ease
// curve; apply receives the eased progress, and exactly 1 on completion.
type tween struct {
	progress *gween.Tween
	apply    func(p float32)
	onDone   func()
}

func (t *tween) update(dt float32) bool {
	p, done := t.progress.Update(dt)
	if done {
		t.apply(1)
		return true
	}
	t.apply(p)
	return false
}

// Group owns a set of tweens advanced together by Update.
type Group struct {
	tweens map[Key]*tween
	order  []Key
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{tweens: make(map[Key]*tween)}
}

// Len returns the number of running tweens.
func (g *Group) Len() int {
	return len(g.tweens)
}

// Running reports whether a tween is active for key.
func (g *Group) Running(key Key) bool {
	_, ok := g.tweens[key]
	return ok
}

// Cancel stops a tween without applying its end value.
func (g *Group) Cancel(key Key) {
	if _, ok := g.tweens[key]; !ok {
		return
	}
	delete(g.tweens, key)
	for i, k := range g.order {
		if k == key {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Transform starts a transform tween from -> to. set receives every
// intermediate value and finally `to` exactly.
func (g *Group) Transform(key Key, from, to graph.Transform, opts Options, set func(graph.Transform)) {
	g.start(key, opts, func(p float32) {
		set(LerpTransform(from, to, p))
	})
}

// Color starts a color tween from -> to, blended in RGB.
func (g *Group) Color(key Key, from, to colorful.Color, opts Options, set func(colorful.Color)) {
	g.start(key, opts, func(p float32) {
		set(BlendColor(from, to, p))
	})
}

// OnDone registers fn to run once the tween for key completes. It is not
// called for cancelled or replaced tweens.
func (g *Group) OnDone(key Key, fn func()) {
	if t, ok := g.tweens[key]; ok {
		t.onDone = fn
	}
}

func (g *Group) start(key Key, opts Options, apply func(p float32)) {
	g.Cancel(key)
	fn := opts.Ease
	if fn == nil {
		fn = ease.OutQuart
	}
	t := &tween{
		progress: gween.New(0, 1, opts.Duration, fn),
		apply:    apply,
	}
	if opts.Duration <= 0 {
		apply(1)
		return
	}
	g.tweens[key] = t
	g.order = append(g.order, key)
}

// Update advances every tween by dt seconds, in start order, and drops the
// finished ones.
func (g *Group) Update(dt float32) {
	if len(g.order) == 0 {
		return
	}
	keys := append([]Key(nil), g.order...)
	for _, key := range keys {
		t, ok := g.tweens[key]
		if !ok {
			continue
		}
		if t.update(dt) {
			g.Cancel(key)
			if t.onDone != nil {
				t.onDone()
			}
		}
	}
}

// LerpTransform interpolates every component. p >= 1 returns to exactly.
func LerpTransform(from, to graph.Transform, p float32) graph.Transform {
	if p >= 1 {
		return to
	}
	return graph.Transform{
		Position: from.Position.Lerp(to.Position, p),
		Rotation: from.Rotation.Lerp(to.Rotation, p),
		Scale:    from.Scale.Lerp(to.Scale, p),
	}
}

// BlendColor mixes two colors in RGB. p >= 1 returns to exactly.
func BlendColor(from, to colorful.Color, p float32) colorful.Color {
	if p >= 1 {
		return to
	}
	return from.BlendRgb(to, float64(p))
}

// Offset returns t moved by d.
func Offset(t graph.Transform, d math.Vec3) graph.Transform {
	t.Position = t.Position.Add(d)
	return t
}
