// Package loop runs the per-frame update and render cycle on top of a host
// frame callback.
package loop

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Stage is one per-frame update step. dt is the elapsed time in seconds.
type Stage struct {
	Name   string
	Update func(dt float32)
}

// Loop drives the stages and one render per frame. It runs entirely inside
// the frame callbacks of its source and holds no locks.
type Loop struct {
	source FrameSource
	stages []Stage
	render func() error
	log    *zap.Logger

	running bool
	frame   FrameID
	last    time.Duration
	started bool
	frames  uint64
	err     error

	fpsFrames int
	fpsSince  time.Duration

	// OnError is called when render fails. The loop stops first.
	OnError func(error)
}

// New creates a stopped loop. Stages run in the given order before render.
func New(source FrameSource, stages []Stage, render func() error, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		source: source,
		stages: stages,
		render: render,
		log:    log,
	}
}

// Start schedules the first frame. Starting a running loop does nothing.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.started = false
	l.err = nil
	l.frame = l.source.RequestFrame(l.tick)
	l.log.Debug("render loop started", zap.Int("stages", len(l.stages)))
}

// Stop cancels the scheduled frame. No stage runs after Stop returns.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.source.CancelFrame(l.frame)
	l.log.Debug("render loop stopped", zap.Uint64("frames", l.frames))
}

// Running reports whether a frame is scheduled.
func (l *Loop) Running() bool {
	return l.running
}

// Frames returns the number of completed frames.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Err returns the render error that stopped the loop, if any.
func (l *Loop) Err() error {
	return l.err
}

func (l *Loop) tick(now time.Duration) {
	if !l.running {
		return
	}

	var dt float32
	if l.started {
		dt = float32((now - l.last).Seconds())
	} else {
		l.fpsSince = now
	}
	l.started = true
	l.last = now

	for _, s := range l.stages {
		s.Update(dt)
		if !l.running {
			return
		}
	}

	if err := l.render(); err != nil {
		l.err = fmt.Errorf("render frame %d: %w", l.frames, err)
		l.log.Error("render failed", zap.Error(err), zap.Uint64("frame", l.frames))
		l.Stop()
		if l.OnError != nil {
			l.OnError(l.err)
		}
		return
	}
	l.frames++
	l.countFPS(now, dt)

	// A stage or the render may have stopped the loop.
	if l.running {
		l.frame = l.source.RequestFrame(l.tick)
	}
}

func (l *Loop) countFPS(now time.Duration, dt float32) {
	l.fpsFrames++
	if now-l.fpsSince >= time.Second {
		l.log.Debug("fps",
			zap.Int("count", l.fpsFrames),
			zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
		l.fpsFrames = 0
		l.fpsSince = now
	}
}
