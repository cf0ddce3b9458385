package loop

import "time"

// FrameID identifies a scheduled frame callback.
type FrameID uint64

// FrameFunc is called once per frame with the host timestamp.
type FrameFunc func(now time.Duration)

// FrameSource is the host's per-frame callback facility. A callback is
// called at most once; the loop re-requests every frame.
type FrameSource interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// pending holds the callbacks of a frame source until they fire.
type pending struct {
	next  FrameID
	calls map[FrameID]FrameFunc
	order []FrameID
}

func (p *pending) request(fn FrameFunc) FrameID {
	if p.calls == nil {
		p.calls = make(map[FrameID]FrameFunc)
	}
	p.next++
	p.calls[p.next] = fn
	p.order = append(p.order, p.next)
	return p.next
}

func (p *pending) cancel(id FrameID) {
	delete(p.calls, id)
}

// fire runs the callbacks requested before this call. Callbacks requested
// while firing wait for the next frame.
func (p *pending) fire(now time.Duration) int {
	order := p.order
	p.order = nil
	n := 0
	for _, id := range order {
		fn, ok := p.calls[id]
		if !ok {
			continue
		}
		delete(p.calls, id)
		fn(now)
		n++
	}
	return n
}

func (p *pending) len() int {
	return len(p.calls)
}

// Manual is a FrameSource with a deterministic clock. Tests and headless
// runs call Step to produce frames.
type Manual struct {
	now time.Duration
	p   pending
}

// NewManual creates a manual source at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// RequestFrame implements FrameSource.
func (m *Manual) RequestFrame(fn FrameFunc) FrameID {
	return m.p.request(fn)
}

// CancelFrame implements FrameSource.
func (m *Manual) CancelFrame(id FrameID) {
	m.p.cancel(id)
}

// Step advances the clock by dt and fires pending callbacks. It returns the
// number of callbacks run.
func (m *Manual) Step(dt time.Duration) int {
	m.now += dt
	return m.p.fire(m.now)
}

// StepN calls Step n times.
func (m *Manual) StepN(n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		m.Step(dt)
	}
}

// Now returns the current clock.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of scheduled callbacks.
func (m *Manual) Pending() int {
	return m.p.len()
}

// Ticker is a wall-clock FrameSource. The host calls Pump from its main
// thread once per presented frame, so callbacks run on that thread.
type Ticker struct {
	start time.Time
	p     pending
}

// NewTicker creates a ticker whose clock starts now.
func NewTicker() *Ticker {
	return &Ticker{start: time.Now()}
}

// RequestFrame implements FrameSource.
func (t *Ticker) RequestFrame(fn FrameFunc) FrameID {
	return t.p.request(fn)
}

// CancelFrame implements FrameSource.
func (t *Ticker) CancelFrame(id FrameID) {
	t.p.cancel(id)
}

// Pump fires pending callbacks with the elapsed wall time.
func (t *Ticker) Pump() int {
	return t.p.fire(time.Since(t.start))
}
