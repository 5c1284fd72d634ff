package player

import (
	"context"
	"sync"
)

// NopEngine plays nothing. It records calls and can be told to fail, which
// makes it the engine for --no-audio runs and for tests.
type NopEngine struct {
	mu       sync.Mutex
	calls    []string
	failures map[string]error

	url      string
	volume   int
	muted    bool
	position float64
	duration float64
	hasDur   bool

	events chan EngineEvent
	closed bool
}

func NewNopEngine() *NopEngine {
	return &NopEngine{
		failures: make(map[string]error),
		events:   make(chan EngineEvent, engineEventBuffer),
	}
}

// Fail makes the named method ("Start", "Pause", ...) return err. A nil err
// clears the failure.
func (n *NopEngine) Fail(method string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err == nil {
		delete(n.failures, method)
		return
	}
	n.failures[method] = err
}

func (n *NopEngine) Calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.calls...)
}

// Emit injects an engine notification as if it came from a real engine.
func (n *NopEngine) Emit(ev EngineEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.events <- ev
}

// SetTimes sets what Position and Duration report.
func (n *NopEngine) SetTimes(position, duration float64, hasDuration bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.position = position
	n.duration = duration
	n.hasDur = hasDuration
}

func (n *NopEngine) URL() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.url
}

func (n *NopEngine) Volume() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.volume
}

func (n *NopEngine) Muted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.muted
}

func (n *NopEngine) record(method string) error {
	n.calls = append(n.calls, method)
	if n.closed {
		return ErrEngineUnavailable
	}
	return n.failures[method]
}

func (n *NopEngine) Start(_ context.Context, url string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.record("Start"); err != nil {
		return err
	}
	n.url = url
	return nil
}

func (n *NopEngine) Pause() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.record("Pause")
}

func (n *NopEngine) Resume() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.record("Resume")
}

func (n *NopEngine) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.record("Stop")
}

func (n *NopEngine) SetVolume(volume int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.record("SetVolume"); err != nil {
		return err
	}
	n.volume = volume
	return nil
}

func (n *NopEngine) SetMute(muted bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.record("SetMute"); err != nil {
		return err
	}
	n.muted = muted
	return nil
}

func (n *NopEngine) Position() (float64, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.position, n.url != ""
}

func (n *NopEngine) Duration() (float64, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.duration, n.hasDur
}

func (n *NopEngine) Events() <-chan EngineEvent {
	return n.events
}

func (n *NopEngine) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, "Close")
	if !n.closed {
		n.closed = true
		close(n.events)
	}
	return nil
}

var _ Engine = (*NopEngine)(nil)
