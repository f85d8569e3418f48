package speech

import (
	"sync"
	"time"
)

// DefaultNoSpeechTimeout is how long a capture session may stay open without
// producing a result before it is force-stopped.
const DefaultNoSpeechTimeout = 30 * time.Second

// WatchedSession wraps a Session with a no-speech watchdog: if no result
// arrives within the timeout of Start, the session is force-stopped so an open
// microphone cannot consume resources indefinitely. The watchdog is disarmed
// as soon as a result arrives or the session ends, so a stale force-stop can
// never fire after the session already closed naturally.
type WatchedSession struct {
	inner   Session
	timeout time.Duration
	out     chan Event

	mu    sync.Mutex
	timer *time.Timer

	// afterFunc is injectable for tests.
	afterFunc func(time.Duration, func()) *time.Timer
}

// NewWatchedSession wraps inner with a no-speech watchdog. A timeout of zero
// uses DefaultNoSpeechTimeout.
func NewWatchedSession(inner Session, timeout time.Duration) *WatchedSession {
	if timeout <= 0 {
		timeout = DefaultNoSpeechTimeout
	}
	w := &WatchedSession{
		inner:     inner,
		timeout:   timeout,
		out:       make(chan Event, 8),
		afterFunc: time.AfterFunc,
	}
	go w.forward()
	return w
}

// Start arms the watchdog and starts the underlying session.
func (w *WatchedSession) Start() error {
	if err := w.inner.Start(); err != nil {
		return err
	}
	w.arm()
	return nil
}

// Stop disarms the watchdog and stops the underlying session.
func (w *WatchedSession) Stop() {
	w.disarm()
	w.inner.Stop()
}

// Events returns the forwarded event stream.
func (w *WatchedSession) Events() <-chan Event {
	return w.out
}

func (w *WatchedSession) forward() {
	for ev := range w.inner.Events() {
		switch ev.Kind {
		case EventResult, EventEnded, EventError:
			w.disarm()
		}
		w.out <- ev
	}
	close(w.out)
}

func (w *WatchedSession) arm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = w.afterFunc(w.timeout, w.fire)
}

func (w *WatchedSession) disarm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// fire force-stops a session that produced no speech within the timeout.
func (w *WatchedSession) fire() {
	w.mu.Lock()
	armed := w.timer != nil
	w.timer = nil
	w.mu.Unlock()
	if !armed {
		return
	}
	w.inner.Stop()
}

var _ Session = (*WatchedSession)(nil)
