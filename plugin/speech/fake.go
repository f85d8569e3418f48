package speech

import (
	"sync"
)

// ScriptedSession is a Session implementation driven by tests: events are
// pushed with Emit and Start/Stop calls are recorded.
type ScriptedSession struct {
	events chan Event

	mu         sync.Mutex
	startCount int
	stopCount  int
	startErr   error
	// emitEndedOnStop makes Stop produce the Ended event a real capture
	// device would deliver.
	emitEndedOnStop bool
}

// NewScriptedSession creates a scripted session for tests.
func NewScriptedSession() *ScriptedSession {
	return &ScriptedSession{
		events: make(chan Event, 32),
	}
}

// WithEndedOnStop makes Stop emit an Ended event, mirroring real devices.
func (s *ScriptedSession) WithEndedOnStop() *ScriptedSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitEndedOnStop = true
	return s
}

// FailStartWith makes subsequent Start calls return err.
func (s *ScriptedSession) FailStartWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startErr = err
}

func (s *ScriptedSession) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startErr != nil {
		return s.startErr
	}
	s.startCount++
	return nil
}

func (s *ScriptedSession) Stop() {
	s.mu.Lock()
	emitEnded := s.emitEndedOnStop
	s.stopCount++
	s.mu.Unlock()
	if emitEnded {
		s.events <- Event{Kind: EventEnded}
	}
}

func (s *ScriptedSession) Events() <-chan Event {
	return s.events
}

// Emit pushes an event as if the capture device produced it.
func (s *ScriptedSession) Emit(ev Event) {
	s.events <- ev
}

// Close closes the event stream.
func (s *ScriptedSession) Close() {
	close(s.events)
}

// StartCount returns how many times Start succeeded.
func (s *ScriptedSession) StartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startCount
}

// StopCount returns how many times Stop was called.
func (s *ScriptedSession) StopCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopCount
}

var _ Session = (*ScriptedSession)(nil)

// SpokenUtterance records one Speak call on a RecordingSynthesizer.
type SpokenUtterance struct {
	Text    string
	Options Options
}

// RecordingSynthesizer is a Synthesizer implementation that records playback
// requests and lets tests emit playback events.
type RecordingSynthesizer struct {
	events chan SynthEvent

	mu          sync.Mutex
	spoken      []SpokenUtterance
	cancelCount int
}

// NewRecordingSynthesizer creates a recording synthesizer for tests.
func NewRecordingSynthesizer() *RecordingSynthesizer {
	return &RecordingSynthesizer{
		events: make(chan SynthEvent, 32),
	}
}

func (r *RecordingSynthesizer) Speak(text string, opts Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spoken = append(r.spoken, SpokenUtterance{Text: text, Options: opts})
	return nil
}

func (r *RecordingSynthesizer) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelCount++
}

func (r *RecordingSynthesizer) Events() <-chan SynthEvent {
	return r.events
}

// Emit pushes a playback event.
func (r *RecordingSynthesizer) Emit(ev SynthEvent) {
	r.events <- ev
}

// Spoken returns the recorded Speak calls.
func (r *RecordingSynthesizer) Spoken() []SpokenUtterance {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SpokenUtterance, len(r.spoken))
	copy(out, r.spoken)
	return out
}

// CancelCount returns how many times Cancel was called.
func (r *RecordingSynthesizer) CancelCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancelCount
}

var _ Synthesizer = (*RecordingSynthesizer)(nil)
