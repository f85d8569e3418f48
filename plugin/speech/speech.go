// Package speech defines the microphone-session and synthesis capabilities the
// dialogue coordinator consumes. Implementations bridge to a real capture
// device (in production, the browser's recognition engine behind a transport);
// the package also ships scripted fakes for driving the coordinator in tests.
package speech

// EventKind identifies microphone session lifecycle events.
type EventKind string

const (
	// EventStarted fires when the capture session becomes active.
	EventStarted EventKind = "started"
	// EventResult carries one finalized transcript.
	EventResult EventKind = "result"
	// EventError carries a recognition failure.
	EventError EventKind = "error"
	// EventEnded fires when the capture session closes, normally or not.
	EventEnded EventKind = "ended"
)

// ErrorKind classifies recognition and synthesis failures.
type ErrorKind string

const (
	// ErrPermissionDenied is terminal for the session: report to the user,
	// never silently retry.
	ErrPermissionDenied ErrorKind = "permission-denied"
	// ErrNoSpeechTimeout is an expected, non-fatal condition.
	ErrNoSpeechTimeout ErrorKind = "no-speech-timeout"
	// ErrAborted is a non-fatal condition caused by a deliberate stop.
	ErrAborted ErrorKind = "aborted"
	// ErrOther carries any other failure, with a reason string.
	ErrOther ErrorKind = "other"
)

// Event is one microphone session event.
type Event struct {
	Kind       EventKind
	Transcript string    // set for EventResult
	Err        ErrorKind // set for EventError
	Reason     string    // detail when Err is ErrOther
}

// Session is a single-utterance microphone capture capability. Each Start
// captures at most one finalized transcript and then auto-ends; the caller
// must Start again to continue listening.
type Session interface {
	Start() error
	Stop()
	Events() <-chan Event
}

// SynthEventKind identifies synthesis playback events.
type SynthEventKind string

const (
	SynthStarted SynthEventKind = "started"
	SynthEnded   SynthEventKind = "ended"
	SynthError   SynthEventKind = "error"
)

// SynthEvent is one synthesis playback event.
type SynthEvent struct {
	Kind SynthEventKind
	Err  ErrorKind
}

// Options controls synthesis playback.
type Options struct {
	Rate   float64
	Pitch  float64
	Volume float64
}

// DefaultOptions returns the playback tuning used for assistant responses.
func DefaultOptions() Options {
	return Options{Rate: 1.3, Pitch: 1.15, Volume: 0.95}
}

// Synthesizer is a speech-synthesis sink. Starting a new Speak implicitly
// cancels any in-flight utterance, letting the cancellation settle before the
// new one is issued, so audio never overlaps.
type Synthesizer interface {
	Speak(text string, opts Options) error
	Cancel()
	Events() <-chan SynthEvent
}
