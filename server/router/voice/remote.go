package voice

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/fortifai/assistant/plugin/dialogue"
	"github.com/fortifai/assistant/plugin/speech"
)

// EventFrame is one inbound frame from the browser: a microphone session
// event or a synthesis playback event.
type EventFrame struct {
	// Type is one of: started, result, error, ended, speech_started,
	// speech_ended, speech_error.
	Type       string `json:"type"`
	Transcript string `json:"transcript,omitempty"`
	// Error is one of: permission-denied, no-speech-timeout, aborted, other.
	Error  string `json:"error,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// DirectiveFrame is one outbound frame: an instruction for the browser.
type DirectiveFrame struct {
	// Type is one of: ready, start_mic, stop_mic, speak, cancel_speech,
	// navigate, show_help, alert.
	Type       string  `json:"type"`
	SessionID  string  `json:"sessionId,omitempty"`
	Text       string  `json:"text,omitempty"`
	Rate       float64 `json:"rate,omitempty"`
	Pitch      float64 `json:"pitch,omitempty"`
	Volume     float64 `json:"volume,omitempty"`
	Target     string  `json:"target,omitempty"`
	Transcript string  `json:"transcript,omitempty"`
	Message    string  `json:"message,omitempty"`
}

// remoteConn multiplexes one websocket connection into the coordinator's
// capabilities: the microphone session and the synthesizer live in the
// browser, and every call turns into a directive frame.
type remoteConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	sessionEvents chan speech.Event
	synthEvents   chan speech.SynthEvent
}

func newRemoteConn(conn *websocket.Conn) *remoteConn {
	return &remoteConn{
		conn:          conn,
		sessionEvents: make(chan speech.Event, 16),
		synthEvents:   make(chan speech.SynthEvent, 16),
	}
}

func (r *remoteConn) write(frame DirectiveFrame) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	return r.conn.WriteJSON(frame)
}

// dispatch routes one inbound frame onto the matching event channel.
// Unknown frame types are dropped so protocol additions stay non-breaking.
func (r *remoteConn) dispatch(frame EventFrame) {
	switch frame.Type {
	case "started":
		r.sessionEvents <- speech.Event{Kind: speech.EventStarted}
	case "result":
		r.sessionEvents <- speech.Event{Kind: speech.EventResult, Transcript: frame.Transcript}
	case "error":
		r.sessionEvents <- speech.Event{
			Kind:   speech.EventError,
			Err:    errorKind(frame.Error),
			Reason: frame.Reason,
		}
	case "ended":
		r.sessionEvents <- speech.Event{Kind: speech.EventEnded}
	case "speech_started":
		r.synthEvents <- speech.SynthEvent{Kind: speech.SynthStarted}
	case "speech_ended":
		r.synthEvents <- speech.SynthEvent{Kind: speech.SynthEnded}
	case "speech_error":
		r.synthEvents <- speech.SynthEvent{Kind: speech.SynthError, Err: errorKind(frame.Error)}
	}
}

// closeStreams ends both event channels, releasing the coordinator's Run loop.
func (r *remoteConn) closeStreams() {
	close(r.sessionEvents)
	close(r.synthEvents)
}

func errorKind(s string) speech.ErrorKind {
	switch speech.ErrorKind(s) {
	case speech.ErrPermissionDenied, speech.ErrNoSpeechTimeout, speech.ErrAborted:
		return speech.ErrorKind(s)
	}
	return speech.ErrOther
}

// remoteSession is the browser microphone seen through the websocket.
type remoteSession struct {
	conn *remoteConn
}

func (s *remoteSession) Start() error {
	return s.conn.write(DirectiveFrame{Type: "start_mic"})
}

func (s *remoteSession) Stop() {
	_ = s.conn.write(DirectiveFrame{Type: "stop_mic"})
}

func (s *remoteSession) Events() <-chan speech.Event {
	return s.conn.sessionEvents
}

var _ speech.Session = (*remoteSession)(nil)

// remoteSynth is the browser speech synthesis seen through the websocket.
type remoteSynth struct {
	conn *remoteConn
}

func (s *remoteSynth) Speak(text string, opts speech.Options) error {
	return s.conn.write(DirectiveFrame{
		Type:   "speak",
		Text:   text,
		Rate:   opts.Rate,
		Pitch:  opts.Pitch,
		Volume: opts.Volume,
	})
}

func (s *remoteSynth) Cancel() {
	_ = s.conn.write(DirectiveFrame{Type: "cancel_speech"})
}

func (s *remoteSynth) Events() <-chan speech.SynthEvent {
	return s.conn.synthEvents
}

var _ speech.Synthesizer = (*remoteSynth)(nil)

// remoteActions surfaces coordinator side effects to the browser.
type remoteActions struct {
	conn *remoteConn
}

func (a *remoteActions) Navigate(target string) {
	_ = a.conn.write(DirectiveFrame{Type: "navigate", Target: target})
}

func (a *remoteActions) ShowHelp(transcript string) {
	_ = a.conn.write(DirectiveFrame{
		Type:       "show_help",
		Transcript: transcript,
		Message:    dialogue.HelpMessage(transcript),
	})
}

func (a *remoteActions) Alert(message string) {
	_ = a.conn.write(DirectiveFrame{Type: "alert", Message: message})
}

var _ dialogue.Actions = (*remoteActions)(nil)
