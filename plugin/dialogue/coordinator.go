package dialogue

import (
	"context"
	"log/slog"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/fortifai/assistant/internal/observability"
	"github.com/fortifai/assistant/plugin/speech"
)

// State of the coordinator. Listening and Speaking are mutually exclusive:
// entering one first force-exits the other.
type State string

const (
	StateIdle           State = "idle"
	StateListening      State = "listening"
	StateSpeaking       State = "speaking"
	StateRestartPending State = "restart-pending"
)

// Mode selects which side of the assistant this coordinator serves. A single
// coordinator instance owns the one microphone session; the mode decides what
// happens to utterances that match no command class.
type Mode string

const (
	// ModeNavigation surfaces help for unrecognized utterances.
	ModeNavigation Mode = "navigation"
	// ModeChat forwards unrecognized utterances as conversation.
	ModeChat Mode = "chat"
)

// DefaultRestartDelay is the settle delay before the microphone restarts
// after a command or after synthesis completes.
const DefaultRestartDelay = 500 * time.Millisecond

// ChatFunc forwards a transcript to the chat endpoint and returns the reply
// to speak back.
type ChatFunc func(ctx context.Context, text string) (string, error)

// Actions receives the coordinator's side effects.
type Actions interface {
	// Navigate switches the active view. Applied silently.
	Navigate(target string)
	// ShowHelp surfaces the unrecognized transcript with example commands.
	ShowHelp(transcript string)
	// Alert surfaces a user-visible error message.
	Alert(message string)
}

// Config assembles a coordinator.
type Config struct {
	Mode    Mode
	Session speech.Session
	Synth   speech.Synthesizer
	Actions Actions
	Chat    ChatFunc
	// RestartDelay defaults to DefaultRestartDelay when zero.
	RestartDelay time.Duration
	Logger       *slog.Logger
}

// Coordinator owns the dialogue state machine. All events are handled on a
// single goroutine (Run); the manual-stop flag and timers are fields here so
// the machine is fully inspectable without a live microphone.
type Coordinator struct {
	mode         Mode
	session      speech.Session
	synth        speech.Synthesizer
	actions      Actions
	chat         ChatFunc
	restartDelay time.Duration
	log          *observability.SessionContext

	// schedule is injectable for tests.
	schedule func(time.Duration, func())

	mu            sync.Mutex
	state         State
	manualStop    bool // one-shot, consumed by the next Ended
	keepAlive     bool // last intent class keeps the mic alive
	pendingSpeech bool // a reply has been queued for synthesis
}

// NewCoordinator creates a coordinator in the Idle state.
func NewCoordinator(cfg Config) *Coordinator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	delay := cfg.RestartDelay
	if delay <= 0 {
		delay = DefaultRestartDelay
	}
	return &Coordinator{
		mode:         cfg.Mode,
		session:      cfg.Session,
		synth:        cfg.Synth,
		actions:      cfg.Actions,
		chat:         cfg.Chat,
		restartDelay: delay,
		log:          observability.NewSessionContext(logger, string(cfg.Mode)),
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		state: StateIdle,
	}
}

// State returns the current dialogue state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SessionID returns the observability id for this coordinator's session.
func (c *Coordinator) SessionID() string {
	return c.log.SessionID
}

// StartListening begins a capture session on explicit user request.
func (c *Coordinator) StartListening() error {
	c.mu.Lock()
	if c.state == StateListening {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.session.Start(); err != nil {
		c.log.Error("failed to start capture session", err)
		return err
	}
	return nil
}

// StopListening stops the capture session on explicit user request. The
// manual-stop flag suppresses the auto-restart the next Ended would
// otherwise trigger, and is cleared when consumed.
func (c *Coordinator) StopListening() {
	c.mu.Lock()
	c.manualStop = true
	c.state = StateIdle
	c.mu.Unlock()
	c.session.Stop()
}

// Run dispatches session and synthesis events until ctx is done or both
// event streams close. All event handling is serialized here.
func (c *Coordinator) Run(ctx context.Context) {
	sessionEvents := c.session.Events()
	synthEvents := c.synth.Events()
	for sessionEvents != nil || synthEvents != nil {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sessionEvents:
			if !ok {
				sessionEvents = nil
				continue
			}
			c.HandleSessionEvent(ctx, ev)
		case ev, ok := <-synthEvents:
			if !ok {
				synthEvents = nil
				continue
			}
			c.HandleSynthEvent(ev)
		}
	}
}

// HandleSessionEvent processes one microphone session event.
func (c *Coordinator) HandleSessionEvent(ctx context.Context, ev speech.Event) {
	switch ev.Kind {
	case speech.EventStarted:
		c.enterListening()
	case speech.EventResult:
		c.handleResult(ctx, ev.Transcript)
	case speech.EventError:
		c.handleError(ev)
	case speech.EventEnded:
		c.handleEnded()
	}
}

// HandleSynthEvent processes one synthesis playback event.
func (c *Coordinator) HandleSynthEvent(ev speech.SynthEvent) {
	switch ev.Kind {
	case speech.SynthStarted:
		c.enterSpeaking()
	case speech.SynthEnded:
		c.handleSpeechEnded()
	case speech.SynthError:
		c.mu.Lock()
		c.pendingSpeech = false
		if c.state == StateSpeaking {
			c.state = StateIdle
		}
		c.mu.Unlock()
		c.log.Warn("synthesis error", slog.String("kind", string(ev.Err)))
	}
}

// enterListening transitions to Listening, force-exiting Speaking first.
func (c *Coordinator) enterListening() {
	c.mu.Lock()
	wasSpeaking := c.state == StateSpeaking
	c.state = StateListening
	c.mu.Unlock()
	if wasSpeaking {
		c.synth.Cancel()
	}
	c.log.Debug("listening", slog.String(observability.LogFieldState, string(StateListening)))
}

// enterSpeaking transitions to Speaking, force-exiting Listening first.
func (c *Coordinator) enterSpeaking() {
	c.mu.Lock()
	wasListening := c.state == StateListening
	c.state = StateSpeaking
	c.pendingSpeech = false
	c.mu.Unlock()
	if wasListening {
		c.session.Stop()
	}
	c.log.Debug("speaking", slog.String(observability.LogFieldState, string(StateSpeaking)))
}

// handleResult classifies a recognized transcript and performs its action.
// Side effects are strictly ordered: classify, act, decide continuation,
// report. An action is performed at most once per transcript.
func (c *Coordinator) handleResult(ctx context.Context, transcript string) {
	c.mu.Lock()
	interrupting := c.state == StateSpeaking
	c.mu.Unlock()

	// A result arriving while speaking is a stop-signal, not content:
	// cancel synthesis and discard the transcript.
	if interrupting {
		c.synth.Cancel()
		c.mu.Lock()
		c.state = StateListening
		c.keepAlive = false
		c.mu.Unlock()
		c.log.Debug("synthesis interrupted by speech")
		return
	}

	intent := Classify(transcript)
	c.log.Info("utterance classified",
		slog.String(observability.LogFieldIntent, string(intent.Kind)),
		slog.Int(observability.LogFieldTranscriptLen, len(transcript)))

	c.mu.Lock()
	c.keepAlive = intent.KeepsListening()
	c.mu.Unlock()

	switch intent.Kind {
	case IntentMicControl:
		if !intent.MicOn {
			c.StopListening()
		}
		// "microphone on" while already listening needs no action; the
		// keep-alive continuation re-starts the session.

	case IntentCreateReminder:
		reply, err := c.chat(ctx, transcript)
		if err != nil {
			c.log.Error("reminder creation failed", err)
			c.actions.Alert("Failed to create reminder. Please try again.")
			return
		}
		c.speak(reply)

	case IntentCreateCalendarEvent:
		reply, err := c.chat(ctx, transcript)
		if err != nil {
			c.log.Error("calendar event creation failed", err)
			c.actions.Alert("Failed to create calendar event. Please try again.")
			return
		}
		c.speak(reply)

	case IntentNavigate:
		if intent.Target != "" {
			c.actions.Navigate(intent.Target)
		}

	case IntentUnrecognized:
		if c.mode == ModeChat {
			reply, err := c.chat(ctx, capitalizeFirst(transcript))
			if err != nil {
				c.log.Error("chat forward failed", err)
				c.actions.Alert("Sorry, I encountered an error. Please try again.")
				return
			}
			c.speak(reply)
			return
		}
		c.actions.ShowHelp(transcript)
	}
}

// handleError maps recognition failures onto the error taxonomy:
// permission-denied is terminal and user-visible; no-speech-timeout and
// aborted are expected conditions handled silently.
func (c *Coordinator) handleError(ev speech.Event) {
	c.mu.Lock()
	c.state = StateIdle
	c.keepAlive = false
	c.mu.Unlock()

	switch ev.Err {
	case speech.ErrPermissionDenied:
		c.log.Warn("microphone permission denied")
		c.actions.Alert("Microphone access denied. Please allow microphone access and try again.")
	case speech.ErrNoSpeechTimeout, speech.ErrAborted:
		c.log.Debug("capture ended without speech", slog.String("kind", string(ev.Err)))
	default:
		c.log.Warn("capture error",
			slog.String("kind", string(ev.Err)), slog.String("reason", ev.Reason))
	}
}

// handleEnded decides the continuation when a capture session closes:
// manual stop wins, then a command intent restarts the mic after the settle
// delay, then a queued reply resolves into Speaking, otherwise Idle.
func (c *Coordinator) handleEnded() {
	c.mu.Lock()
	if c.manualStop {
		c.manualStop = false
		c.keepAlive = false
		c.state = StateIdle
		c.mu.Unlock()
		c.log.Debug("manually stopped, not restarting")
		return
	}

	keepAlive := c.keepAlive
	c.keepAlive = false

	if c.pendingSpeech || c.state == StateSpeaking {
		// A reply is queued or playing: the restart decision belongs to
		// the synthesis-ended handler, never racing the playback.
		if c.state != StateSpeaking {
			c.state = StateIdle
		}
		c.mu.Unlock()
		return
	}

	if keepAlive {
		c.state = StateRestartPending
		c.mu.Unlock()
		c.schedule(c.restartDelay, c.restartListening)
		return
	}

	c.state = StateIdle
	c.mu.Unlock()
}

// handleSpeechEnded schedules the microphone restart after the settle delay,
// giving the hands-free back-and-forth.
func (c *Coordinator) handleSpeechEnded() {
	c.mu.Lock()
	c.pendingSpeech = false
	if c.state == StateSpeaking || c.state == StateIdle {
		c.state = StateRestartPending
	}
	c.mu.Unlock()
	c.schedule(c.restartDelay, c.restartListening)
}

// restartListening re-starts the capture session unless the coordinator has
// moved on (already listening or speaking again, or manually stopped).
func (c *Coordinator) restartListening() {
	c.mu.Lock()
	if c.state == StateListening || c.state == StateSpeaking || c.manualStop {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if err := c.session.Start(); err != nil {
		c.log.Error("failed to restart capture session", err)
		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()
	}
}

// speak queues a reply for synthesis.
func (c *Coordinator) speak(text string) {
	c.mu.Lock()
	c.pendingSpeech = true
	c.mu.Unlock()
	if err := c.synth.Speak(text, speech.DefaultOptions()); err != nil {
		c.mu.Lock()
		c.pendingSpeech = false
		c.mu.Unlock()
		c.log.Error("synthesis failed", err)
	}
}

// capitalizeFirst uppercases the first letter of a forwarded transcript.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
