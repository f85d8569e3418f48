// Package voice bridges the browser's speech capabilities to the dialogue
// coordinator over a websocket. The browser owns the actual microphone and
// synthesis engines; this side owns the state machine, so every client sees
// identical dialogue behavior.
package voice

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/fortifai/assistant/plugin/dialogue"
	"github.com/fortifai/assistant/plugin/speech"
)

// Bridge upgrades /api/voice/events connections and runs one coordinator per
// connection.
type Bridge struct {
	chat            dialogue.ChatFunc
	noSpeechTimeout time.Duration
	restartDelay    time.Duration
	logger          *slog.Logger
	upgrader        websocket.Upgrader
}

// NewBridge creates the voice bridge. chat handles forwarded utterances;
// zero durations fall back to the package defaults.
func NewBridge(chat dialogue.ChatFunc, noSpeechTimeout, restartDelay time.Duration, logger *slog.Logger) *Bridge {
	return &Bridge{
		chat:            chat,
		noSpeechTimeout: noSpeechTimeout,
		restartDelay:    restartDelay,
		logger:          logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Register attaches the websocket endpoint to the echo instance.
func (b *Bridge) Register(e *echo.Echo) {
	e.GET("/api/voice/events", b.Handle)
}

// Handle runs one voice session: upgrade, assemble the coordinator around
// the remote speech capabilities, then pump frames until the connection
// closes. The mode query parameter selects chat or navigation behavior.
func (b *Bridge) Handle(c echo.Context) error {
	conn, err := b.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	mode := dialogue.ModeNavigation
	if c.QueryParam("mode") == string(dialogue.ModeChat) {
		mode = dialogue.ModeChat
	}

	remote := newRemoteConn(conn)
	session := speech.NewWatchedSession(&remoteSession{conn: remote}, b.noSpeechTimeout)

	coord := dialogue.NewCoordinator(dialogue.Config{
		Mode:         mode,
		Session:      session,
		Synth:        &remoteSynth{conn: remote},
		Actions:      &remoteActions{conn: remote},
		Chat:         b.chat,
		RestartDelay: b.restartDelay,
		Logger:       b.logger,
	})

	if err := remote.write(DirectiveFrame{Type: "ready", SessionID: coord.SessionID()}); err != nil {
		return err
	}

	b.logger.Info("voice session opened",
		slog.String("session_id", coord.SessionID()),
		slog.String("mode", string(mode)))

	ctx := c.Request().Context()
	done := make(chan struct{})
	go func() {
		coord.Run(ctx)
		close(done)
	}()

	for {
		var frame EventFrame
		if err := conn.ReadJSON(&frame); err != nil {
			break
		}
		remote.dispatch(frame)
	}

	remote.closeStreams()
	<-done

	b.logger.Info("voice session closed",
		slog.String("session_id", coord.SessionID()),
		slog.String("state", string(coord.State())))
	return nil
}
