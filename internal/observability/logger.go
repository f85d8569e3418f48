package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// LogFieldSessionID is the field name for voice session ID.
	LogFieldSessionID = "session_id"
	// LogFieldMode is the field name for coordinator mode.
	LogFieldMode = "mode"
	// LogFieldState is the field name for dialogue state.
	LogFieldState = "state"
	// LogFieldIntent is the field name for classified intent.
	LogFieldIntent = "intent"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
	// LogFieldTranscriptLen is the field name for transcript length.
	LogFieldTranscriptLen = "transcript_length"
	// LogFieldErrorCode is the field name for error code.
	LogFieldErrorCode = "error_code"
)

// SessionContext represents the context for a single voice session with structured logging.
type SessionContext struct {
	SessionID string
	Mode      string
	StartTime time.Time
	Logger    *slog.Logger
}

// NewSessionContext creates a new session context with a generated session ID.
func NewSessionContext(logger *slog.Logger, mode string) *SessionContext {
	return &SessionContext{
		SessionID: generateSessionID(),
		Mode:      mode,
		StartTime: time.Now(),
		Logger:    logger,
	}
}

// NewSessionContextWithID creates a new session context with a specific session ID.
func NewSessionContextWithID(logger *slog.Logger, sessionID, mode string) *SessionContext {
	return &SessionContext{
		SessionID: sessionID,
		Mode:      mode,
		StartTime: time.Now(),
		Logger:    logger,
	}
}

// Info logs an info message.
func (s *SessionContext) Info(msg string, attrs ...slog.Attr) {
	combined := s.baseAttrsAppended(attrs...)
	s.Logger.LogAttrs(context.Background(), slog.LevelInfo, msg, combined...)
}

// Debug logs a debug message.
func (s *SessionContext) Debug(msg string, attrs ...slog.Attr) {
	combined := s.baseAttrsAppended(attrs...)
	s.Logger.LogAttrs(context.Background(), slog.LevelDebug, msg, combined...)
}

// Warn logs a warning message.
func (s *SessionContext) Warn(msg string, attrs ...slog.Attr) {
	combined := s.baseAttrsAppended(attrs...)
	s.Logger.LogAttrs(context.Background(), slog.LevelWarn, msg, combined...)
}

// Error logs an error message with the error.
func (s *SessionContext) Error(msg string, err error, attrs ...slog.Attr) {
	allAttrs := append(attrs, slog.String("error", err.Error()))
	combined := s.baseAttrsAppended(allAttrs...)
	s.Logger.LogAttrs(context.Background(), slog.LevelError, msg, combined...)
}

// Duration returns the elapsed time since the session started.
func (s *SessionContext) Duration() time.Duration {
	return time.Since(s.StartTime)
}

// DurationMs returns the elapsed time in milliseconds.
func (s *SessionContext) DurationMs() int64 {
	return s.Duration().Milliseconds()
}

func (s *SessionContext) baseAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String(LogFieldSessionID, s.SessionID),
		slog.String(LogFieldMode, s.Mode),
	}
}

func (s *SessionContext) baseAttrsAppended(attrs ...slog.Attr) []slog.Attr {
	base := s.baseAttrs()
	return append(base, attrs...)
}

// generateSessionID generates a unique session ID using full UUID.
func generateSessionID() string {
	return uuid.New().String()
}

type ctxKey struct{}

// WithSessionContext adds the session context to the context.
func WithSessionContext(ctx context.Context, sessCtx *SessionContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, sessCtx)
}

// FromContext extracts the session context from the context.
func FromContext(ctx context.Context) (*SessionContext, bool) {
	sessCtx, ok := ctx.Value(ctxKey{}).(*SessionContext)
	return sessCtx, ok
}
