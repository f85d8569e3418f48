// Package server assembles the HTTP server: REST routes, the voice
// websocket bridge, and the middleware stack.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/fortifai/assistant/internal/profile"
	"github.com/fortifai/assistant/plugin/dialogue"
	"github.com/fortifai/assistant/server/ai"
	"github.com/fortifai/assistant/server/middleware"
	"github.com/fortifai/assistant/server/router/apiv1"
	"github.com/fortifai/assistant/server/router/voice"
	"github.com/fortifai/assistant/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.ReminderStore

	echoServer *echo.Echo
	logger     *slog.Logger
}

// NewServer wires the full HTTP surface from the profile.
func NewServer(ctx context.Context, p *profile.Profile, st *store.ReminderStore, logger *slog.Logger) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.DefaultRateLimiter().Middleware())

	var completer ai.Completer
	if p.IsAIEnabled() {
		completer = ai.NewCompletionService(p, logger)
		logger.Info("completion provider configured",
			slog.String("provider", p.AIProvider),
			slog.String("model", p.AIModel))
	} else {
		logger.Info("no completion provider configured, canned responses only")
	}

	apiService := apiv1.NewAPIV1Service(p, st, completer, logger)
	apiService.RegisterRoutes(e)

	chat := dialogue.ChatFunc(func(ctx context.Context, text string) (string, error) {
		reply, _, err := apiService.Respond(ctx, text, nil)
		return reply, err
	})
	bridge := voice.NewBridge(chat, p.VoiceNoSpeechTimeout, p.VoiceRestartDelay, logger)
	bridge.Register(e)

	return &Server{
		Profile:    p,
		Store:      st,
		echoServer: e,
		logger:     logger,
	}, nil
}

// Start begins serving. It blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start(ctx context.Context) error {
	address := s.Profile.ListenAddr()
	s.logger.Info("server started",
		slog.String("address", address),
		slog.String("mode", s.Profile.Mode),
		slog.String("version", s.Profile.Version))
	if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests with a bounded grace period.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shut down server gracefully",
			slog.String("error", err.Error()))
	}
	s.logger.Info("server stopped")
}

// Echo exposes the router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echoServer
}
