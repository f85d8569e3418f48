// Package apiv1 exposes the assistant's REST surface: chat, reminder CRUD,
// and the health probe. Handlers are stateless between requests; all state
// lives in the reminder store.
package apiv1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"

	"github.com/fortifai/assistant/internal/profile"
	"github.com/fortifai/assistant/plugin/extract"
	"github.com/fortifai/assistant/server/ai"
	"github.com/fortifai/assistant/store"
)

type APIV1Service struct {
	Profile   *profile.Profile
	Store     *store.ReminderStore
	Extractor *extract.Extractor
	// Completer is the configured LLM provider; nil when AI is disabled.
	Completer ai.Completer
	// Fallback answers when Completer is nil or fails.
	Fallback ai.Completer

	// chatSemaphore bounds concurrent completion calls so a burst of chat
	// requests cannot exhaust the provider quota.
	chatSemaphore *semaphore.Weighted
	logger        *slog.Logger
}

// NewAPIV1Service wires the REST service. completer may be nil when no
// provider is configured; every chat request then gets a canned response.
func NewAPIV1Service(p *profile.Profile, st *store.ReminderStore, completer ai.Completer, logger *slog.Logger) *APIV1Service {
	return &APIV1Service{
		Profile:       p,
		Store:         st,
		Extractor:     extract.New(),
		Completer:     completer,
		Fallback:      ai.NewFallbackResponder(),
		chatSemaphore: semaphore.NewWeighted(8),
		logger:        logger,
	}
}

// RegisterRoutes attaches the REST endpoints to the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/chat", s.Chat)
	g.GET("/reminders", s.ListReminders)
	g.POST("/reminders", s.CreateReminder)
	g.PUT("/reminders/:id", s.UpdateReminder)
	g.DELETE("/reminders/:id", s.DeleteReminder)
	g.GET("/health", s.Health)
}

// HealthResponse is the health probe payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health reports liveness.
// GET /api/health
func (s *APIV1Service) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "OK",
		Message: "FORTif.ai Chatbot API is running",
	})
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}
