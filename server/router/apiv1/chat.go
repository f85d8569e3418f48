package apiv1

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fortifai/assistant/plugin/extract"
	"github.com/fortifai/assistant/server/ai"
	"github.com/fortifai/assistant/store"
)

// ChatRequest is the body of POST /api/chat. ConversationHistory carries
// prior turns the client chooses to send; the server itself stays stateless.
type ChatRequest struct {
	Message             string       `json:"message"`
	ConversationHistory []ai.Message `json:"conversationHistory"`
}

// ChatResponse is the reply payload. Reminder is set only when the message
// produced a stored reminder.
type ChatResponse struct {
	Response  string          `json:"response"`
	Timestamp time.Time       `json:"timestamp"`
	Reminder  *store.Reminder `json:"reminder"`
}

// Chat answers one user message. Reminder-flavored messages short-circuit
// through the field extractor: a complete draft is stored and confirmed, an
// incomplete one gets a prompt naming the missing fields. Everything else
// goes to the completion provider, with the canned responder as the safety
// net.
// POST /api/chat
func (s *APIV1Service) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Message == "" {
		return errorJSON(c, http.StatusBadRequest, "Message is required")
	}

	reply, reminder, err := s.Respond(c.Request().Context(), req.Message, req.ConversationHistory)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to create reminder")
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Response:  reply,
		Timestamp: time.Now().UTC(),
		Reminder:  reminder,
	})
}

// Respond runs the full chat pipeline for one message and returns the reply,
// plus the reminder when one was created. The voice bridge uses this directly
// so spoken and typed messages behave identically.
func (s *APIV1Service) Respond(ctx context.Context, message string, history []ai.Message) (string, *store.Reminder, error) {
	if extract.HasReminderIntent(message) {
		draft, missing := s.Extractor.Extract(message)
		if missing != nil {
			return missing.Prompt(), nil, nil
		}

		reminder, err := s.Store.Create(ctx, &store.CreateReminder{
			Title:       draft.Title,
			Date:        draft.Date,
			Time:        draft.Time,
			Description: draft.Description,
		})
		if err != nil {
			s.logger.Error("failed to store reminder from chat", slog.String("error", err.Error()))
			return "", nil, err
		}

		s.logger.Info("reminder created from chat",
			slog.String("reminder_id", reminder.ID),
			slog.Int("transcript_length", len(message)))
		return confirmationMessage(reminder), reminder, nil
	}

	return s.complete(ctx, message, history), nil, nil
}

// complete asks the configured provider for a reply, falling back to the
// canned responder when the provider is missing or fails.
func (s *APIV1Service) complete(ctx context.Context, message string, history []ai.Message) string {
	if s.Completer == nil {
		reply, _ := s.Fallback.Complete(ctx, message, nil)
		return reply
	}

	if err := s.chatSemaphore.Acquire(ctx, 1); err != nil {
		reply, _ := s.Fallback.Complete(ctx, message, nil)
		return reply
	}
	defer s.chatSemaphore.Release(1)

	reply, err := s.Completer.Complete(ctx, message, history)
	if err != nil {
		s.logger.Warn("completion failed, using canned response",
			slog.String("error", err.Error()))
		reply, _ = s.Fallback.Complete(ctx, message, nil)
	}
	return reply
}

// confirmationMessage renders the spoken/displayed confirmation for a stored
// reminder, with the date and time in friendly display form.
func confirmationMessage(r *store.Reminder) string {
	return fmt.Sprintf(
		"I've created a reminder for %q on %s at %s. You can see it in the Reminders tab!",
		r.Title, displayDate(r.Date), displayTime(r.Time))
}

// displayDate renders an ISO date as "June 15, 2025". Unparseable values
// pass through unchanged.
func displayDate(iso string) string {
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return d.Format("January 2, 2006")
}

// displayTime renders a 24h HH:MM as "3:00 PM". Unparseable values pass
// through unchanged.
func displayTime(hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("3:04 PM")
}
