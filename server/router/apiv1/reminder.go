package apiv1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	errs "github.com/fortifai/assistant/internal/errors"
	"github.com/fortifai/assistant/store"
)

// CreateReminderRequest is the body of POST /api/reminders.
type CreateReminderRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// UpdateReminderRequest is the body of PUT /api/reminders/:id. Only the
// completion flag is mutable.
type UpdateReminderRequest struct {
	Completed bool `json:"completed"`
}

// CreateReminder stores a reminder created directly from the Reminders tab.
// POST /api/reminders
func (s *APIV1Service) CreateReminder(c echo.Context) error {
	var req CreateReminderRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	reminder, err := s.Store.Create(c.Request().Context(), &store.CreateReminder{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
	})
	if err != nil {
		if errs.IsCode(err, errs.ErrCodeInvalidArgument) {
			return errorJSON(c, http.StatusBadRequest, "Title, time, and date are required")
		}
		s.logger.Error("failed to create reminder", slog.String("error", err.Error()))
		return errorJSON(c, http.StatusInternalServerError, "Failed to create reminder")
	}

	return c.JSON(http.StatusOK, reminder)
}

// ListReminders returns every stored reminder.
// GET /api/reminders
func (s *APIV1Service) ListReminders(c echo.Context) error {
	reminders, err := s.Store.List(c.Request().Context())
	if err != nil {
		s.logger.Error("failed to list reminders", slog.String("error", err.Error()))
		return errorJSON(c, http.StatusInternalServerError, "Failed to list reminders")
	}
	return c.JSON(http.StatusOK, reminders)
}

// UpdateReminder sets the completion flag of one reminder.
// PUT /api/reminders/:id
func (s *APIV1Service) UpdateReminder(c echo.Context) error {
	var req UpdateReminderRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	reminder, err := s.Store.SetCompleted(c.Request().Context(), c.Param("id"), req.Completed)
	if err != nil {
		if errs.IsCode(err, errs.ErrCodeNotFound) {
			return errorJSON(c, http.StatusNotFound, "Reminder not found")
		}
		s.logger.Error("failed to update reminder", slog.String("error", err.Error()))
		return errorJSON(c, http.StatusInternalServerError, "Failed to update reminder")
	}

	return c.JSON(http.StatusOK, reminder)
}

// DeleteReminder removes a reminder. Unknown IDs succeed quietly.
// DELETE /api/reminders/:id
func (s *APIV1Service) DeleteReminder(c echo.Context) error {
	if err := s.Store.Delete(c.Request().Context(), c.Param("id")); err != nil {
		s.logger.Error("failed to delete reminder", slog.String("error", err.Error()))
		return errorJSON(c, http.StatusInternalServerError, "Failed to delete reminder")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Reminder deleted successfully"})
}
