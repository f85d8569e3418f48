// Package store holds the reminder storage layer. The backing store is
// in-memory: reminders live for the lifetime of the process and every
// operation is safe for concurrent use.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"

	errs "github.com/fortifai/assistant/internal/errors"
)

// Reminder is one stored reminder. Date and Time stay as the display strings
// the extractor produced ("June 15" / "3:00 PM"); the store never reparses
// them.
type Reminder struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateReminder carries the fields for a new reminder.
type CreateReminder struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// ReminderStore is an in-memory reminder store.
type ReminderStore struct {
	mu        sync.RWMutex
	reminders map[string]*Reminder

	// now is injectable for tests.
	now func() time.Time
}

// NewReminderStore creates an empty reminder store.
func NewReminderStore() *ReminderStore {
	return &ReminderStore{
		reminders: make(map[string]*Reminder),
		now:       time.Now,
	}
}

// Create validates and stores a new reminder, returning the stored copy with
// its generated ID.
func (s *ReminderStore) Create(ctx context.Context, create *CreateReminder) (*Reminder, error) {
	if strings.TrimSpace(create.Title) == "" {
		return nil, errs.InvalidArgument("reminder title is required")
	}
	if strings.TrimSpace(create.Date) == "" {
		return nil, errs.InvalidArgument("reminder date is required")
	}
	if strings.TrimSpace(create.Time) == "" {
		return nil, errs.InvalidArgument("reminder time is required")
	}

	reminder := &Reminder{
		ID:          shortuuid.New(),
		Title:       strings.TrimSpace(create.Title),
		Date:        strings.TrimSpace(create.Date),
		Time:        strings.TrimSpace(create.Time),
		Description: create.Description,
		CreatedAt:   s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders[reminder.ID] = reminder
	return cloned(reminder), nil
}

// Get retrieves a reminder by ID.
func (s *ReminderStore) Get(ctx context.Context, id string) (*Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reminder, ok := s.reminders[id]
	if !ok {
		return nil, errs.NotFound(fmt.Sprintf("reminder %s", id))
	}
	return cloned(reminder), nil
}

// List returns all reminders in creation order, newest last. It always
// returns a non-nil slice so the handler serializes an empty list as [].
func (s *ReminderStore) List(ctx context.Context) ([]*Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		result = append(result, cloned(r))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// SetCompleted updates the completion flag of one reminder.
func (s *ReminderStore) SetCompleted(ctx context.Context, id string, completed bool) (*Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminder, ok := s.reminders[id]
	if !ok {
		return nil, errs.NotFound(fmt.Sprintf("reminder %s", id))
	}
	reminder.Completed = completed
	return cloned(reminder), nil
}

// Delete removes a reminder. Deleting an unknown ID is a no-op: the caller
// asked for the reminder to be gone, and it is.
func (s *ReminderStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reminders, id)
	return nil
}

// Count returns the number of stored reminders.
func (s *ReminderStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reminders)
}

func cloned(r *Reminder) *Reminder {
	c := *r
	return &c
}
