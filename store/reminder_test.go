package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/fortifai/assistant/internal/errors"
)

func TestReminderStore_CreateAndGet(t *testing.T) {
	s := NewReminderStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &CreateReminder{
		Title:       "Take medication",
		Date:        "June 15",
		Time:        "9:00 AM",
		Description: `Created from chat: "remind me to take medication"`,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.Completed)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestReminderStore_CreateValidation(t *testing.T) {
	s := NewReminderStore()
	ctx := context.Background()

	tests := []struct {
		name   string
		create CreateReminder
	}{
		{"missing title", CreateReminder{Date: "June 15", Time: "3:00 PM"}},
		{"missing date", CreateReminder{Title: "Get groceries", Time: "3:00 PM"}},
		{"missing time", CreateReminder{Title: "Get groceries", Date: "June 15"}},
		{"whitespace title", CreateReminder{Title: "   ", Date: "June 15", Time: "3:00 PM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(ctx, &tt.create)
			require.Error(t, err)
			assert.True(t, errs.IsCode(err, errs.ErrCodeInvalidArgument))
		})
	}
	assert.Equal(t, 0, s.Count())
}

func TestReminderStore_ListOrderedByCreation(t *testing.T) {
	s := NewReminderStore()
	ctx := context.Background()

	clock := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	for _, title := range []string{"first", "second", "third"} {
		_, err := s.Create(ctx, &CreateReminder{Title: title, Date: "June 15", Time: "noon"})
		require.NoError(t, err)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, "second", list[1].Title)
	assert.Equal(t, "third", list[2].Title)
}

func TestReminderStore_ListEmptyIsNonNil(t *testing.T) {
	s := NewReminderStore()
	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestReminderStore_SetCompleted(t *testing.T) {
	s := NewReminderStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &CreateReminder{Title: "Doctor appointment", Date: "June 20", Time: "2:00 PM"})
	require.NoError(t, err)

	updated, err := s.SetCompleted(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	updated, err = s.SetCompleted(ctx, created.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Completed)
}

func TestReminderStore_SetCompletedUnknownID(t *testing.T) {
	s := NewReminderStore()
	_, err := s.SetCompleted(context.Background(), "missing", true)
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeNotFound))
}

func TestReminderStore_DeleteIsIdempotent(t *testing.T) {
	s := NewReminderStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &CreateReminder{Title: "Get groceries", Date: "June 15", Time: "noon"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))
	assert.Equal(t, 0, s.Count())

	// Deleting again, or deleting an unknown ID, succeeds quietly.
	require.NoError(t, s.Delete(ctx, created.ID))
	require.NoError(t, s.Delete(ctx, "never-existed"))
}

func TestReminderStore_ReturnedCopiesAreDetached(t *testing.T) {
	s := NewReminderStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &CreateReminder{Title: "Call daughter", Date: "June 16", Time: "3:00 PM"})
	require.NoError(t, err)

	created.Title = "mutated"
	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Call daughter", got.Title)
}

func TestReminderStore_ConcurrentAccess(t *testing.T) {
	s := NewReminderStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := s.Create(ctx, &CreateReminder{Title: "Take medication", Date: "June 15", Time: "9:00 AM"})
			assert.NoError(t, err)
			_, err = s.SetCompleted(ctx, created.ID, true)
			assert.NoError(t, err)
			_, err = s.List(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, s.Count())
}
