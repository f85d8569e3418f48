package speech

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchedSession_FiresAfterTimeout(t *testing.T) {
	inner := NewScriptedSession().WithEndedOnStop()
	w := NewWatchedSession(inner, time.Minute)

	// Capture the scheduled watchdog instead of waiting a minute.
	var fire func()
	w.afterFunc = func(_ time.Duration, f func()) *time.Timer {
		fire = f
		return time.NewTimer(time.Hour)
	}

	require.NoError(t, w.Start())
	require.NotNil(t, fire)

	fire()

	assert.Equal(t, 1, inner.StopCount())
	ev := <-w.Events()
	assert.Equal(t, EventEnded, ev.Kind)
}

func TestWatchedSession_ResultDisarms(t *testing.T) {
	inner := NewScriptedSession().WithEndedOnStop()
	w := NewWatchedSession(inner, time.Minute)

	var fire func()
	w.afterFunc = func(_ time.Duration, f func()) *time.Timer {
		fire = f
		return time.NewTimer(time.Hour)
	}

	require.NoError(t, w.Start())

	inner.Emit(Event{Kind: EventResult, Transcript: "hello"})
	ev := <-w.Events()
	assert.Equal(t, EventResult, ev.Kind)
	assert.Equal(t, "hello", ev.Transcript)

	// A stale watchdog must not force-stop a session that already produced
	// a result.
	fire()
	assert.Equal(t, 0, inner.StopCount())
}

func TestWatchedSession_StopDisarms(t *testing.T) {
	inner := NewScriptedSession()
	w := NewWatchedSession(inner, time.Minute)

	var fire func()
	w.afterFunc = func(_ time.Duration, f func()) *time.Timer {
		fire = f
		return time.NewTimer(time.Hour)
	}

	require.NoError(t, w.Start())
	w.Stop()
	assert.Equal(t, 1, inner.StopCount())

	fire()
	assert.Equal(t, 1, inner.StopCount())
}

func TestPickVoice(t *testing.T) {
	tests := []struct {
		name     string
		voices   []Voice
		wantName string
	}{
		{
			"prefers neural",
			[]Voice{{Name: "Basic"}, {Name: "Aria Neural"}, {Name: "Google US English"}},
			"Aria Neural",
		},
		{
			"named platform voice second",
			[]Voice{{Name: "Basic"}, {Name: "Google US English"}},
			"Google US English",
		},
		{
			"female flag third",
			[]Voice{{Name: "Basic"}, {Name: "Other", Female: true}},
			"Other",
		},
		{
			"platform default fourth",
			[]Voice{{Name: "Basic"}, {Name: "Fallback", Default: true}},
			"Fallback",
		},
		{
			"first voice as last resort",
			[]Voice{{Name: "Only"}},
			"Only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := PickVoice(tt.voices)
			require.True(t, ok)
			assert.Equal(t, tt.wantName, v.Name)
		})
	}
}

func TestPickVoice_Empty(t *testing.T) {
	_, ok := PickVoice(nil)
	assert.False(t, ok)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 1.3, opts.Rate)
	assert.Equal(t, 1.15, opts.Pitch)
	assert.Equal(t, 0.95, opts.Volume)
}
