// Package dialogue implements the voice dialogue coordinator: it owns the
// microphone lifecycle, classifies recognized utterances into intents, routes
// them to actions, and manages interruption and auto-restart between
// listening and speaking.
package dialogue

import (
	"fmt"
	"strings"
)

// IntentKind tags the classified purpose of an utterance.
type IntentKind string

const (
	// IntentMicControl turns the microphone on or off. Consumes the
	// utterance; never forwarded as chat content.
	IntentMicControl IntentKind = "microphone-control"
	// IntentCreateReminder forwards the utterance to the chat endpoint for
	// reminder extraction; the structured result is spoken back.
	IntentCreateReminder IntentKind = "create-reminder"
	// IntentCreateCalendarEvent forwards the utterance for calendar event
	// creation; the response is spoken back.
	IntentCreateCalendarEvent IntentKind = "create-calendar-event"
	// IntentNavigate switches the active view, silently.
	IntentNavigate IntentKind = "navigate"
	// IntentUnrecognized matched no command class.
	IntentUnrecognized IntentKind = "unrecognized"
)

// Navigation targets.
const (
	TargetReminders      = "reminders"
	TargetChat           = "chat"
	TargetCalendar       = "calendar"
	TargetDailyAssistant = "daily-assistant"
)

// Intent is the classified result for one utterance.
type Intent struct {
	Kind   IntentKind
	Target string // navigation target; empty for an unresolved compound phrase
	MicOn  bool   // for IntentMicControl
	Text   string // the original transcript
}

// KeepsListening reports whether this intent class keeps the microphone
// session alive after it ends (the hands-free behavior).
func (i Intent) KeepsListening() bool {
	switch i.Kind {
	case IntentNavigate, IntentCreateReminder, IntentCreateCalendarEvent, IntentMicControl:
		return true
	}
	return false
}

var (
	micOnPhrases  = []string{"microphone on", "mic on", "start microphone"}
	micOffPhrases = []string{"microphone off", "mic off", "stop microphone"}

	reminderCreatePhrases = []string{"remind me", "add reminder", "create reminder", "reminder"}
	calendarCreatePhrases = []string{"add event", "schedule event", "add to calendar"}

	compoundNavPhrases = []string{"go to", "switch to", "change to"}
)

// navTargets lists navigation keyword sets in priority order.
var navTargets = []struct {
	target   string
	keywords []string
}{
	{TargetReminders, []string{"reminder", "reminders", "todo", "to-do", "to do"}},
	{TargetChat, []string{"chat", "conversation", "talk"}},
	{TargetCalendar, []string{"calendar", "schedule"}},
	{TargetDailyAssistant, []string{"daily", "assistant", "home"}},
}

// Classify maps a transcript to an intent. Matching is case-insensitive
// substring matching; the first matching class wins, in this order:
// microphone control, reminder creation, calendar creation, bare navigation
// keywords, compound navigation phrases, unrecognized.
func Classify(transcript string) Intent {
	lower := strings.ToLower(transcript)

	if containsAny(lower, micOnPhrases) {
		return Intent{Kind: IntentMicControl, MicOn: true, Text: transcript}
	}
	if containsAny(lower, micOffPhrases) {
		return Intent{Kind: IntentMicControl, MicOn: false, Text: transcript}
	}

	if containsAny(lower, reminderCreatePhrases) {
		return Intent{Kind: IntentCreateReminder, Text: transcript}
	}
	if containsAny(lower, calendarCreatePhrases) {
		return Intent{Kind: IntentCreateCalendarEvent, Text: transcript}
	}

	for _, nav := range navTargets {
		if containsAny(lower, nav.keywords) {
			return Intent{Kind: IntentNavigate, Target: nav.target, Text: transcript}
		}
	}

	// A compound phrase whose nested target resolved was already caught by
	// the bare keyword pass above. One that did not resolve is still
	// recorded as navigation, so the microphone stays open, but no tab
	// change occurs.
	if containsAny(lower, compoundNavPhrases) {
		return Intent{Kind: IntentNavigate, Text: transcript}
	}

	return Intent{Kind: IntentUnrecognized, Text: transcript}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// HelpMessage is the guidance surfaced for an unrecognized command.
func HelpMessage(transcript string) string {
	return fmt.Sprintf("Command not recognized: %q. Try saying \"remind me to...\", "+
		"\"go to reminders\", \"switch to chat\", \"go to calendar\", or \"open daily assistant\".",
		transcript)
}
