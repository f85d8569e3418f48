// Package extract parses free-text utterances into structured reminder drafts.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Patterns for field extraction
var (
	// titlePattern captures the task after "remind me to" up to the first
	// " for"/" at"/" on" or end of string.
	titlePattern = regexp.MustCompile(`(?i)remind me to (.+?)(?:\s+for|\s+at|\s+on|$)`)

	// numericTimePattern matches times like "3pm", "15:30", "12am".
	numericTimePattern = regexp.MustCompile(`(?i)(\d{1,2}):?(\d{0,2})\s*(am|pm)?`)
)

// titleLexicon maps keyword sets to canonical task titles, checked in order.
var titleLexicon = []struct {
	keywords []string
	title    string
}{
	{[]string{"groceries", "grocery"}, "Get groceries"},
	{[]string{"medication", "medicine"}, "Take medication"},
	{[]string{"doctor", "appointment"}, "Doctor appointment"},
}

// periodTimes maps time-of-day keywords to canonical 24h times, checked in order.
var periodTimes = []struct {
	keyword string
	value   string
}{
	{"noon", "12:00"},
	{"12:00", "12:00"},
	{"morning", "09:00"},
	{"afternoon", "14:00"},
	{"evening", "18:00"},
}

var weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// Human-readable field names reported back to the user.
const (
	FieldTitle = "task/title"
	FieldDate  = "date"
	FieldTime  = "time"
)

// Draft is a fully extracted reminder candidate. It is never persisted directly;
// the caller either promotes it to a stored reminder or discards it.
type Draft struct {
	Title       string
	Date        string // ISO date, YYYY-MM-DD
	Time        string // 24h, HH:MM
	Description string
	SourceText  string
}

// MissingFields reports exactly which reminder fields could not be extracted.
type MissingFields struct {
	Fields []string
}

// Prompt returns the user-facing message asking for the missing fields.
func (m *MissingFields) Prompt() string {
	return fmt.Sprintf(
		"I'd be happy to create a reminder for you! However, I need you to specify the %s. "+
			"Please tell me what you'd like to be reminded about, when (date), and what time.",
		strings.Join(m.Fields, ", "))
}

// HasReminderIntent reports whether the utterance is reminder-flavored.
// Callers classify intent first; Extract assumes this returned true.
func HasReminderIntent(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "reminder") || strings.Contains(lower, "remind me")
}

// Extractor parses reminder fields out of natural language utterances.
type Extractor struct {
	now func() time.Time
}

// New creates an extractor using the wall clock.
func New() *Extractor {
	return &Extractor{now: time.Now}
}

// NewWithClock creates an extractor with an injected clock, for tests.
func NewWithClock(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

// Extract parses an utterance into a complete draft, or reports the missing
// fields. Exactly one of the return values is non-nil. Pure function of the
// input string and the current date.
func (e *Extractor) Extract(utterance string) (*Draft, *MissingFields) {
	title := e.extractTitle(utterance)
	date := e.extractDate(utterance)
	timeOfDay := e.extractTime(utterance)

	var missing []string
	if title == "" {
		missing = append(missing, FieldTitle)
	}
	if date == "" {
		missing = append(missing, FieldDate)
	}
	if timeOfDay == "" {
		missing = append(missing, FieldTime)
	}
	if len(missing) > 0 {
		return nil, &MissingFields{Fields: missing}
	}

	return &Draft{
		Title:       title,
		Date:        date,
		Time:        timeOfDay,
		Description: fmt.Sprintf("Created from chat: %q", utterance),
		SourceText:  utterance,
	}, nil
}

// extractTitle resolves the task title: lexicon match first, then the
// "remind me to {X}" pattern.
func (e *Extractor) extractTitle(utterance string) string {
	lower := strings.ToLower(utterance)

	for _, entry := range titleLexicon {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.title
			}
		}
	}

	if matches := titlePattern.FindStringSubmatch(utterance); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	return ""
}

// extractDate resolves the date as an ISO date string, or "" when no date
// phrase is recognized.
//
// Any weekday mention maps to tomorrow. This mirrors the product's documented
// approximation; it is not next-occurrence-of-weekday arithmetic.
func (e *Extractor) extractDate(utterance string) string {
	lower := strings.ToLower(utterance)
	today := e.now()

	if strings.Contains(lower, "tomorrow") {
		return today.AddDate(0, 0, 1).Format("2006-01-02")
	}
	if strings.Contains(lower, "today") {
		return today.Format("2006-01-02")
	}
	for _, day := range weekdays {
		if strings.Contains(lower, day) {
			return today.AddDate(0, 0, 1).Format("2006-01-02")
		}
	}

	return ""
}

// extractTime resolves the time of day as HH:MM in 24h form, or "" when no
// time phrase is recognized. Period keywords win over numeric patterns.
func (e *Extractor) extractTime(utterance string) string {
	lower := strings.ToLower(utterance)

	for _, period := range periodTimes {
		if strings.Contains(lower, period.keyword) {
			return period.value
		}
	}

	matches := numericTimePattern.FindStringSubmatch(utterance)
	if len(matches) == 0 {
		return ""
	}

	hours, err := strconv.Atoi(matches[1])
	if err != nil || hours > 23 {
		return ""
	}
	minutes := 0
	if matches[2] != "" {
		minutes, err = strconv.Atoi(matches[2])
		if err != nil || minutes > 59 {
			return ""
		}
	}

	switch strings.ToLower(matches[3]) {
	case "pm":
		if hours != 12 {
			hours += 12
		}
	case "am":
		if hours == 12 {
			hours = 0
		}
	}

	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
