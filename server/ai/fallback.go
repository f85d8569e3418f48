package ai

import (
	"context"
	"strings"
)

// FallbackResponder answers with canned responses when no completion provider
// is configured. Matching is keyword-based on the lowercased message; the
// first matching bucket wins.
type FallbackResponder struct{}

// NewFallbackResponder creates the canned responder.
func NewFallbackResponder() *FallbackResponder {
	return &FallbackResponder{}
}

var fallbackBuckets = []struct {
	keywords []string
	response string
}{
	{
		[]string{"hello", "hi"},
		"Hello! I'm your AI assistant. I'm here to help with your daily needs. How can I assist you today?",
	},
	{
		[]string{"medication", "medicine"},
		"I can help you set up medication reminders. Please use the Reminders tab to create a reminder for taking your medications at the right time.",
	},
	{
		[]string{"appointment", "doctor"},
		"I can help you remember appointments. Use the Reminders tab to add your doctor's appointments or other important events.",
	},
	{
		[]string{"technology", "computer"},
		"I'm here to help explain technology in simple terms. Feel free to ask me about using your computer, phone, or other devices.",
	},
	{
		[]string{"health", "wellness"},
		"I can provide general wellness information, but always consult with your healthcare provider for medical advice.",
	},
}

const fallbackDefault = "I'm here to help! I can assist with reminders, explain technology, " +
	"answer general questions, and provide support for daily living. What would you like to know?"

// Complete returns the canned response for the message. History is ignored;
// canned responses are single-turn. It never fails.
func (f *FallbackResponder) Complete(_ context.Context, message string, _ []Message) (string, error) {
	lower := strings.ToLower(message)
	for _, bucket := range fallbackBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(lower, kw) {
				return bucket.response, nil
			}
		}
	}
	return fallbackDefault, nil
}

var _ Completer = (*FallbackResponder)(nil)
