// Package ai provides the chat completion service behind /api/chat. The
// provider is any OpenAI-compatible endpoint; when no provider is configured
// the canned fallback responder answers instead.
package ai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	errs "github.com/fortifai/assistant/internal/errors"
	"github.com/fortifai/assistant/internal/profile"
)

// systemPrompt shapes replies for an elderly audience: short, plain, and
// respectful.
const systemPrompt = `You are a helpful AI assistant designed specifically for senior citizens. Your responses should be:

1. Clear and simple language
2. Professional and respectful (never use terms like "sweetie", "dear", or "honey")
3. Avoid complex medical advice
4. Focus on daily living assistance
5. Be warm but professional
6. Keep responses SHORT and concise - maximum 2 sentences
7. Ask only ONE question at a time, never multiple questions
8. Get straight to the point

You can help with:
- Daily reminders and scheduling
- Simple explanations of technology
- General questions about health and wellness
- Memory assistance
- Social connection topics
- Basic problem-solving

Always maintain a respectful, professional tone. Keep responses brief and focused.`

// Message is one prior conversation turn supplied by the client.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces one assistant reply for one user message, optionally
// conditioned on prior turns.
type Completer interface {
	Complete(ctx context.Context, message string, history []Message) (string, error)
}

// completionClient is the slice of the openai client the service uses,
// extracted so tests can substitute a scripted transport.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// CompletionService calls an OpenAI-compatible chat completion endpoint with
// bounded retries.
type CompletionService struct {
	client      completionClient
	model       string
	maxTokens   int
	temperature float32
	logger      *slog.Logger

	maxRetries int
	retryDelay time.Duration
	// sleep is injectable for tests.
	sleep func(time.Duration)
}

// NewCompletionService builds a completion service from the profile.
func NewCompletionService(p *profile.Profile, logger *slog.Logger) *CompletionService {
	clientConfig := openai.DefaultConfig(p.AIAPIKey)
	if p.AIBaseURL != "" {
		clientConfig.BaseURL = p.AIBaseURL
	}

	return &CompletionService{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       p.AIModel,
		maxTokens:   p.AIMaxTokens,
		temperature: p.AITemperature,
		logger:      logger,
		maxRetries:  2,
		retryDelay:  500 * time.Millisecond,
		sleep:       time.Sleep,
	}
}

// Complete sends the message to the model and returns the reply text.
// Transient failures are retried with doubling delay; a context cancellation
// stops the retry loop immediately.
func (s *CompletionService) Complete(ctx context.Context, message string, history []Message) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleSystem, Content: systemPrompt,
	})
	for _, turn := range history {
		role := turn.Role
		if role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser, Content: message,
	})

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}

	var lastErr error
	delay := s.retryDelay
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			s.logger.Info("retrying completion",
				slog.Int("attempt", attempt),
				slog.Int("max_retries", s.maxRetries))
			s.sleep(delay)
			delay *= 2
		}

		resp, err := s.client.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return "", errs.Wrap(ctx.Err(), errs.ErrCodeTimeout, "completion canceled")
			}
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = errs.LLMUnavailable("completion returned no choices")
			continue
		}
		reply := strings.TrimSpace(resp.Choices[0].Message.Content)
		if reply == "" {
			lastErr = errs.LLMUnavailable("completion returned empty content")
			continue
		}
		return reply, nil
	}

	return "", errs.Wrap(lastErr, errs.ErrCodeLLMUnavailable, "completion failed after retries")
}

var _ Completer = (*CompletionService)(nil)
