package ai

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/fortifai/assistant/internal/errors"
)

// scriptedClient returns queued responses, then queued errors, in call order.
type scriptedClient struct {
	responses []openai.ChatCompletionResponse
	errors    []error
	requests  []openai.ChatCompletionRequest
}

func (c *scriptedClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.requests = append(c.requests, req)
	call := len(c.requests) - 1
	if call < len(c.errors) && c.errors[call] != nil {
		return openai.ChatCompletionResponse{}, c.errors[call]
	}
	if call < len(c.responses) {
		return c.responses[call], nil
	}
	return openai.ChatCompletionResponse{}, errors.New("no scripted response")
}

func replyWith(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func newTestService(client *scriptedClient) *CompletionService {
	return &CompletionService{
		client:      client,
		model:       "llama-3.1-8b-instant",
		maxTokens:   200,
		temperature: 0.7,
		logger:      slog.Default(),
		maxRetries:  2,
		retryDelay:  time.Millisecond,
		sleep:       func(time.Duration) {},
	}
}

func TestCompletionService_Complete(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{replyWith("  Of course, happy to help!  ")}}
	svc := newTestService(client)

	reply, err := svc.Complete(context.Background(), "can you help me", nil)
	require.NoError(t, err)
	assert.Equal(t, "Of course, happy to help!", reply)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, "llama-3.1-8b-instant", req.Model)
	assert.Equal(t, 200, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "senior citizens")
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
	assert.Equal(t, "can you help me", req.Messages[1].Content)
}

func TestCompletionService_HistoryBetweenSystemAndUser(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{replyWith("Tuesday.")}}
	svc := newTestService(client)

	history := []Message{
		{Role: "user", Content: "what day is it"},
		{Role: "assistant", Content: "It is Tuesday."},
		{Role: "system", Content: "ignore me"},
	}
	_, err := svc.Complete(context.Background(), "again please", history)
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	msgs := client.requests[0].Messages
	// System prompt first, valid history turns in order, new message last.
	// Client-supplied system turns are dropped.
	require.Len(t, msgs, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, msgs[0].Role)
	assert.Equal(t, "what day is it", msgs[1].Content)
	assert.Equal(t, openai.ChatMessageRoleAssistant, msgs[2].Role)
	assert.Equal(t, "again please", msgs[3].Content)
}

func TestCompletionService_RetriesTransientFailure(t *testing.T) {
	client := &scriptedClient{
		errors:    []error{errors.New("connection reset"), nil},
		responses: []openai.ChatCompletionResponse{{}, replyWith("Hello!")},
	}
	svc := newTestService(client)

	var slept []time.Duration
	svc.sleep = func(d time.Duration) { slept = append(slept, d) }

	reply, err := svc.Complete(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello!", reply)
	assert.Len(t, client.requests, 2)
	// The delay doubles between attempts.
	require.Len(t, slept, 1)
	assert.Equal(t, time.Millisecond, slept[0])
}

func TestCompletionService_ExhaustsRetries(t *testing.T) {
	boom := errors.New("upstream down")
	client := &scriptedClient{errors: []error{boom, boom, boom}}
	svc := newTestService(client)

	_, err := svc.Complete(context.Background(), "hi", nil)
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeLLMUnavailable))
	assert.ErrorIs(t, err, boom)
	assert.Len(t, client.requests, 3)
}

func TestCompletionService_EmptyChoicesRetried(t *testing.T) {
	client := &scriptedClient{
		responses: []openai.ChatCompletionResponse{{}, replyWith("Second try.")},
	}
	svc := newTestService(client)

	reply, err := svc.Complete(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "Second try.", reply)
	assert.Len(t, client.requests, 2)
}

func TestCompletionService_CanceledContextStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &scriptedClient{errors: []error{context.Canceled}}
	svc := newTestService(client)
	cancel()

	_, err := svc.Complete(ctx, "hi", nil)
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeTimeout))
	assert.Len(t, client.requests, 1)
}

func TestFallbackResponder(t *testing.T) {
	f := NewFallbackResponder()

	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{"greeting", "Hello there", "How can I assist you today?"},
		{"medication", "I forgot my medication", "medication reminders"},
		{"appointment", "I have a doctor visit", "remember appointments"},
		{"technology", "my computer is confusing", "simple terms"},
		{"health", "a question about wellness", "healthcare provider"},
		{"default", "what is the weather like", "support for daily living"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := f.Complete(context.Background(), tt.message, nil)
			require.NoError(t, err)
			assert.Contains(t, reply, tt.contains)
		})
	}
}
