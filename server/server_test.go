package server

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortifai/assistant/internal/profile"
	"github.com/fortifai/assistant/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	p := &profile.Profile{Mode: "demo", Port: 8081, AIProvider: "groq"}
	require.NoError(t, p.Validate())

	s, err := NewServer(context.Background(), p, store.NewReminderStore(), slog.Default())
	require.NoError(t, err)
	return s
}

func TestServer_RoutesRegistered(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/reminders", http.StatusOK},
		{http.MethodPost, "/api/chat", http.StatusBadRequest}, // empty body
		{http.MethodGet, "/api/nothing-here", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			s.Echo().ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestServer_ChatWithoutProviderAnswersCanned(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "How can I assist you today?")
}
