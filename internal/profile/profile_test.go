package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_GroqDefaults(t *testing.T) {
	p := &Profile{Mode: "demo", Port: 8081, AIProvider: "groq"}
	require.NoError(t, p.Validate())

	assert.Equal(t, "https://api.groq.com/openai/v1", p.AIBaseURL)
	assert.Equal(t, "llama-3.1-8b-instant", p.AIModel)
	assert.Equal(t, 200, p.AIMaxTokens)
	assert.InDelta(t, 0.7, p.AITemperature, 0.001)
	assert.Equal(t, 30*time.Second, p.VoiceNoSpeechTimeout)
	assert.Equal(t, 500*time.Millisecond, p.VoiceRestartDelay)
}

func TestValidate_OpenAIDefaults(t *testing.T) {
	p := &Profile{Mode: "prod", Port: 8081, AIProvider: "openai"}
	require.NoError(t, p.Validate())

	assert.Equal(t, "https://api.openai.com/v1", p.AIBaseURL)
	assert.Equal(t, "gpt-3.5-turbo", p.AIModel)
}

func TestValidate_ExplicitValuesKept(t *testing.T) {
	p := &Profile{
		Mode:       "dev",
		Port:       9000,
		AIProvider: "groq",
		AIBaseURL:  "http://localhost:1234/v1",
		AIModel:    "local-model",
	}
	require.NoError(t, p.Validate())

	assert.Equal(t, "http://localhost:1234/v1", p.AIBaseURL)
	assert.Equal(t, "local-model", p.AIModel)
}

func TestValidate_Rejections(t *testing.T) {
	p := &Profile{Mode: "demo", Port: 0, AIProvider: "groq"}
	assert.Error(t, p.Validate())

	p = &Profile{Mode: "demo", Port: 8081, AIProvider: "mystery"}
	assert.Error(t, p.Validate())
}

func TestValidate_UnknownModeFallsBackToDemo(t *testing.T) {
	p := &Profile{Mode: "staging", Port: 8081, AIProvider: "groq"}
	require.NoError(t, p.Validate())
	assert.Equal(t, "demo", p.Mode)
	assert.True(t, p.IsDev())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("FORTIFAI_AI_ENABLED", "true")
	t.Setenv("FORTIFAI_AI_API_KEY", "test-key")
	t.Setenv("FORTIFAI_AI_PROVIDER", "openai")
	t.Setenv("FORTIFAI_AI_MAX_TOKENS", "300")
	t.Setenv("FORTIFAI_VOICE_RESTART_DELAY", "250ms")

	p := &Profile{}
	p.FromEnv()

	assert.True(t, p.AIEnabled)
	assert.Equal(t, "test-key", p.AIAPIKey)
	assert.Equal(t, "openai", p.AIProvider)
	assert.Equal(t, 300, p.AIMaxTokens)
	assert.Equal(t, 250*time.Millisecond, p.VoiceRestartDelay)
	assert.True(t, p.IsAIEnabled())
}

func TestIsAIEnabled_RequiresKey(t *testing.T) {
	p := &Profile{AIEnabled: true}
	assert.False(t, p.IsAIEnabled())
}

func TestListenAddr(t *testing.T) {
	p := &Profile{Addr: "127.0.0.1", Port: 8081}
	assert.Equal(t, "127.0.0.1:8081", p.ListenAddr())
}
