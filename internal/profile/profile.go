package profile

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the assistant server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Version is the current version of server
	Version string

	// AI Configuration
	AIEnabled     bool    // FORTIFAI_AI_ENABLED
	AIProvider    string  // FORTIFAI_AI_PROVIDER (groq or openai, default: groq)
	AIAPIKey      string  // FORTIFAI_AI_API_KEY
	AIBaseURL     string  // FORTIFAI_AI_BASE_URL (default depends on provider)
	AIModel       string  // FORTIFAI_AI_MODEL (default depends on provider)
	AIMaxTokens   int     // FORTIFAI_AI_MAX_TOKENS (default: 200)
	AITemperature float32 // FORTIFAI_AI_TEMPERATURE (default: 0.7)

	// Voice Configuration
	VoiceNoSpeechTimeout time.Duration // FORTIFAI_VOICE_NO_SPEECH_TIMEOUT (default: 30s)
	VoiceRestartDelay    time.Duration // FORTIFAI_VOICE_RESTART_DELAY (default: 500ms)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if AI is enabled and an API key is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.AIEnabled && p.AIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from FORTIFAI_* environment variables.
func (p *Profile) FromEnv() {
	p.AIEnabled = os.Getenv("FORTIFAI_AI_ENABLED") == "true"
	p.AIProvider = getEnvOrDefault("FORTIFAI_AI_PROVIDER", "groq")
	p.AIAPIKey = os.Getenv("FORTIFAI_AI_API_KEY")
	p.AIBaseURL = os.Getenv("FORTIFAI_AI_BASE_URL")
	p.AIModel = os.Getenv("FORTIFAI_AI_MODEL")

	if v := os.Getenv("FORTIFAI_AI_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.AIMaxTokens = n
		}
	}
	if v := os.Getenv("FORTIFAI_AI_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			p.AITemperature = float32(f)
		}
	}
	if v := os.Getenv("FORTIFAI_VOICE_NO_SPEECH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			p.VoiceNoSpeechTimeout = d
		}
	}
	if v := os.Getenv("FORTIFAI_VOICE_RESTART_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			p.VoiceRestartDelay = d
		}
	}
}

// Validate normalizes the profile and fills provider-dependent defaults.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Port <= 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}

	switch p.AIProvider {
	case "groq":
		if p.AIBaseURL == "" {
			p.AIBaseURL = "https://api.groq.com/openai/v1"
		}
		if p.AIModel == "" {
			p.AIModel = "llama-3.1-8b-instant"
		}
	case "openai":
		if p.AIBaseURL == "" {
			p.AIBaseURL = "https://api.openai.com/v1"
		}
		if p.AIModel == "" {
			p.AIModel = "gpt-3.5-turbo"
		}
	default:
		return errors.Errorf("unsupported AI provider %q", p.AIProvider)
	}

	if p.AIMaxTokens <= 0 {
		p.AIMaxTokens = 200
	}
	if p.AITemperature == 0 {
		p.AITemperature = 0.7
	}
	if p.VoiceNoSpeechTimeout <= 0 {
		p.VoiceNoSpeechTimeout = 30 * time.Second
	}
	if p.VoiceRestartDelay <= 0 {
		p.VoiceRestartDelay = 500 * time.Millisecond
	}

	return nil
}

// ListenAddr returns the address:port string the server binds to.
func (p *Profile) ListenAddr() string {
	return fmt.Sprintf("%s:%d", p.Addr, p.Port)
}
