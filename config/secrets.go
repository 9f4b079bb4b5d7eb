package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrMissingCredential is returned when a flow needs an API key that is not configured
var ErrMissingCredential = errors.New("missing credential")

// Secrets holds the credentials of the external model providers.
// They are only ever read from the process environment (or a local .env file).
type Secrets struct {
	LLMAPIKey  string `env:"LLM_API_KEY"`
	ChatAPIKey string `env:"CHAT_API_KEY"`
}

// LoadSecrets reads the provider credentials from the environment
func LoadSecrets() (Secrets, error) {
	// .env is optional, CI and containers set variables directly
	_ = godotenv.Load()

	var secrets Secrets
	if err := env.Parse(&secrets); err != nil {
		return secrets, fmt.Errorf("failed to parse environment: %w", err)
	}
	return secrets, nil
}

// RequireLLMKey returns the key used by the deobfuscate, explain and suggest flows
func (s Secrets) RequireLLMKey() (string, error) {
	if s.LLMAPIKey == "" {
		return "", fmt.Errorf("%w: LLM_API_KEY environment variable is not set", ErrMissingCredential)
	}
	return s.LLMAPIKey, nil
}

// RequireChatKey returns the key used by the chat flow
func (s Secrets) RequireChatKey() (string, error) {
	if s.ChatAPIKey == "" {
		return "", fmt.Errorf("%w: CHAT_API_KEY environment variable is not set", ErrMissingCredential)
	}
	return s.ChatAPIKey, nil
}
