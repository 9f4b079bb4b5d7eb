package config

import (
	"errors"
	"testing"
)

func TestLoadSecrets(t *testing.T) {
	chdirTemp(t)
	t.Setenv("LLM_API_KEY", "llm-key")
	t.Setenv("CHAT_API_KEY", "chat-key")

	secrets, err := LoadSecrets()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	key, err := secrets.RequireLLMKey()
	if err != nil || key != "llm-key" {
		t.Errorf("Expected llm-key, got %q (%v)", key, err)
	}

	key, err = secrets.RequireChatKey()
	if err != nil || key != "chat-key" {
		t.Errorf("Expected chat-key, got %q (%v)", key, err)
	}
}

func TestRequireKeys_Missing(t *testing.T) {
	secrets := Secrets{}

	if _, err := secrets.RequireLLMKey(); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("Expected ErrMissingCredential, got %v", err)
	}
	if _, err := secrets.RequireChatKey(); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("Expected ErrMissingCredential, got %v", err)
	}
}
