package flow

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/bitrise-io/ai-deobfuscator/config"
	"github.com/bitrise-io/ai-deobfuscator/llm"
	"github.com/bitrise-io/ai-deobfuscator/model"
	"github.com/sashabaranov/go-openai"
)

// mockLLM replies with a canned response and records every request
type mockLLM struct {
	mu       sync.Mutex
	name     string
	response llm.Response
	requests []llm.Request
}

func newMockLLM(content string) *mockLLM {
	return &mockLLM{name: "mock", response: llm.Response{Content: content}}
}

func (m *mockLLM) Prompt(_ context.Context, req llm.Request) llm.Response {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	return m.response
}

func (m *mockLLM) Name() string {
	return m.name
}

func (m *mockLLM) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func TestRunner_Deobfuscate(t *testing.T) {
	mock := newMockLLM(`{"deobfuscatedCode": "x = 1  # assign 1 to x"}`)
	runner := NewRunner(mock, config.WithDefaultSettings())

	result, err := runner.Deobfuscate(context.Background(), model.DeobfuscateRequest{ObfuscatedCode: "x=1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := "x = 1  # assign 1 to x```"
	if result.DeobfuscatedCode != want {
		t.Errorf("Expected %q, got %q", want, result.DeobfuscatedCode)
	}

	if mock.calls() != 1 {
		t.Fatalf("Expected exactly one model call, got %d", mock.calls())
	}
	req := mock.requests[0]
	if !strings.Contains(req.UserPrompt, "x=1") {
		t.Errorf("Expected user prompt to contain the input, got %q", req.UserPrompt)
	}
	if req.Shape == nil || req.Shape.Name != model.DeobfuscateShape.Name {
		t.Errorf("Expected deobfuscate shape, got %v", req.Shape)
	}
	if !strings.Contains(req.SystemPrompt, model.FieldDeobfuscatedCode) {
		t.Errorf("Expected system prompt to describe the reply format, got %q", req.SystemPrompt)
	}
}

func TestRunner_Deobfuscate_NoTrailer(t *testing.T) {
	mock := newMockLLM(`{"deobfuscatedCode": "x = 1"}`)
	runner := NewRunner(mock, config.WithDefaultSettings(), WithTrailerPolicy(NoTrailer()))

	result, err := runner.Deobfuscate(context.Background(), model.DeobfuscateRequest{ObfuscatedCode: "x=1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.DeobfuscatedCode != "x = 1" {
		t.Errorf("Expected %q, got %q", "x = 1", result.DeobfuscatedCode)
	}
}

func TestRunner_Deobfuscate_TrailerDisabledInSettings(t *testing.T) {
	settings := config.WithDefaultSettings()
	settings.Flows.DisableTrailer = true
	runner := NewRunner(newMockLLM(`{"deobfuscatedCode": "x = 1"}`), settings)

	result, err := runner.Deobfuscate(context.Background(), model.DeobfuscateRequest{ObfuscatedCode: "x=1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.DeobfuscatedCode != "x = 1" {
		t.Errorf("Expected %q, got %q", "x = 1", result.DeobfuscatedCode)
	}
}

func TestRunner_Explain(t *testing.T) {
	mock := newMockLLM(`{"explanation": "Returns its argument unchanged."}`)
	runner := NewRunner(mock, config.WithDefaultSettings())

	result, err := runner.Explain(context.Background(), model.ExplainRequest{
		CodeSection:         "def f(a): return a",
		ProgrammingLanguage: "Python",
		KnownContext:        "utility module",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Explanation != "Returns its argument unchanged." {
		t.Errorf("Unexpected explanation %q", result.Explanation)
	}
	if !strings.Contains(mock.requests[0].UserPrompt, "utility module") {
		t.Errorf("Expected known context in prompt, got %q", mock.requests[0].UserPrompt)
	}
}

func TestRunner_Suggest(t *testing.T) {
	mock := newMockLLM(`{"suggestedSteps": ["Rename variables", "Split statements"]}`)
	runner := NewRunner(mock, config.WithDefaultSettings())

	result, err := runner.Suggest(context.Background(), model.SuggestRequest{ObfuscatedCode: "a=1;b=2"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"Rename variables", "Split statements"}
	if !reflect.DeepEqual(result.SuggestedSteps, want) {
		t.Errorf("Expected %v, got %v", want, result.SuggestedSteps)
	}
}

func TestRunner_ReplyErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(error) bool
	}{
		{
			name:    "missing field",
			content: `{"steps": ["Rename variables"]}`,
			check: func(err error) bool {
				var target *MissingFieldError
				return errors.As(err, &target)
			},
		},
		{
			name:    "malformed field",
			content: `{"suggestedSteps": "Rename variables"}`,
			check: func(err error) bool {
				var target *MalformedReplyError
				return errors.As(err, &target)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(newMockLLM(tt.content), config.WithDefaultSettings())

			_, err := runner.Suggest(context.Background(), model.SuggestRequest{ObfuscatedCode: "a=1;b=2"})
			if !tt.check(err) {
				t.Errorf("Unexpected error %v", err)
			}
			if IsTransportError(err) {
				t.Error("Expected a reply error, not a transport error")
			}
		})
	}
}

func TestRunner_TransportError(t *testing.T) {
	cause := &openai.APIError{HTTPStatusCode: 401, Message: "invalid api key"}
	mock := &mockLLM{name: llm.ProviderOpenAI, response: llm.Response{Error: cause}}
	runner := NewRunner(mock, config.WithDefaultSettings())

	_, err := runner.Explain(context.Background(), model.ExplainRequest{CodeSection: "x=1", ProgrammingLanguage: "Python"})

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("Expected TransportError, got %v", err)
	}
	if transport.StatusCode != 401 {
		t.Errorf("Expected status 401, got %d", transport.StatusCode)
	}
	if transport.Provider != llm.ProviderOpenAI || transport.Flow != NameExplain {
		t.Errorf("Unexpected provider/flow %s/%s", transport.Provider, transport.Flow)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected the provider error to be unwrapped")
	}
	if mock.calls() != 1 {
		t.Errorf("Expected exactly one model call, got %d", mock.calls())
	}
}

func TestRunner_EmptyInput(t *testing.T) {
	mock := newMockLLM(`{"deobfuscatedCode": ""}`)

	runner := NewRunner(mock, config.WithDefaultSettings())
	if _, err := runner.Deobfuscate(context.Background(), model.DeobfuscateRequest{}); err != nil {
		t.Fatalf("Expected empty input to be passed through, got %v", err)
	}
	if mock.calls() != 1 {
		t.Fatalf("Expected one model call, got %d", mock.calls())
	}

	strict := NewRunner(mock, config.WithDefaultSettings(), WithRejectEmptyInput(true))
	_, err := strict.Deobfuscate(context.Background(), model.DeobfuscateRequest{})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
	if mock.calls() != 1 {
		t.Errorf("Expected no model call for rejected input, got %d calls", mock.calls())
	}
}

func TestRunner_Chat(t *testing.T) {
	chat := newMockLLM("Try renaming the variables first.")
	runner := NewRunner(newMockLLM(""), config.WithDefaultSettings(), WithChatLLM(chat))

	history := []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "hello"},
	}
	reply, err := runner.Chat(context.Background(), history, "where do I start?")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if reply != "Try renaming the variables first." {
		t.Errorf("Unexpected reply %q", reply)
	}

	req := chat.requests[0]
	if req.Shape != nil {
		t.Error("Expected chat request without a reply shape")
	}
	if !reflect.DeepEqual(req.History, history) || req.UserPrompt != "where do I start?" {
		t.Errorf("Unexpected chat request %+v", req)
	}
}

func TestRunner_ChatUnavailable(t *testing.T) {
	runner := NewRunner(newMockLLM(""), config.WithDefaultSettings())

	_, err := runner.Chat(context.Background(), nil, "hi")
	if !errors.Is(err, ErrChatUnavailable) {
		t.Errorf("Expected ErrChatUnavailable, got %v", err)
	}
}
