package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bitrise-io/ai-deobfuscator/logger"
	"github.com/bitrise-io/ai-deobfuscator/model"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var (
	// ErrMissingAPIKey is returned when a provider is created without credentials
	ErrMissingAPIKey = errors.New("llm: API key is not set")
	// ErrUnsupportedProvider is returned for an unknown provider name
	ErrUnsupportedProvider = errors.New("llm: unsupported provider")
	// ErrEmptyResponse is returned when the provider replied without any content
	ErrEmptyResponse = errors.New("llm: response contained no content")
)

// OptionType defines the type of option
type OptionType string

// Available option types
const (
	ModelNameOption   OptionType = "model"
	MaxTokensOption   OptionType = "max_tokens"
	APITimeoutOption  OptionType = "api_timeout"
	BaseURLOption     OptionType = "base_url"
	RetryMaxOption    OptionType = "retry_max"
	TemperatureOption OptionType = "temperature"
)

// Option represents a generic configuration option for any LLM provider
type Option struct {
	Type  OptionType
	Value any
}

// WithModel creates an option to set the model name
func WithModel(model string) Option {
	return Option{
		Type:  ModelNameOption,
		Value: model,
	}
}

// WithMaxTokens creates an option to set the max tokens
func WithMaxTokens(maxTokens int) Option {
	return Option{
		Type:  MaxTokensOption,
		Value: maxTokens,
	}
}

// WithAPITimeout creates an option to set the API timeout in seconds.
// Zero leaves the call without a deadline.
func WithAPITimeout(timeout int) Option {
	return Option{
		Type:  APITimeoutOption,
		Value: timeout,
	}
}

// WithBaseURL creates an option to point the provider at a compatible endpoint
func WithBaseURL(baseURL string) Option {
	return Option{
		Type:  BaseURLOption,
		Value: baseURL,
	}
}

// WithRetryMax creates an option to set how many times a failed call is retried
func WithRetryMax(retryMax int) Option {
	return Option{
		Type:  RetryMaxOption,
		Value: retryMax,
	}
}

// WithTemperature creates an option to set the sampling temperature
func WithTemperature(temperature float32) Option {
	return Option{
		Type:  TemperatureOption,
		Value: temperature,
	}
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a previous turn of a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents the data needed to generate a prompt for the LLM
type Request struct {
	SystemPrompt string
	UserPrompt   string
	// History is sent before UserPrompt, oldest first
	History []Message
	// Shape declares the structured reply, nil asks for free text
	Shape *model.Shape
}

// Response represents the response from the LLM
type Response struct {
	Content string
	Error   error
}

// LLM defines the interface for language model prompting
type LLM interface {
	// Prompt sends exactly one request to the language model and returns its response
	Prompt(ctx context.Context, req Request) Response
	// Name returns the provider name
	Name() string
}

type providerConfig struct {
	modelName   string
	maxTokens   int
	apiTimeout  int // in seconds
	baseURL     string
	retryMax    int
	temperature float32
}

func newProviderConfig(defaultModel string, opts []Option) providerConfig {
	cfg := providerConfig{
		modelName:   defaultModel,
		maxTokens:   4000,
		temperature: 0.2,
	}

	for _, opt := range opts {
		switch opt.Type {
		case ModelNameOption:
			if modelName, ok := opt.Value.(string); ok && modelName != "" {
				cfg.modelName = modelName
			}
		case MaxTokensOption:
			if maxTokens, ok := opt.Value.(int); ok && maxTokens > 0 {
				cfg.maxTokens = maxTokens
			}
		case APITimeoutOption:
			if timeout, ok := opt.Value.(int); ok && timeout >= 0 {
				cfg.apiTimeout = timeout
			}
		case BaseURLOption:
			if baseURL, ok := opt.Value.(string); ok {
				cfg.baseURL = baseURL
			}
		case RetryMaxOption:
			if retryMax, ok := opt.Value.(int); ok && retryMax >= 0 {
				cfg.retryMax = retryMax
			}
		case TemperatureOption:
			if temperature, ok := opt.Value.(float32); ok {
				cfg.temperature = temperature
			}
		}
	}

	return cfg
}

func (c providerConfig) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.apiTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(c.apiTimeout)*time.Second)
}

// NewLLM creates the client of the named provider
func NewLLM(providerName, modelName, apiKey string, opts ...Option) (LLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w for provider %s", ErrMissingAPIKey, providerName)
	}

	options := []Option{
		WithModel(modelName),
	}
	options = append(options, opts...)

	var llmClient LLM
	var err error
	switch providerName {
	case ProviderOpenAI:
		llmClient, err = NewOpenAI(apiKey, options...)
	case ProviderAnthropic:
		llmClient, err = NewAnthropic(apiKey, options...)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedProvider, providerName)
	}

	if err != nil {
		return nil, err
	}

	logger.Infow("LLM client ready", "provider", providerName, "model", modelName)
	return llmClient, nil
}
