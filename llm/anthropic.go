package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/bitrise-io/ai-deobfuscator/logger"
)

const defaultAnthropicModel = "claude-sonnet-4-20250514"

// AnthropicModel implements the LLM interface using Anthropic's API.
// Anthropic has no schema-constrained output, the reply format travels in
// the system prompt and is enforced by the response validator.
type AnthropicModel struct {
	client anthropic.Client
	config providerConfig
}

// NewAnthropic creates a new Anthropic client
func NewAnthropic(apiKey string, opts ...Option) (*AnthropicModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: Anthropic API key cannot be empty", ErrMissingAPIKey)
	}

	cfg := newProviderConfig(defaultAnthropicModel, opts)
	retryClient := NewRetryableClient(retryConfigFor(cfg))

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(retryClient.StandardClient()),
		// retries are owned by the retryable client
		option.WithMaxRetries(0),
	}
	if cfg.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.baseURL))
	}

	logger.Debugf("Anthropic client initialized with model: %s, max tokens: %d, timeout: %d seconds",
		cfg.modelName, cfg.maxTokens, cfg.apiTimeout)

	return &AnthropicModel{
		client: anthropic.NewClient(clientOpts...),
		config: cfg,
	}, nil
}

func (a *AnthropicModel) Name() string {
	return ProviderAnthropic
}

// Prompt sends a request to Anthropic and returns the response
func (a *AnthropicModel) Prompt(ctx context.Context, req Request) Response {
	ctx, cancel := a.config.withDeadline(ctx)
	defer cancel()

	messages := []anthropic.MessageParam{}
	for _, msg := range req.History {
		if msg.Role == RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
			continue
		}
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)))

	messageParams := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.config.modelName),
		MaxTokens:   int64(a.config.maxTokens),
		Messages:    messages,
		Temperature: anthropic.Float(float64(a.config.temperature)),
	}
	if req.SystemPrompt != "" {
		messageParams.System = []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		}
	}

	logger.Infof("Sending request to Anthropic with model %s, max tokens %d", a.config.modelName, a.config.maxTokens)

	message, err := a.client.Messages.New(ctx, messageParams)
	if err != nil {
		logger.Errorf("failed to create message: %v", err)
		return Response{
			Error: fmt.Errorf("failed to create message: %w", err),
		}
	}

	var content string
	for _, block := range message.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			content += b.Text
		}
	}

	if content == "" {
		logger.Error("Anthropic response contained no text content")
		return Response{
			Error: fmt.Errorf("%w: no text blocks", ErrEmptyResponse),
		}
	}

	return Response{
		Content: content,
	}
}

func anthropicStatusCode(err error) int {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
