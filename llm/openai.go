package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitrise-io/ai-deobfuscator/logger"
	"github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4.1"

// OpenAIModel implements the LLM interface using OpenAI's API
type OpenAIModel struct {
	client *openai.Client
	config providerConfig
}

// NewOpenAI creates a new OpenAI client
func NewOpenAI(apiKey string, opts ...Option) (*OpenAIModel, error) {
	if apiKey == "" {
		errMsg := "OpenAI API key cannot be empty"
		logger.Error(errMsg)
		return nil, fmt.Errorf("%w: %s", ErrMissingAPIKey, errMsg)
	}

	cfg := newProviderConfig(defaultOpenAIModel, opts)
	retryClient := NewRetryableClient(retryConfigFor(cfg))

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = retryClient.StandardClient()
	if cfg.baseURL != "" {
		config.BaseURL = cfg.baseURL
	}

	logger.Debugf("OpenAI client initialized with model: %s, max tokens: %d, timeout: %d seconds",
		cfg.modelName, cfg.maxTokens, cfg.apiTimeout)

	return &OpenAIModel{
		client: openai.NewClientWithConfig(config),
		config: cfg,
	}, nil
}

func (o *OpenAIModel) Name() string {
	return ProviderOpenAI
}

// Prompt sends a request to OpenAI and returns the response
func (o *OpenAIModel) Prompt(ctx context.Context, req Request) Response {
	ctx, cancel := o.config.withDeadline(ctx)
	defer cancel()

	messages := []openai.ChatCompletionMessage{}
	if req.SystemPrompt != "" {
		logger.Debug("Adding system prompt to OpenAI request")
		logger.Debug(req.SystemPrompt)
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}

	for _, msg := range req.History {
		role := openai.ChatMessageRoleUser
		if msg.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	logger.Debug("Adding user prompt to OpenAI request")
	logger.Debug(req.UserPrompt)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserPrompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       o.config.modelName,
		Messages:    messages,
		MaxTokens:   o.config.maxTokens,
		Temperature: o.config.temperature,
	}

	if req.Shape != nil {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Shape.Name,
				Schema: SchemaFor(*req.Shape),
				Strict: true,
			},
		}
	}

	logger.Infof("Sending request to OpenAI with model %s, max tokens %d", o.config.modelName, o.config.maxTokens)

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		logger.Errorf("failed to create chat completion: %v", err)
		return Response{
			Error: fmt.Errorf("failed to create chat completion: %w", err),
		}
	}

	if len(resp.Choices) == 0 {
		logger.Error("OpenAI response contained no choices")
		return Response{
			Error: fmt.Errorf("%w: no choices", ErrEmptyResponse),
		}
	}

	return Response{
		Content: resp.Choices[0].Message.Content,
	}
}

func openAIStatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}

	return 0
}
