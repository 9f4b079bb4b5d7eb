package flow

import (
	"context"
	"fmt"

	"github.com/bitrise-io/ai-deobfuscator/config"
	"github.com/bitrise-io/ai-deobfuscator/llm"
	"github.com/bitrise-io/ai-deobfuscator/logger"
	"github.com/bitrise-io/ai-deobfuscator/model"
	"github.com/bitrise-io/ai-deobfuscator/prompt"
)

const (
	NameDeobfuscate = "deobfuscate"
	NameExplain     = "explain"
	NameSuggest     = "suggest"
	NameChat        = "chat"
)

// Runner runs the model-backed flows. Each flow performs exactly one model call.
type Runner struct {
	llm              llm.LLM
	chat             llm.LLM
	settings         config.Settings
	trailer          TrailerPolicy
	rejectEmptyInput bool
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithTrailerPolicy overrides the trailer policy configured in settings
func WithTrailerPolicy(policy TrailerPolicy) RunnerOption {
	return func(r *Runner) {
		r.trailer = policy
	}
}

// WithRejectEmptyInput makes the flows fail with ErrEmptyInput on empty code
func WithRejectEmptyInput(reject bool) RunnerOption {
	return func(r *Runner) {
		r.rejectEmptyInput = reject
	}
}

// WithChatLLM sets the model client used by the chat flow. Without it Chat
// returns ErrChatUnavailable.
func WithChatLLM(client llm.LLM) RunnerOption {
	return func(r *Runner) {
		r.chat = client
	}
}

// NewRunner creates a Runner on top of the given model client
func NewRunner(client llm.LLM, settings config.Settings, opts ...RunnerOption) *Runner {
	r := &Runner{
		llm:              client,
		settings:         settings,
		trailer:          TrailerFromSettings(settings),
		rejectEmptyInput: settings.Flows.RejectEmptyInput,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Deobfuscate asks the model to rewrite obfuscated Python code
func (r *Runner) Deobfuscate(ctx context.Context, req model.DeobfuscateRequest) (model.DeobfuscateResult, error) {
	reply, err := r.run(ctx, NameDeobfuscate, req.Input(), prompt.GetDeobfuscatePrompt(req), model.DeobfuscateShape)
	if err != nil {
		return model.DeobfuscateResult{}, err
	}

	return model.DeobfuscateResult{
		DeobfuscatedCode: r.trailer.Apply(reply.Text(model.FieldDeobfuscatedCode)),
	}, nil
}

// Explain asks the model to explain a code section
func (r *Runner) Explain(ctx context.Context, req model.ExplainRequest) (model.ExplainResult, error) {
	reply, err := r.run(ctx, NameExplain, req.Input(), prompt.GetExplainPrompt(req), model.ExplainShape)
	if err != nil {
		return model.ExplainResult{}, err
	}

	return model.ExplainResult{Explanation: reply.Text(model.FieldExplanation)}, nil
}

// Suggest asks the model for an ordered list of deobfuscation steps
func (r *Runner) Suggest(ctx context.Context, req model.SuggestRequest) (model.SuggestResult, error) {
	reply, err := r.run(ctx, NameSuggest, req.Input(), prompt.GetSuggestPrompt(req), model.SuggestShape)
	if err != nil {
		return model.SuggestResult{}, err
	}

	return model.SuggestResult{SuggestedSteps: reply.List(model.FieldSuggestedSteps)}, nil
}

// Chat sends a free-form message after the previous turns and returns the reply text
func (r *Runner) Chat(ctx context.Context, history []llm.Message, message string) (string, error) {
	if r.chat == nil {
		return "", ErrChatUnavailable
	}
	if message == "" && r.rejectEmptyInput {
		return "", fmt.Errorf("%s: %w", NameChat, ErrEmptyInput)
	}

	log := logger.With("flow", NameChat, "provider", r.chat.Name())
	log.Debugw("sending chat message", "turns", len(history))

	resp := r.chat.Prompt(ctx, llm.Request{
		SystemPrompt: prompt.GetChatSystemPrompt(r.settings),
		UserPrompt:   message,
		History:      history,
	})
	if resp.Error != nil {
		log.Warnw("chat call failed", "error", resp.Error)
		return "", &TransportError{Flow: NameChat, Provider: r.chat.Name(), StatusCode: llm.StatusCode(resp.Error), Err: resp.Error}
	}

	return resp.Content, nil
}

func (r *Runner) run(ctx context.Context, name, input, userPrompt string, shape model.Shape) (Reply, error) {
	if input == "" {
		if r.rejectEmptyInput {
			return Reply{}, fmt.Errorf("%s: %w", name, ErrEmptyInput)
		}
		logger.Warnf("Flow '%s' called with empty input, sending the prompt anyway", name)
	}

	log := logger.With("flow", name, "provider", r.llm.Name())
	log.Debugw("sending prompt", "shape", shape.Name, "input_length", len(input))

	resp := r.llm.Prompt(ctx, llm.Request{
		SystemPrompt: prompt.GetSystemPrompt(r.settings, shape),
		UserPrompt:   userPrompt,
		Shape:        &shape,
	})
	if resp.Error != nil {
		log.Warnw("model call failed", "error", resp.Error)
		return Reply{}, &TransportError{Flow: name, Provider: r.llm.Name(), StatusCode: llm.StatusCode(resp.Error), Err: resp.Error}
	}

	reply, err := Validate(resp.Content, shape)
	if err != nil {
		log.Warnw("model reply rejected", "error", err)
		log.Debugw("rejected reply", "content", resp.Content)
		return Reply{}, err
	}

	return reply, nil
}
