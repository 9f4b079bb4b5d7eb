package ui

import (
	"context"
	"sync"
	"time"

	"github.com/bitrise-io/ai-deobfuscator/common"
	"github.com/bitrise-io/ai-deobfuscator/llm"
	"github.com/bitrise-io/ai-deobfuscator/logger"
	"github.com/bitrise-io/ai-deobfuscator/model"
)

// Flows is the model-backed work a controller triggers, one call per action
type Flows interface {
	Deobfuscate(ctx context.Context, req model.DeobfuscateRequest) (model.DeobfuscateResult, error)
	Explain(ctx context.Context, req model.ExplainRequest) (model.ExplainResult, error)
	Suggest(ctx context.Context, req model.SuggestRequest) (model.SuggestResult, error)
	Chat(ctx context.Context, history []llm.Message, message string) (string, error)
}

// Controller owns the state of one session. Actions may overlap; each one
// writes its outcome when it resolves, so the last action to resolve wins.
type Controller struct {
	mu       sync.Mutex
	flows    Flows
	state    State
	inFlight int
	now      func() time.Time
}

// NewController creates a controller with an empty state
func NewController(flows Flows) *Controller {
	return &Controller{
		flows: flows,
		now:   time.Now,
	}
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Deobfuscate replaces the input with code and shows the deobfuscated version
func (c *Controller) Deobfuscate(ctx context.Context, code string) error {
	c.begin(code)

	result, err := c.flows.Deobfuscate(ctx, model.DeobfuscateRequest{ObfuscatedCode: code})

	c.finish(ActionDeobfuscate, code, err, MsgDeobfuscateFailed, func(s *State) {
		s.Result = result.DeobfuscatedCode
	})
	return err
}

// Explain replaces the input with the code section and shows its explanation
func (c *Controller) Explain(ctx context.Context, req model.ExplainRequest) error {
	c.begin(req.CodeSection)

	result, err := c.flows.Explain(ctx, req)

	c.finish(ActionExplain, req.CodeSection, err, MsgExplainFailed, func(s *State) {
		s.Explanation = result.Explanation
	})
	return err
}

// Suggest replaces the input with code and shows the suggested steps
func (c *Controller) Suggest(ctx context.Context, code string) error {
	c.begin(code)

	result, err := c.flows.Suggest(ctx, model.SuggestRequest{ObfuscatedCode: code})

	c.finish(ActionSuggest, code, err, MsgSuggestFailed, func(s *State) {
		s.Steps = result.SuggestedSteps
	})
	return err
}

// Chat appends message to the transcript and then the assistant's reply
func (c *Controller) Chat(ctx context.Context, message string) error {
	c.mu.Lock()
	history := append([]llm.Message(nil), c.state.Transcript...)
	c.state.Transcript = append(c.state.Transcript, llm.Message{Role: llm.RoleUser, Content: message})
	c.markBusy()
	c.mu.Unlock()

	reply, err := c.flows.Chat(ctx, history, message)

	c.finish(ActionChat, message, err, MsgChatFailed, func(s *State) {
		s.Transcript = append(s.Transcript, llm.Message{Role: llm.RoleAssistant, Content: reply})
	})
	return err
}

func (c *Controller) begin(input string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Input = input
	c.state.Complexity = common.Complexity(input)
	c.markBusy()
}

// markBusy must be called with mu held
func (c *Controller) markBusy() {
	c.inFlight++
	c.state.Busy = true
}

func (c *Controller) finish(kind, input string, err error, failure string, apply func(*State)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight--
	c.state.Busy = c.inFlight > 0

	if err != nil {
		logger.Errorw("Action failed", "action", kind, "error", err)
		c.state.Error = failure
	} else {
		c.state.Error = ""
		apply(&c.state)
	}

	c.state.History = append(c.state.History, Action{
		Kind:       kind,
		Input:      input,
		Failed:     err != nil,
		ResolvedAt: c.now(),
	})
}
