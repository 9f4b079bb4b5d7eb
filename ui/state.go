package ui

import (
	"time"

	"github.com/bitrise-io/ai-deobfuscator/llm"
)

const (
	ActionDeobfuscate = "deobfuscate"
	ActionExplain     = "explain"
	ActionSuggest     = "suggest"
	ActionChat        = "chat"
)

// Fixed messages shown when an action fails. The typed error is only logged.
const (
	MsgDeobfuscateFailed = "Failed to deobfuscate code. Please try again."
	MsgExplainFailed     = "Failed to explain code. Please try again."
	MsgSuggestFailed     = "Failed to suggest deobfuscation steps. Please try again."
	MsgChatFailed        = "Failed to get a chat response. Please try again."
)

// Action is an entry of the append-only action history, recorded when the action resolves
type Action struct {
	Kind       string    `json:"kind"`
	Input      string    `json:"input"`
	Failed     bool      `json:"failed"`
	ResolvedAt time.Time `json:"resolvedAt"`
}

// State is what a session shows to the user
type State struct {
	Input       string        `json:"input"`
	Result      string        `json:"result"`
	Steps       []string      `json:"steps"`
	Explanation string        `json:"explanation"`
	Busy        bool          `json:"busy"`
	Error       string        `json:"error,omitempty"`
	Complexity  int           `json:"complexity"`
	Transcript  []llm.Message `json:"transcript"`
	History     []Action      `json:"history"`
}

func (s State) clone() State {
	out := s
	out.Steps = append([]string(nil), s.Steps...)
	out.Transcript = append([]llm.Message(nil), s.Transcript...)
	out.History = append([]Action(nil), s.History...)
	return out
}
