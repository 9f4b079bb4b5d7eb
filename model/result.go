package model

// DeobfuscateResult is the validated reply of the deobfuscation flow
type DeobfuscateResult struct {
	DeobfuscatedCode string `json:"deobfuscatedCode"`
}

// ExplainResult is the validated reply of the explanation flow
type ExplainResult struct {
	Explanation string `json:"explanation"`
}

// SuggestResult is the validated reply of the step suggestion flow
type SuggestResult struct {
	SuggestedSteps []string `json:"suggestedSteps"`
}
