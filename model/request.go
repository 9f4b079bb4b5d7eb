package model

// DeobfuscateRequest carries obfuscated Python code to be rewritten by the model
type DeobfuscateRequest struct {
	ObfuscatedCode string `json:"obfuscatedCode"`
}

// Input returns the code text carried by the request
func (r DeobfuscateRequest) Input() string {
	return r.ObfuscatedCode
}

// ExplainRequest carries a code section to be explained in plain language
type ExplainRequest struct {
	CodeSection         string `json:"codeSection"`
	ProgrammingLanguage string `json:"programmingLanguage"`
	KnownContext        string `json:"knownContext,omitempty"` // Empty means no context
}

// Input returns the code text carried by the request
func (r ExplainRequest) Input() string {
	return r.CodeSection
}

// HasContext reports whether the request carries known context
func (r ExplainRequest) HasContext() bool {
	return r.KnownContext != ""
}

// SuggestRequest carries obfuscated Python code to suggest deobfuscation steps for
type SuggestRequest struct {
	ObfuscatedCode string `json:"obfuscatedCode"`
}

// Input returns the code text carried by the request
func (r SuggestRequest) Input() string {
	return r.ObfuscatedCode
}
