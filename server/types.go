package server

// CreateSessionResponse is returned when a session is created
type CreateSessionResponse struct {
	ID string `json:"id"`
}

// CodeRequest is the body of the deobfuscate and suggest actions
type CodeRequest struct {
	ObfuscatedCode string `json:"obfuscatedCode"`
}

// ExplainRequest is the body of the explain action
type ExplainRequest struct {
	CodeSection         string `json:"codeSection"`
	ProgrammingLanguage string `json:"programmingLanguage"` // defaults to Python
	KnownContext        string `json:"knownContext"`
}

// ChatRequest is the body of the chat action
type ChatRequest struct {
	Message string `json:"message"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version,omitempty"`
	Sessions int    `json:"sessions"`
}
