package config

import (
	"os"
	"testing"
)

func chdirTemp(t *testing.T) {
	t.Helper()

	tempDir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })
}

func TestWithDefaultSettings(t *testing.T) {
	settings := WithDefaultSettings()

	if settings.Language != "en-US" {
		t.Errorf("Expected default language to be en-US, got %s", settings.Language)
	}
	if settings.LLM.Provider != ProviderOpenAI {
		t.Errorf("Expected default provider to be %s, got %s", ProviderOpenAI, settings.LLM.Provider)
	}
	if settings.LLM.APITimeout != 0 {
		t.Errorf("Expected no default API timeout, got %d", settings.LLM.APITimeout)
	}
	if settings.LLM.RetryMax != 0 {
		t.Errorf("Expected no default retries, got %d", settings.LLM.RetryMax)
	}
	if settings.Trailer() != DefaultTrailer {
		t.Errorf("Expected default trailer %q, got %q", DefaultTrailer, settings.Trailer())
	}
	if settings.Flows.RejectEmptyInput {
		t.Error("Expected empty input to be passed through by default")
	}
	if settings.Tone != "" {
		t.Errorf("Expected empty Tone by default, got %s", settings.Tone)
	}
}

func TestWithYamlFile_ValidFile(t *testing.T) {
	configContent := `language: fr-FR
tone_instructions: friendly
llm:
  provider: anthropic
  model: claude-sonnet-4-20250514
  api_timeout: 90
flows:
  disable_trailer: true
  reject_empty_input: true
server:
  addr: ":9000"
`
	chdirTemp(t)

	if err := os.WriteFile("deobfuscator.yml", []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	settings := WithYamlFile()

	if settings.Language != "fr-FR" {
		t.Errorf("Expected language fr-FR, got %s", settings.Language)
	}
	if settings.Tone != "friendly" {
		t.Errorf("Expected tone friendly, got %s", settings.Tone)
	}
	if settings.LLM.Provider != ProviderAnthropic {
		t.Errorf("Expected provider %s, got %s", ProviderAnthropic, settings.LLM.Provider)
	}
	if settings.LLM.APITimeout != 90 {
		t.Errorf("Expected api timeout 90, got %d", settings.LLM.APITimeout)
	}
	// Not in the file, default must survive
	if settings.LLM.MaxTokens != 4000 {
		t.Errorf("Expected default max tokens 4000, got %d", settings.LLM.MaxTokens)
	}
	if settings.Trailer() != "" {
		t.Errorf("Expected trailer to be disabled, got %q", settings.Trailer())
	}
	if !settings.Flows.RejectEmptyInput {
		t.Error("Expected reject_empty_input to be true")
	}
	if settings.Server.Addr != ":9000" {
		t.Errorf("Expected addr :9000, got %s", settings.Server.Addr)
	}
}

func TestWithYamlFileInSubdirectory_ValidFile(t *testing.T) {
	chdirTemp(t)

	if err := os.MkdirAll("subdir", 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}
	if err := os.WriteFile("subdir/deobfuscator.yaml", []byte("language: de-DE\n"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	settings := WithYamlFile()
	if settings.Language != "de-DE" {
		t.Errorf("Expected language de-DE, got %s", settings.Language)
	}
}

func TestWithYamlFile_InvalidYaml(t *testing.T) {
	chdirTemp(t)

	invalidContent := `language: fr-FR
llm:
  provider: anthropic
  this-is-invalid-yaml
`
	if err := os.WriteFile("deobfuscator.yml", []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create invalid config file: %v", err)
	}

	settings := WithYamlFile()
	expected := WithDefaultSettings()

	if settings.Language != expected.Language {
		t.Errorf("Expected language %s, got %s", expected.Language, settings.Language)
	}
	if settings.LLM.Provider != expected.LLM.Provider {
		t.Errorf("Expected provider %s, got %s", expected.LLM.Provider, settings.LLM.Provider)
	}
}

func TestWithYamlFile_EmptyFile(t *testing.T) {
	chdirTemp(t)

	if err := os.WriteFile("deobfuscator.yml", []byte(""), 0644); err != nil {
		t.Fatalf("Failed to create empty config file: %v", err)
	}

	settings := WithYamlFile()
	expected := WithDefaultSettings()

	if settings.Language != expected.Language {
		t.Errorf("Expected language %s, got %s", expected.Language, settings.Language)
	}
	if settings.Trailer() != expected.Trailer() {
		t.Errorf("Expected trailer %q, got %q", expected.Trailer(), settings.Trailer())
	}
}

func TestLoadFile_Missing(t *testing.T) {
	chdirTemp(t)

	settings, err := LoadFile("does-not-exist.yml")
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
	if settings.Language != "en-US" {
		t.Errorf("Expected defaults on error, got language %s", settings.Language)
	}
}
