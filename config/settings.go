package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitrise-io/ai-deobfuscator/logger"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	// DefaultTrailer is appended to every deobfuscated reply unless disabled
	DefaultTrailer = "```"
)

// SettingsFileNames are searched, in order, in the working directory and below it
var SettingsFileNames = []string{"deobfuscator.yml", "deobfuscator.yaml"}

type LLM struct {
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	MaxTokens  int    `yaml:"max_tokens"`
	APITimeout int    `yaml:"api_timeout"` // seconds, 0 waits for the provider indefinitely
	RetryMax   int    `yaml:"retry_max"`
	BaseURL    string `yaml:"base_url"`
}

type Chat struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

type Flows struct {
	Trailer          string `yaml:"trailer"`
	DisableTrailer   bool   `yaml:"disable_trailer"`
	RejectEmptyInput bool   `yaml:"reject_empty_input"`
}

type Server struct {
	Addr              string   `yaml:"addr"`
	SessionTTLMinutes int      `yaml:"session_ttl_minutes"`
	AllowedOrigins    []string `yaml:"allowed_origins"`
}

type Settings struct {
	Language string `yaml:"language"`
	Tone     string `yaml:"tone_instructions"`
	LLM      LLM    `yaml:"llm"`
	Chat     Chat   `yaml:"chat"`
	Flows    Flows  `yaml:"flows"`
	Server   Server `yaml:"server"`
}

func WithDefaultSettings() Settings {
	return Settings{
		Language: "en-US",
		LLM: LLM{
			Provider:  ProviderOpenAI,
			Model:     "gpt-4.1",
			MaxTokens: 4000,
		},
		Chat: Chat{
			Provider: ProviderOpenAI,
			Model:    "gpt-4.1-mini",
		},
		Flows: Flows{
			Trailer: DefaultTrailer,
		},
		Server: Server{
			Addr:              ":8080",
			SessionTTLMinutes: 60,
		},
	}
}

// WithYamlFile returns the default settings overlaid with the first settings
// file found in the working directory tree. Unreadable or invalid files are
// logged and ignored.
func WithYamlFile() Settings {
	settings := WithDefaultSettings()

	filePath := findSettingsFile()
	if filePath == "" {
		logger.Infof("No settings file found in the current directory or subdirectories. Using default settings.")
		return settings
	}

	loaded, err := LoadFile(filePath)
	if err != nil {
		logger.Infof("Failed to load settings file %s: %v", filePath, err)
		return settings
	}

	logger.Infof("Using settings from YAML file: %s", filePath)
	return loaded
}

// LoadFile reads the settings file at path on top of the default settings
func LoadFile(path string) (Settings, error) {
	settings := WithDefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	parsed := settings
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return settings, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return parsed, nil
}

// Trailer returns the marker the deobfuscation flow appends, or "" when disabled
func (s Settings) Trailer() string {
	if s.Flows.DisableTrailer {
		return ""
	}
	return s.Flows.Trailer
}

func findSettingsFile() string {
	for _, name := range SettingsFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}

	var filePath string
	filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if filePath != "" {
			return filepath.SkipDir
		}
		for _, name := range SettingsFileNames {
			if !info.IsDir() && info.Name() == name {
				filePath = path
				return filepath.SkipDir
			}
		}
		return nil
	})

	return filePath
}
