package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitrise-io/ai-deobfuscator/config"
	"github.com/bitrise-io/ai-deobfuscator/flow"
	"github.com/bitrise-io/ai-deobfuscator/git"
	"github.com/bitrise-io/ai-deobfuscator/llm"
	"github.com/bitrise-io/ai-deobfuscator/logger"
	"github.com/spf13/cobra"
)

func loadSettings() (config.Settings, error) {
	if configPath == "" {
		return config.WithYamlFile(), nil
	}

	settings, err := config.LoadFile(configPath)
	if err != nil {
		return settings, err
	}
	logger.Infof("Using settings from YAML file: %s", configPath)
	return settings, nil
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("provider", "p", "", "LLM provider to use (openai, anthropic), overrides the settings file")
	cmd.Flags().StringP("model", "m", "", "LLM model to use, overrides the settings file")
	cmd.Flags().Bool("no-trailer", false, "Do not append the closing code fence to the deobfuscated code")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print the result as JSON")
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Read the code from this file instead of stdin")
	cmd.Flags().StringP("ref", "r", "", "Read --file as it is at this git revision")
}

var newGitClient = func() *git.Client {
	return git.NewClient(git.NewDefaultRunner("."))
}

// readInput returns the code from --file (optionally at --ref), or stdin
func readInput(cmd *cobra.Command) (string, error) {
	file, _ := cmd.Flags().GetString("file")
	ref, _ := cmd.Flags().GetString("ref")

	switch {
	case ref != "":
		if file == "" {
			return "", fmt.Errorf("--ref requires --file")
		}
		return newGitClient().ShowFile(ref, file)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
}

func newFlowLLM(cmd *cobra.Command, settings config.Settings) (llm.LLM, error) {
	provider := settings.LLM.Provider
	model := settings.LLM.Model
	if cmd.Flags().Changed("provider") {
		provider, _ = cmd.Flags().GetString("provider")
		// the configured model belongs to the configured provider
		model = ""
	}
	if cmd.Flags().Changed("model") {
		model, _ = cmd.Flags().GetString("model")
	}

	secrets, err := config.LoadSecrets()
	if err != nil {
		return nil, err
	}
	apiKey, err := secrets.RequireLLMKey()
	if err != nil {
		return nil, err
	}

	return llm.NewLLM(provider, model, apiKey, llmOptions(settings)...)
}

// newChatLLM returns the chat client, or config.ErrMissingCredential when CHAT_API_KEY is not set
func newChatLLM(settings config.Settings) (llm.LLM, error) {
	secrets, err := config.LoadSecrets()
	if err != nil {
		return nil, err
	}
	apiKey, err := secrets.RequireChatKey()
	if err != nil {
		return nil, err
	}

	return llm.NewLLM(settings.Chat.Provider, settings.Chat.Model, apiKey, llmOptions(settings)...)
}

func llmOptions(settings config.Settings) []llm.Option {
	return []llm.Option{
		llm.WithMaxTokens(settings.LLM.MaxTokens),
		llm.WithAPITimeout(settings.LLM.APITimeout),
		llm.WithRetryMax(settings.LLM.RetryMax),
		llm.WithBaseURL(settings.LLM.BaseURL),
	}
}

func newFlowRunner(cmd *cobra.Command, settings config.Settings) (*flow.Runner, error) {
	client, err := newFlowLLM(cmd, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for provider: %w", err)
	}

	opts := []flow.RunnerOption{}
	if noTrailer, _ := cmd.Flags().GetBool("no-trailer"); noTrailer {
		opts = append(opts, flow.WithTrailerPolicy(flow.NoTrailer()))
	}
	return flow.NewRunner(client, settings, opts...), nil
}

// printResult writes text, or result as indented JSON when --json is set
func printResult(cmd *cobra.Command, result any, text string) error {
	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	_, err := fmt.Fprintln(out, text)
	return err
}
