package cmd

import (
	"fmt"
	"strings"

	"github.com/bitrise-io/ai-deobfuscator/logger"
	"github.com/bitrise-io/ai-deobfuscator/model"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest steps to deobfuscate Python code",
	Long:  `Send obfuscated Python code to the model and print an ordered list of deobfuscation steps.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		code, err := readInput(cmd)
		if err != nil {
			return err
		}

		runner, err := newFlowRunner(cmd, settings)
		if err != nil {
			return err
		}

		logger.Info("Suggesting deobfuscation steps 🧭")
		result, err := runner.Suggest(cmd.Context(), model.SuggestRequest{ObfuscatedCode: code})
		if err != nil {
			return fmt.Errorf("failed to suggest deobfuscation steps: %w", err)
		}

		return printResult(cmd, result, formatSteps(result.SuggestedSteps))
	},
}

func formatSteps(steps []string) string {
	lines := make([]string, 0, len(steps))
	for i, step := range steps {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, step))
	}
	return strings.Join(lines, "\n")
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	addInputFlags(suggestCmd)
	addModelFlags(suggestCmd)
	addOutputFlags(suggestCmd)
}
