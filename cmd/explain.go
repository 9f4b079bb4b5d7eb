package cmd

import (
	"fmt"

	"github.com/bitrise-io/ai-deobfuscator/common"
	"github.com/bitrise-io/ai-deobfuscator/logger"
	"github.com/bitrise-io/ai-deobfuscator/model"
	"github.com/spf13/cobra"
)

const explanationWidth = 100

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain a code section in plain language",
	Long:  `Send a code section, its programming language and optional known context to the model and print the explanation.`,
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

		language, _ := cmd.Flags().GetString("language")
		knownContext, _ := cmd.Flags().GetString("context")

		logger.Info("Explaining code 📖")
		result, err := runner.Explain(cmd.Context(), model.ExplainRequest{
			CodeSection:         code,
			ProgrammingLanguage: language,
			KnownContext:        knownContext,
		})
		if err != nil {
			return fmt.Errorf("failed to explain code: %w", err)
		}

		return printResult(cmd, result, common.WrapString(result.Explanation, explanationWidth))
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)

	addInputFlags(explainCmd)
	addModelFlags(explainCmd)
	addOutputFlags(explainCmd)
	explainCmd.Flags().StringP("language", "l", "Python", "Programming language of the code section")
	explainCmd.Flags().StringP("context", "c", "", "Known context about the code (optional)")
}
