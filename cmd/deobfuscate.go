package cmd

import (
	"fmt"

	"github.com/bitrise-io/ai-deobfuscator/logger"
	"github.com/bitrise-io/ai-deobfuscator/model"
	"github.com/spf13/cobra"
)

var deobfuscateCmd = &cobra.Command{
	Use:   "deobfuscate",
	Short: "Rewrite obfuscated Python code into a readable version",
	Long: `Send obfuscated Python code to the model and print the deobfuscated version with explanatory comments.
With --ref and no --file every Python file tracked at that revision is deobfuscated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		file, _ := cmd.Flags().GetString("file")
		ref, _ := cmd.Flags().GetString("ref")
		if ref != "" && file == "" {
			files, err := readRevisionFiles(newGitClient(), ref)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no Python files found at %s", ref)
			}

			runner, err := newFlowRunner(cmd, settings)
			if err != nil {
				return err
			}

			logger.Infof("Deobfuscating %d files at %s 🔍", len(files), ref)
			results, err := deobfuscateFiles(cmd.Context(), runner, files)
			if err != nil {
				return err
			}
			return printResult(cmd, results, formatFileResults(results))
		}

		code, err := readInput(cmd)
		if err != nil {
			return err
		}

		runner, err := newFlowRunner(cmd, settings)
		if err != nil {
			return err
		}

		logger.Info("Deobfuscating code 🔍")
		result, err := runner.Deobfuscate(cmd.Context(), model.DeobfuscateRequest{ObfuscatedCode: code})
		if err != nil {
			return fmt.Errorf("failed to deobfuscate code: %w", err)
		}

		return printResult(cmd, result, result.DeobfuscatedCode)
	},
}

func init() {
	rootCmd.AddCommand(deobfuscateCmd)

	addInputFlags(deobfuscateCmd)
	addModelFlags(deobfuscateCmd)
	addOutputFlags(deobfuscateCmd)
}
