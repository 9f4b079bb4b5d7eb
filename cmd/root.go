package cmd

import (
	"github.com/bitrise-io/ai-deobfuscator/logger"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	logLevel   string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "deobfuscator",
	Short: "Deobfuscate Python code using AI",
	Long: `Deobfuscator sends Python source code to a generative AI model and returns a readable version of it.
It can also explain a code section, suggest deobfuscation steps and serve a small web UI.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize logger with the specified log level
		logger.Init(logLevel)
		logger.Debugf("Log level set to: %s", logLevel)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior when no subcommands are provided
		_ = cmd.Help()
	},
}

// Execute runs the root command and handles errors
func Execute() error {
	// Subcommands are added in their respective init() functions
	defer logger.Sync()
	return rootCmd.Execute()
}

func init() {
	// Add persistent flags that will be available to all subcommands
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Set the logging level (debug, info, warn, error, dpanic, panic, fatal)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the settings file (default: deobfuscator.yml found in the working directory tree)")
}
