package cmd

import (
	"fmt"

	"github.com/bitrise-io/ai-deobfuscator/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the version of the deobfuscator`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "AI Deobfuscator v%s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
