package cmd

import (
	"fmt"
	"strings"

	"github.com/bitrise-io/ai-deobfuscator/flow"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the chat model a free-form question",
	Long:  `Send a single free-form message to the chat model. Requires the CHAT_API_KEY environment variable.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		chatClient, err := newChatLLM(settings)
		if err != nil {
			return fmt.Errorf("failed to create chat client: %w", err)
		}

		runner := flow.NewRunner(nil, settings, flow.WithChatLLM(chatClient))
		reply, err := runner.Chat(cmd.Context(), nil, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to get a chat response: %w", err)
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
		return err
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
