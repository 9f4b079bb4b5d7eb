package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/bitrise-io/ai-deobfuscator/flow"
	"github.com/bitrise-io/ai-deobfuscator/logger"
	"github.com/bitrise-io/ai-deobfuscator/server"
	"github.com/bitrise-io/ai-deobfuscator/ui"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web UI and the session API",
	Long:  `Start an HTTP server with the deobfuscator page and a JSON API backed by in-memory sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			settings.Server.Addr, _ = cmd.Flags().GetString("addr")
		}

		opts := []flow.RunnerOption{}
		if chatClient, err := newChatLLM(settings); err != nil {
			logger.Warnf("Chat is disabled: %v", err)
		} else {
			opts = append(opts, flow.WithChatLLM(chatClient))
		}
		if noTrailer, _ := cmd.Flags().GetBool("no-trailer"); noTrailer {
			opts = append(opts, flow.WithTrailerPolicy(flow.NoTrailer()))
		}

		client, err := newFlowLLM(cmd, settings)
		if err != nil {
			return err
		}
		runner := flow.NewRunner(client, settings, opts...)

		if logLevel != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		ttl := time.Duration(settings.Server.SessionTTLMinutes) * time.Minute
		sessions := ui.NewSessions(runner, ttl)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.New(sessions, settings.Server).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	addModelFlags(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on, overrides the settings file")
}
