package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/liamcoop/erpassistant/conversation"
	"github.com/liamcoop/erpassistant/internal/app"
	"github.com/liamcoop/erpassistant/internal/config"
	"github.com/liamcoop/erpassistant/internal/logger"
	"github.com/liamcoop/erpassistant/render"
)

var (
	plainOutput bool
	replyDelay  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "erpchat",
	Short: "Chat with the ERP assistant in the terminal",
	Long: `Start an interactive conversation with the ERP assistant.

Each line you type is answered from the configured dataset. Type the number
of a suggested reply to send it, :history to list recent queries, or :quit
to leave. Configuration is read from .env, config.yaml and the environment,
as for the server.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.Flags().BoolVar(&plainOutput, "plain", false, "print replies without colours or styling")
	rootCmd.Flags().DurationVar(&replyDelay, "delay", conversation.DefaultDelay, "simulated thinking time before each reply")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("delay") {
		cfg.ResponseDelay = replyDelay
	}

	// stdout belongs to the conversation
	if err := logger.Setup(ctx, logger.Options{
		Level:           cfg.LogLevel,
		ErrorSampleRate: cfg.ErrorSampleRate,
		OTELEnabled:     cfg.OTELEnabled,
		ServiceName:     cfg.OTELServiceName,
		Output:          os.Stderr,
	}); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logger.Shutdown(context.Background())
	if logger.GetLevel() < logger.LevelWarning {
		logger.SetLevel(logger.LevelWarning)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	var p printer = render.NewTerminal(out)
	if plainOutput {
		p = textPrinter{}
	}

	session := conversation.NewSession(uuid.NewString(), a.Assistant)
	return runREPL(ctx, session, cmd.InOrStdin(), out, p)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
