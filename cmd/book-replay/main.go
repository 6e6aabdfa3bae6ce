package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muhammadchandra19/book-replay/internal/config"
	"github.com/muhammadchandra19/book-replay/pkg/logger"
)

const envFileFlagName = "env-file"

var rootCmd = &cobra.Command{
	Use:           "book-replay",
	Short:         "Replays order and trade files into order book snapshots",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String(envFileFlagName, ".env", "Path of the .env file to load")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

// setup loads and validates the configuration and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	envFile, err := cmd.Flags().GetString(envFileFlagName)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}
