package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandevgo/pitchcoach/pkg/log"
	"github.com/sandevgo/pitchcoach/pkg/srv"
)

const shutdownTimeout = 10 * time.Second

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the coach services",
	Long:  `Loads the material library and starts the configured transports (HTTP API, Telegram, terminal chat) and the materials watcher.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting pitchcoach")

		services := NewServices(ctx)
		if err := srv.Run(ctx, services, shutdownTimeout); err != nil {
			return err
		}

		logger.Info().Msg("pitchcoach has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
