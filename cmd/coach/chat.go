package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/pitchcoach/internal/transport/cli"
)

var chatCmd = &cobra.Command{
	Use:          "chat",
	Short:        "Practice in the terminal",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		s, err := newStack(ctx)
		if err != nil {
			return err
		}
		defer s.db.Close()

		rl, err := cli.NewReadLine(s.dialog, s.router, s.app.GetHistoryPath())
		if err != nil {
			return err
		}
		defer rl.Shutdown(ctx)

		return rl.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
