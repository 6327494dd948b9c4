package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/internal/transport/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:          "mcp",
	Short:        "Serve practice sessions as MCP tools over stdio",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logs go to stderr, stdout belongs to the protocol
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		s, err := newStack(ctx)
		if err != nil {
			return err
		}
		defer s.db.Close()

		server := mcpserver.NewServer(s.coach, core.CoachVersion, os.Stdin, os.Stdout)
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
