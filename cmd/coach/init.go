package main

import (
	"github.com/spf13/cobra"

	"github.com/sandevgo/pitchcoach/internal/config"
	"github.com/sandevgo/pitchcoach/internal/service/installer"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

var initCmd = &cobra.Command{
	Use:          "init",
	Short:        "Configure the AI provider and practice channel",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		runtimePath := config.GetRuntimePath()

		// run wizard (includes save step)
		if _, err := installer.RunWizard(runtimePath); err != nil {
			return err
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Setup complete! Add materials with 'coach ingest', then run 'coach start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
