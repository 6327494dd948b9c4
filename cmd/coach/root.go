package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandevgo/pitchcoach/internal/config"
	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/internal/service/ui"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:     "coach",
	Short:   "PitchCoach: practice sales pitches and price negotiation",
	Long:    `PitchCoach plays a buyer grounded in your training materials, scores your pitch and negotiates the price with you.`,
	Version: core.CoachVersion,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	return log.NewContextWithLogger(ctx, log.Options{
		Debug: debug || config.IsDebug(),
		JSON:  config.IsJSONLog(),
	})
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `
{{StyleTitle "USAGE"}}
  {{StyleUsage .UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "FLAGS"}}
{{StyleFlag (.LocalFlags.FlagUsages | trimTrailingWhitespaces)}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}
