package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/internal/service/ui"
	"github.com/sandevgo/pitchcoach/pkg/log"
)

var ingestURLs []string

var ingestCmd = &cobra.Command{
	Use:   "ingest [files or directories...]",
	Short: "Add training materials to the library",
	Long: `Stores .txt, .md, .html and .pdf files, whole directories of them, or web
pages given with --url. PDFs need a text layer; scans yield nothing.
Materials with the same name are replaced.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && len(ingestURLs) == 0 {
			return fmt.Errorf("nothing to ingest: pass files, directories or --url")
		}

		ctx := cmd.Context()
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		lib, err := newLibraryStack(ctx)
		if err != nil {
			return err
		}
		defer lib.db.Close()

		var (
			saved []core.StoredDocument
			files []string
		)
		for _, arg := range args {
			info, err := os.Stat(arg)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				files = append(files, arg)
				continue
			}
			docs, err := lib.library.ImportDir(ctx, arg)
			if err != nil {
				log.FromCtx(ctx).Warn().Err(err).Str("dir", arg).Msg("nothing imported from directory")
				continue
			}
			saved = append(saved, docs...)
		}

		if len(files) > 0 {
			docs, err := lib.library.ImportFiles(ctx, files)
			if err != nil {
				return err
			}
			saved = append(saved, docs...)
		}

		for _, u := range ingestURLs {
			doc, err := lib.library.ImportURL(ctx, u)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", u, err)
			}
			saved = append(saved, doc)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.HeaderStyle.Render(fmt.Sprintf("Stored %d document(s)", len(saved))))
		for _, d := range saved {
			fmt.Fprintln(out, ui.ItemStyle.Render(fmt.Sprintf("%s  %s", d.Name, ui.DescStyle.Render(fmt.Sprintf("%d chars from %s", d.Size, d.Source)))))
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringArrayVar(&ingestURLs, "url", nil, "web page to import (repeatable)")
	rootCmd.AddCommand(ingestCmd)
}
