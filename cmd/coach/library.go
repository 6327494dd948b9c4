package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandevgo/pitchcoach/internal/service/ui"
)

var libraryCmd = &cobra.Command{
	Use:          "library",
	Short:        "List stored training materials",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		lib, err := newLibraryStack(ctx)
		if err != nil {
			return err
		}
		defer lib.db.Close()

		docs, err := lib.library.List(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(docs) == 0 {
			fmt.Fprintln(out, "The library is empty. Add materials with 'coach ingest'.")
			return nil
		}

		fmt.Fprintln(out, ui.HeaderStyle.Render(fmt.Sprintf("%d document(s)", len(docs))))
		for _, d := range docs {
			fmt.Fprintln(out, ui.ItemStyle.Render(fmt.Sprintf("%-32s %s", d.Name,
				ui.DescStyle.Render(fmt.Sprintf("%d chars, %s, %s", d.Size, d.Source, d.CreatedAt.Format("2006-01-02"))))))
		}
		return nil
	},
}

var libraryDeleteCmd = &cobra.Command{
	Use:          "delete <name>",
	Short:        "Remove a document from the library",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		lib, err := newLibraryStack(ctx)
		if err != nil {
			return err
		}
		defer lib.db.Close()

		if err := lib.library.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	libraryCmd.AddCommand(libraryDeleteCmd)
	rootCmd.AddCommand(libraryCmd)
}
