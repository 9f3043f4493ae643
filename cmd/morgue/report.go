package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/morgue"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [flags] files-or-directories...",
		Short: "List every page line that mentions the author",
		Long: `Report every line containing the author phrase, case-insensitively, whether
or not it forms an article. Use it to find bylines the extractor misses.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: bindFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := settings()
			if err != nil {
				return err
			}
			defer log.Sync()

			src, ext, err := openSource(viper.GetString("format"), cfg)
			if err != nil {
				return err
			}
			paths, err := expandPaths(args, ext)
			if err != nil {
				return err
			}

			mentions, failures, err := morgue.Open(paths...).
				Config(cfg).
				Source(src).
				Logger(log).
				Mentions(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"File", "Page", "Line"})
			for _, m := range mentions {
				t.AppendRow(table.Row{m.Filename, m.Page, m.Line})
			}
			t.Render()

			renderFailures(out, failures)
			fmt.Fprintf(out, "%d mentions in %d documents\n", len(mentions), len(paths))
			return nil
		},
	}

	cmd.Flags().String("author", "", "phrase to search for (default from config)")
	cmd.Flags().Int("workers", 0, "pages read at once (default: number of CPUs)")
	cmd.Flags().String("format", "pdf", "input format: pdf or dump")

	return cmd
}
