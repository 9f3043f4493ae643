package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/morgue/model"
	"github.com/tsawler/morgue/source"
)

func newDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [flags] file.pdf...",
		Short: "Write the word geometry of PDFs as JSON dumps",
		Long: `Write each PDF's positioned words and placed images as a JSON dump next to
it, or into --dir. Dumps can be inspected, edited into test fixtures, and
scanned with --format dump.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: bindFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, log, err := settings()
			if err != nil {
				return err
			}
			defer log.Sync()

			src, ext, err := openSource("pdf", cfg)
			if err != nil {
				return err
			}
			paths, err := expandPaths(args, ext)
			if err != nil {
				return err
			}

			for _, path := range paths {
				doc, err := src.Open(ctx, path)
				if err != nil {
					return err
				}

				var pages []model.Page
				for n := 1; n <= doc.NumPages(); n++ {
					page, err := doc.Page(ctx, n)
					if err != nil {
						doc.Close()
						return fmt.Errorf("%s page %d: %w", path, n, err)
					}
					pages = append(pages, *page)
				}
				doc.Close()

				target := strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
				if dir := viper.GetString("dir"); dir != "" {
					target = filepath.Join(dir, filepath.Base(target))
				}
				if err := writeDump(target, pages); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pages -> %s\n", path, len(pages), target)
			}
			return nil
		},
	}

	cmd.Flags().String("dir", "", "output directory (default: next to each PDF)")

	return cmd
}

func writeDump(path string, pages []model.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dump: %w", err)
	}
	if err := source.WriteDump(f, pages); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
