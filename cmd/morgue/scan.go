package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/morgue"
	"github.com/tsawler/morgue/article"
	"github.com/tsawler/morgue/scan"
)

func newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [flags] files-or-directories...",
		Short: "Extract article candidates from scanned issues",
		Long: `Scan every page of the given issues for the author's byline and write the
accepted article candidates as JSON. Directories are expanded to the
documents they contain.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: bindFlags,
		RunE:    runScan,
	}

	cmd.Flags().String("author", "", "byline phrase to search for (default from config)")
	cmd.Flags().Int("workers", 0, "pages analyzed at once (default: number of CPUs)")
	cmd.Flags().String("format", "pdf", "input format: pdf or dump")
	cmd.Flags().String("dedupe", "", "deduplication key: headline or headline_date")
	cmd.Flags().StringP("out", "o", "candidates.json", `candidates file, or "-" for stdout`)
	cmd.Flags().Bool("rejections", false, "also print rejected anchors")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
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

	res, err := morgue.Open(paths...).
		Config(cfg).
		Source(src).
		Logger(log).
		Result(cmd.Context())
	if err != nil {
		return err
	}

	if err := writeCandidates(viper.GetString("out"), cmd.OutOrStdout(), res.Candidates); err != nil {
		return err
	}

	out := cmd.ErrOrStderr()
	if viper.GetString("out") != "-" {
		out = cmd.OutOrStdout()
	}
	renderCandidates(out, res.Candidates)
	if viper.GetBool("rejections") {
		renderRejections(out, res.Rejections)
	}
	renderFailures(out, res.Failures)

	fmt.Fprintf(out, "%d documents, %d pages, %d extracted, %d candidates after deduplication\n",
		len(paths), len(res.Pages), res.Extracted, len(res.Candidates))
	return nil
}

func writeCandidates(path string, stdout io.Writer, candidates []article.Candidate) error {
	if candidates == nil {
		candidates = []article.Candidate{}
	}
	data, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode candidates: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write candidates: %w", err)
	}
	return nil
}

func readCandidates(path string) ([]article.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	var candidates []article.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode candidates %s: %w", path, err)
	}
	return candidates, nil
}

func renderCandidates(w io.Writer, candidates []article.Candidate) {
	if len(candidates) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Headline", "Date", "Words", "Images", "File", "Page"})
	for _, c := range candidates {
		t.AppendRow(table.Row{c.Headline, c.Date, c.WordCount, c.ImageCount, c.Filename, c.Page})
	}
	t.Render()
}

func renderRejections(w io.Writer, rejections []article.Rejection) {
	if len(rejections) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Reason", "Detail", "Byline", "File", "Page"})
	for _, r := range rejections {
		t.AppendRow(table.Row{r.Reason, r.Detail, r.Context, r.Filename, r.Page})
	}
	t.Render()
}

func renderFailures(w io.Writer, failures []scan.Failure) {
	if len(failures) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Page", "Error"})
	for _, f := range failures {
		t.AppendRow(table.Row{f.Filename, f.Page, f.Err})
	}
	t.Render()
}
