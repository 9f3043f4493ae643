package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/morgue/catalog"
	"github.com/tsawler/morgue/logger"
	"github.com/tsawler/morgue/media"
	"github.com/tsawler/morgue/pdfsource"
)

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [flags]",
		Short: "Publish article candidates to the catalog",
		Long: `Import a candidates file into the catalog. Headlines that are too short,
look like web addresses, or name the newspaper are skipped, as are slugs
already in the catalog. With --bucket or --media-dir, each article's
photographs are re-read from its issue and uploaded.`,
		Args:    cobra.NoArgs,
		PreRunE: bindFlags,
		RunE:    runImport,
	}

	cmd.Flags().String("candidates", "candidates.json", "candidates file written by scan")
	cmd.Flags().String("catalog", "journalism.json", "JSON catalog file")
	cmd.Flags().String("sqlite", "", "SQLite catalog database, used instead of --catalog")
	cmd.Flags().String("pdf-dir", ".", "directory the candidates' issues are read from")
	cmd.Flags().String("bucket", "", "S3 bucket for photographs")
	cmd.Flags().String("region", "", "S3 region")
	cmd.Flags().String("media-dir", "", "local directory for photographs, instead of S3")
	cmd.Flags().String("media-url", "", "base URL the media directory is served from")
	cmd.Flags().String("prefix", "", "object key prefix (default from config)")
	cmd.Flags().Bool("clean", false, "remove catalog articles whose titles fail the headline checks")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, log, err := settings()
	if err != nil {
		return err
	}
	defer log.Sync()

	candidates, err := readCandidates(viper.GetString("candidates"))
	if err != nil {
		return err
	}

	var store catalog.Store
	if path := viper.GetString("sqlite"); path != "" {
		db, err := catalog.OpenSQLite(ctx, path)
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
	} else {
		store = catalog.NewJSONStore(viper.GetString("catalog"))
	}

	importer := catalog.NewImporterWithConfig(store, cfg.Import()).WithLogger(log)

	uploader, err := newUploader(cmd, cfg.Media.S3)
	if err != nil {
		return err
	}
	if uploader != nil {
		prefix := viper.GetString("prefix")
		if prefix == "" {
			prefix = cfg.Media.Prefix
		}
		publisher := media.NewPublisher(uploader, prefix, cfg.Harvest()).
			WithSource(pdfsource.NewWithConfig(cfg.PDF()), viper.GetString("pdf-dir")).
			WithLogger(log)
		importer = importer.WithImages(publisher)
	}

	report, err := importer.Import(ctx, candidates)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Status", "Slug", "Detail"})
	for _, a := range report.Imported {
		t.AppendRow(table.Row{"imported", a.Slug, fmt.Sprintf("%d images", len(a.Images))})
	}
	for _, s := range report.Skipped {
		t.AppendRow(table.Row{"skipped", s.Slug, s.Reason})
	}
	t.Render()
	fmt.Fprintf(out, "%d imported, %d skipped\n", len(report.Imported), len(report.Skipped))

	if viper.GetBool("clean") {
		removed, err := importer.Clean(ctx)
		if err != nil {
			return err
		}
		for _, slug := range removed {
			log.Info("removed noise article", logger.String("slug", slug))
		}
		fmt.Fprintf(out, "%d noise articles removed\n", len(removed))
	}
	return nil
}

// newUploader returns the configured image uploader, or nil when images
// are not published
func newUploader(cmd *cobra.Command, s3 media.S3Config) (media.Uploader, error) {
	if dir := viper.GetString("media-dir"); dir != "" {
		return media.NewDirUploader(dir, viper.GetString("media-url")), nil
	}

	if bucket := viper.GetString("bucket"); bucket != "" {
		s3.Bucket = bucket
	}
	if region := viper.GetString("region"); region != "" {
		s3.Region = region
	}
	if s3.Bucket == "" {
		return nil, nil
	}
	if s3.AccessKey == "" {
		s3.AccessKey = viper.GetString("aws_access_key")
		s3.SecretKey = viper.GetString("aws_secret_key")
	}
	return media.NewS3Uploader(cmd.Context(), s3)
}
