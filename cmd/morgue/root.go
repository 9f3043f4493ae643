package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/morgue/config"
	"github.com/tsawler/morgue/logger"
	"github.com/tsawler/morgue/pdfsource"
	"github.com/tsawler/morgue/source"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "morgue",
	Short: "Extract bylined articles from scanned newspaper issues",
	Long: `morgue finds an author's bylines in scanned newspaper pages, reconstructs
the surrounding articles from page geometry, and publishes them to a catalog.

Every flag can also be set through a MORGUE_* environment variable, e.g.
MORGUE_AUTHOR or MORGUE_S3_BUCKET, or in a .env file.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	viper.SetEnvPrefix("MORGUE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newDumpCommand())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "morgue version %s\n", version)
		},
	})
}

// bindFlags makes the command's flags readable through viper, so that
// MORGUE_* variables fill in flags that were not given
func bindFlags(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	return nil
}

// settings loads the configuration and applies flag overrides
func settings() (*config.Config, logger.Logger, error) {
	cfg := config.Default()
	if path := viper.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	if author := viper.GetString("author"); author != "" {
		cfg.Extraction.Author = author
	}
	if workers := viper.GetInt("workers"); workers > 0 {
		cfg.Scan.Workers = workers
	}
	if dedupe := viper.GetString("dedupe"); dedupe != "" {
		cfg.Scan.Dedupe = dedupe
	}
	if viper.GetBool("debug") {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

// openSource returns the word-stream source for format and the file
// extension its documents carry
func openSource(format string, cfg *config.Config) (source.Source, string, error) {
	switch format {
	case "", "pdf":
		return pdfsource.NewWithConfig(cfg.PDF()), ".pdf", nil
	case "dump":
		return source.NewDumpSource(), ".json", nil
	default:
		return nil, "", fmt.Errorf("unsupported format %q (use pdf or dump)", format)
	}
}

// expandPaths replaces directories with the files inside them that have
// extension ext, sorted by name
func expandPaths(args []string, ext string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ext) {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s documents found", ext)
	}
	return paths, nil
}
