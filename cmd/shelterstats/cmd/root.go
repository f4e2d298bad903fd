package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/shelterstats/internal/config"
	"github.com/dbsmedya/shelterstats/internal/database"
	"github.com/dbsmedya/shelterstats/internal/logger"
	"github.com/dbsmedya/shelterstats/internal/report"
	"github.com/dbsmedya/shelterstats/internal/shelter"
	"github.com/dbsmedya/shelterstats/internal/source"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	outputDir string
	inputFile string
)

var rootCmd = &cobra.Command{
	Use:   "shelterstats",
	Short: "Animal shelter stay-duration charts",
	Long: `Render charts of how long animals stay in a shelter before their outcome.

Reports:
  - breeds:  box plot of days in shelter for the most frequent dog breeds,
             each box labelled with its observation count
  - species: density of days in shelter for cats and dogs with mean markers

The dataset is read from a CSV file, a MySQL table or a PostgreSQL table.
Images are written to <output dir>/<name>.png; the directory must exist.`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "shelterstats.yaml",
		"Path to configuration file (defaults are used when it does not exist)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Input/output overrides
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "",
		"Override the image output directory")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "",
		"Read observations from this CSV file instead of the configured source")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
	OutputDir string
	Input     string
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		OutputDir: outputDir,
		Input:     inputFile,
	}
}

// loadConfig loads, overrides and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.OutputDir, overrides.Input)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// session is what every report command needs: config, logger, reporter and
// the loaded dataset.
type session struct {
	cfg      *config.Config
	log      *logger.Logger
	reporter *report.Reporter
	data     shelter.Dataset
}

func newSession(ctx context.Context) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	reporter, err := report.NewReporter(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create reporter: %w", err)
	}

	data, err := loadDataset(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, log: log, reporter: reporter, data: data}, nil
}

// loadDataset reads the configured source. SIGINT/SIGTERM cancel the load.
func loadDataset(ctx context.Context, cfg *config.Config, log *logger.Logger) (shelter.Dataset, error) {
	ctx, stop := database.SignalContext(ctx, func(sig os.Signal) {
		log.Warnf("Received signal %v, cancelling dataset load", sig)
	})
	defer stop()

	loader, err := source.New(&cfg.Source, log)
	if err != nil {
		return nil, err
	}
	data, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	log.Debugw("Dataset ready", "source", cfg.Source.Type, "rows", len(data))
	return data, nil
}
