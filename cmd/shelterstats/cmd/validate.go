package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/shelterstats/internal/config"
	"github.com/dbsmedya/shelterstats/internal/logger"
	"github.com/dbsmedya/shelterstats/internal/report"
)

var validateSource bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and optionally the dataset source",
	Long: `Validate checks the configuration file and, with --source, loads the
dataset to make sure both report slices are non-empty.

Checks performed:
  - Configuration syntax and required fields
  - Output file names and cohort colors
  - Dataset source reachable and required columns present (--source)
  - Breed slice and every cohort slice have observations (--source)

Example:
  shelterstats validate --config shelterstats.yaml --source`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateSource, "source", false,
		"Also load the dataset and check the report slices")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cmd.Printf("\n=== Configuration Validation ===\n")
	cmd.Printf("Config file: %s\n", GetConfigFile())

	cfg, err := loadConfig()
	if err != nil {
		cmd.Printf("❌ %v\n", err)
		return err
	}
	cmd.Printf("Source: %s\n", describeSource(&cfg.Source))
	cmd.Printf("Output dir: %s\n", cfg.Output.Dir)

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	reporter, err := report.NewReporter(cfg, log)
	if err != nil {
		cmd.Printf("❌ %v\n", err)
		return err
	}
	for _, name := range []string{cfg.Breeds.FileName, cfg.Species.FileName} {
		path, err := reporter.OutputPath(name)
		if err != nil {
			cmd.Printf("❌ %v\n", err)
			return err
		}
		cmd.Printf("Image: %s\n", path)
	}
	cmd.Printf("✅ Configuration is valid\n")

	if !validateSource {
		return nil
	}

	cmd.Printf("\n=== Source Validation ===\n")
	data, err := loadDataset(context.Background(), cfg, log)
	if err != nil {
		cmd.Printf("❌ %v\n", err)
		return err
	}
	cmd.Printf("Rows: %d\n", len(data))

	sum, err := reporter.Summarize(data)
	if err != nil {
		cmd.Printf("❌ %v\n", err)
		return err
	}
	cmd.Printf("Breeds in slice (%s): %d\n", sum.BreedSlice, len(sum.Breeds))
	for _, c := range sum.Cohorts {
		cmd.Printf("Cohort %s: %d observations\n", c.Label, c.Count)
	}
	cmd.Printf("✅ Source is valid\n")
	return nil
}

func describeSource(sc *config.SourceConfig) string {
	switch sc.Type {
	case "mysql":
		return fmt.Sprintf("mysql %s@%s:%d/%s table %s",
			sc.MySQL.User, sc.MySQL.Host, sc.MySQL.Port, sc.MySQL.Database, sc.Table)
	case "postgres":
		return "postgres table " + sc.Table
	default:
		return "csv " + sc.Path
	}
}
