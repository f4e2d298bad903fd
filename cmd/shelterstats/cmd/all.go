package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Render every report",
	Long: `All loads the dataset once and renders the breed and species reports
under their configured file names.

Example:
  shelterstats all --config shelterstats.yaml --output-dir images`,
	RunE: runAll,
}

func init() {
	rootCmd.AddCommand(allCmd)
}

func runAll(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	breeds, err := s.reporter.BreedDaysInShelter(s.data, s.cfg.Breeds.FileName)
	if err != nil {
		return fmt.Errorf("breed report failed: %w", err)
	}
	cmd.Printf("Wrote %s\n", breeds.Path)

	species, err := s.reporter.SpeciesDistribution(s.data, s.cfg.Species.FileName)
	if err != nil {
		return fmt.Errorf("species report failed: %w", err)
	}
	cmd.Printf("Wrote %s\n", species.Path)
	return nil
}
