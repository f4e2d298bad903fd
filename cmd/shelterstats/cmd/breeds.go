package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var breedsName string

var breedsCmd = &cobra.Command{
	Use:   "breeds",
	Short: "Render the days-in-shelter box plot by dog breed",
	Long: `Breeds filters the dataset to the configured slice (by default dogs
adopted in 2019), keeps the most frequent breeds and draws one box per breed.
Each box is labelled with its observation count just above its 75th
percentile.

Example:
  shelterstats breeds --input data/animal_outcomes.csv --name breeds_2019`,
	RunE: runBreeds,
}

func init() {
	breedsCmd.Flags().StringVarP(&breedsName, "name", "n", "",
		"Image file name without extension (default from config)")
	rootCmd.AddCommand(breedsCmd)
}

func runBreeds(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	name := breedsName
	if name == "" {
		name = s.cfg.Breeds.FileName
	}

	res, err := s.reporter.BreedDaysInShelter(s.data, name)
	if err != nil {
		return fmt.Errorf("breed report failed: %w", err)
	}
	cmd.Printf("Wrote %s (%d breeds)\n", res.Path, len(res.Breeds))
	return nil
}
