package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/shelterstats/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the numbers behind the charts",
	Long: `Summary prints the per-breed quantiles and counts and the per-cohort
means without rendering any image.

Example:
  shelterstats summary --input data/animal_outcomes.csv`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	sum, err := s.reporter.Summarize(s.data)
	if err != nil {
		return fmt.Errorf("summary failed: %w", err)
	}
	printSummary(cmd.OutOrStdout(), sum, s.cfg.Breeds.Quantile)
	return nil
}

func printSummary(w io.Writer, sum *report.Summary, q float64) {
	fmt.Fprintf(w, "%s (%s)\n", color.Bold.Sprint("Breeds"), sum.BreedSlice)
	rows := make([][]string, 0, len(sum.Breeds))
	for _, b := range sum.Breeds {
		rows = append(rows, []string{
			b.Key,
			strconv.Itoa(b.Count),
			strconv.FormatFloat(b.Quantile, 'f', 2, 64),
		})
	}
	pct := "p" + strconv.FormatFloat(q*100, 'f', -1, 64)
	writeTable(w, []string{"BREED", "COUNT", pct}, rows)

	fmt.Fprintf(w, "\n%s\n", color.Bold.Sprint("Cohorts"))
	rows = rows[:0]
	for _, c := range sum.Cohorts {
		rows = append(rows, []string{
			c.Label,
			c.Species,
			strconv.Itoa(c.Count),
			strconv.FormatFloat(c.Mean, 'f', 2, 64),
		})
	}
	writeTable(w, []string{"COHORT", "SPECIES", "COUNT", "MEAN"}, rows)
}

// writeTable prints rows in columns padded to their display width, so breed
// names with wide characters still line up.
func writeTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := runewidth.StringWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = color.Cyan.Sprint(runewidth.FillRight(h, widths[i]))
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))

	for _, row := range rows {
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}
