package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dbsmedya/shelterstats/internal/logger"
	"github.com/dbsmedya/shelterstats/internal/shelter"
)

// CSVLoader reads observations from a CSV file with a header row.
type CSVLoader struct {
	Path   string
	logger *logger.Logger
}

// Load opens Path and parses it.
func (l *CSVLoader) Load(ctx context.Context) (shelter.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, skipped, err := ParseCSV(f, l.Path)
	if err != nil {
		return nil, err
	}

	if l.logger != nil {
		l.logger.Infow("Loaded dataset", "path", l.Path, "rows", len(ds), "skipped", skipped)
	}
	return ds, nil
}

// missingTokens are the cell values read as "no value", the same set
// spreadsheet and dataframe exports write for blanks.
var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
}

// ParseCSV parses CSV data into observations. Header names are matched
// after snake-casing ("Days In Shelter" -> "days_in_shelter"); unknown
// columns are ignored. Rows with a missing duration (empty, NA, NaN, null)
// are skipped and counted. Infinite or negative durations are errors.
func ParseCSV(r io.Reader, name string) (shelter.Dataset, int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	// Read header
	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, &shelter.MissingColumnError{Source: name, Columns: shelter.MissingColumns(nil)}
		}
		return nil, 0, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	index := make(map[string]int, len(headers))
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = toSnakeCase(strings.TrimSpace(h))
		index[keys[i]] = i
	}
	if missing := shelter.MissingColumns(keys); len(missing) > 0 {
		return nil, 0, &shelter.MissingColumnError{Source: name, Columns: missing}
	}

	var (
		ds      shelter.Dataset
		skipped int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", name, err)
		}
		line, _ := reader.FieldPos(0)

		field := func(col string) string {
			return strings.TrimSpace(row[index[col]])
		}

		daysText := field(shelter.ColumnDaysInShelter)
		if missingTokens[daysText] {
			skipped++
			continue
		}
		days, err := strconv.ParseFloat(daysText, 64)
		if err == nil && math.IsNaN(days) {
			skipped++
			continue
		}
		if err == nil {
			err = checkDuration(days)
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%s line %d: invalid %s %q: %w", name, line, shelter.ColumnDaysInShelter, daysText, err)
		}

		year, err := parseYear(field(shelter.ColumnYear))
		if err != nil {
			return nil, 0, fmt.Errorf("%s line %d: invalid %s: %w", name, line, shelter.ColumnYear, err)
		}

		ds = append(ds, shelter.Observation{
			Species:       field(shelter.ColumnSpecies),
			Breed:         field(shelter.ColumnBreed),
			OutcomeType:   field(shelter.ColumnOutcomeType),
			Year:          year,
			DaysInShelter: days,
		})
	}

	return ds, skipped, nil
}

// parseYear accepts "2019" and exports like "2019.0".
func parseYear(s string) (int, error) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not a year", s)
	}
	return int(f), nil
}

// toSnakeCase converts "Column Name" -> "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
