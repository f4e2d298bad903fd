// Package source loads shelter observations from CSV files, MySQL or
// PostgreSQL tables.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/dbsmedya/shelterstats/internal/config"
	"github.com/dbsmedya/shelterstats/internal/logger"
	"github.com/dbsmedya/shelterstats/internal/shelter"
)

// Loader loads a dataset.
type Loader interface {
	Load(ctx context.Context) (shelter.Dataset, error)
}

// New builds the loader selected by cfg.Type.
func New(cfg *config.SourceConfig, log *logger.Logger) (Loader, error) {
	if log == nil {
		log = logger.NewDefault()
	}
	log = log.WithSource(cfg.Type)

	switch cfg.Type {
	case "csv", "":
		return &CSVLoader{Path: cfg.Path, logger: log}, nil
	case "mysql":
		return &MySQLLoader{Config: &cfg.MySQL, Table: cfg.Table, logger: log}, nil
	case "postgres":
		return &PostgresLoader{URL: cfg.Postgres.URL, Table: cfg.Table, logger: log}, nil
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Type)
	}
}

// validIdentifierRegex allows an optional schema prefix: "schema.table".
var validIdentifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// InvalidTableError is returned for table names that are not plain identifiers.
type InvalidTableError struct {
	Name string
}

func (e *InvalidTableError) Error() string {
	return "invalid table name: " + e.Name + " (must be [schema.]table of letters, digits and underscores)"
}

func checkTable(name string) ([]string, error) {
	if !validIdentifierRegex.MatchString(name) {
		return nil, &InvalidTableError{Name: name}
	}
	return strings.Split(name, "."), nil
}

// ErrInvalidDuration is returned for durations that are infinite or negative.
var ErrInvalidDuration = errors.New("days_in_shelter must be a finite, non-negative number")

// checkDuration rejects values no shelter stay can have. NaN is not
// checked here: callers treat it as a missing value.
func checkDuration(days float64) error {
	if math.IsInf(days, 0) || days < 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidDuration, days)
	}
	return nil
}

// rowScanner is the part of *sql.Rows and pgx.Rows the loaders read.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// scanObservations reads species, breed, outcome_type, year and
// days_in_shelter in that order. Rows with a NULL or NaN duration are
// skipped and counted.
func scanObservations(rows rowScanner) (shelter.Dataset, int, error) {
	var (
		ds      shelter.Dataset
		skipped int
	)
	for rows.Next() {
		var (
			species, breed, outcome sql.NullString
			year                    sql.NullInt64
			days                    sql.NullFloat64
		)
		if err := rows.Scan(&species, &breed, &outcome, &year, &days); err != nil {
			return nil, 0, fmt.Errorf("failed to scan observation: %w", err)
		}
		if !days.Valid || math.IsNaN(days.Float64) {
			skipped++
			continue
		}
		if err := checkDuration(days.Float64); err != nil {
			return nil, 0, fmt.Errorf("observation %d: %w", len(ds)+skipped+1, err)
		}
		ds = append(ds, shelter.Observation{
			Species:       species.String,
			Breed:         breed.String,
			OutcomeType:   outcome.String,
			Year:          int(year.Int64),
			DaysInShelter: days.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read observations: %w", err)
	}
	return ds, skipped, nil
}
