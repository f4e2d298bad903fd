package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dbsmedya/shelterstats/internal/logger"
	"github.com/dbsmedya/shelterstats/internal/shelter"
)

// PostgresLoader reads observations from a PostgreSQL table.
type PostgresLoader struct {
	URL    string
	Table  string
	logger *logger.Logger
}

// Load connects, reads the table and closes the connection.
func (l *PostgresLoader) Load(ctx context.Context) (shelter.Dataset, error) {
	parts, err := checkTable(l.Table)
	if err != nil {
		return nil, err
	}

	conn, err := pgx.Connect(ctx, l.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer conn.Close(ctx)

	quoted := pgx.Identifier(parts).Sanitize()

	probe, err := conn.Query(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", quoted))
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", l.Table, err)
	}
	columns := fieldNames(probe.FieldDescriptions())
	probe.Close()
	if err := probe.Err(); err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", l.Table, err)
	}
	if missing := shelter.MissingColumns(columns); len(missing) > 0 {
		return nil, &shelter.MissingColumnError{Source: l.Table, Columns: missing}
	}

	rows, err := conn.Query(ctx, selectColumns(quoted))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", l.Table, err)
	}
	defer rows.Close()

	ds, skipped, err := scanObservations(rows)
	if err != nil {
		return nil, err
	}

	if l.logger != nil {
		l.logger.Infow("Loaded dataset", "table", l.Table, "rows", len(ds), "skipped", skipped)
	}
	return ds, nil
}

func fieldNames(fds []pgconn.FieldDescription) []string {
	names := make([]string, len(fds))
	for i, fd := range fds {
		names[i] = fd.Name
	}
	return names
}

// selectColumns builds the observation query for an already quoted table.
func selectColumns(quotedTable string) string {
	cols := make([]string, len(shelter.RequiredColumns))
	for i, c := range shelter.RequiredColumns {
		cols[i] = pgx.Identifier{c}.Sanitize()
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), quotedTable)
}
