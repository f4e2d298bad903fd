package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dbsmedya/shelterstats/internal/config"
	"github.com/dbsmedya/shelterstats/internal/database"
	"github.com/dbsmedya/shelterstats/internal/logger"
	"github.com/dbsmedya/shelterstats/internal/shelter"
)

// MySQLLoader reads observations from a MySQL table.
type MySQLLoader struct {
	Config *config.DatabaseConfig
	Table  string
	logger *logger.Logger
}

// Load connects, reads the table and closes the connection.
func (l *MySQLLoader) Load(ctx context.Context) (shelter.Dataset, error) {
	manager := database.NewManager(l.Config)
	if err := manager.Connect(ctx); err != nil {
		return nil, err
	}
	defer manager.Close()

	return LoadMySQL(ctx, manager.DB, l.Table, l.logger)
}

// LoadMySQL reads observations from table using db. The table's columns are
// probed with a zero-row query first so a schema mismatch reports every
// missing column.
func LoadMySQL(ctx context.Context, db *sql.DB, table string, log *logger.Logger) (shelter.Dataset, error) {
	parts, err := checkTable(table)
	if err != nil {
		return nil, err
	}
	quoted := quoteMySQL(parts)

	probe, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s WHERE 1 = 0", quoted))
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", table, err)
	}
	columns, err := probe.Columns()
	probe.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	if missing := shelter.MissingColumns(columns); len(missing) > 0 {
		return nil, &shelter.MissingColumnError{Source: table, Columns: missing}
	}

	cols := make([]string, len(shelter.RequiredColumns))
	for i, c := range shelter.RequiredColumns {
		cols[i] = quoteMySQL([]string{c})
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), quoted)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	ds, skipped, err := scanObservations(rows)
	if err != nil {
		return nil, err
	}

	if log != nil {
		log.Infow("Loaded dataset", "table", table, "rows", len(ds), "skipped", skipped)
	}
	return ds, nil
}

// quoteMySQL quotes each identifier part with backticks, doubling any
// embedded backtick.
func quoteMySQL(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = "`" + strings.ReplaceAll(p, "`", "``") + "`"
	}
	return strings.Join(quoted, ".")
}
