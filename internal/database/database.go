// Package database provides MySQL connection management for the shelter
// dataset source.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/dbsmedya/shelterstats/internal/config"
)

// ErrNotConnected is returned by Ping before Connect succeeded.
var ErrNotConnected = errors.New("not connected")

const dialTimeout = 5 * time.Second

// Manager owns the connection to the MySQL database holding observations.
type Manager struct {
	DB         *sql.DB
	config     *config.DatabaseConfig
	maxRetries int
	backoff    time.Duration
}

// NewManager creates a new database manager from configuration.
func NewManager(cfg *config.DatabaseConfig) *Manager {
	return &Manager{
		config:     cfg,
		maxRetries: 3,
		backoff:    time.Second,
	}
}

// Connect opens and pings the database, retrying with exponential backoff.
func (m *Manager) Connect(ctx context.Context) error {
	var lastErr error
	wait := m.backoff
	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		db, err := m.open()
		if err == nil {
			if err = db.PingContext(ctx); err == nil {
				m.DB = db
				return nil
			}
			_ = db.Close()
		}
		lastErr = err

		if attempt == m.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to connect to %s: %w", m.config.Host, ctx.Err())
		case <-time.After(wait):
			wait *= 2
		}
	}
	return fmt.Errorf("failed to connect to %s after %d attempts: %w", m.config.Host, m.maxRetries, lastErr)
}

func (m *Manager) open() (*sql.DB, error) {
	dc := driverConfig(m.config)
	dc.Timeout = dialTimeout

	connector, err := mysql.NewConnector(dc)
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(connector)

	if m.config.MaxConnections > 0 {
		db.SetMaxOpenConns(m.config.MaxConnections)
	}
	if m.config.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(m.config.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(10 * time.Minute)
	return db, nil
}

// driverConfig maps the YAML settings onto the driver's config. TLS modes
// are disable, required and preferred (the default).
func driverConfig(cfg *config.DatabaseConfig) *mysql.Config {
	dc := mysql.NewConfig()
	dc.User = cfg.User
	dc.Passwd = cfg.Password
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dc.DBName = cfg.Database
	dc.ParseTime = true

	switch cfg.TLS {
	case "disable":
		dc.TLSConfig = "false"
	case "required":
		dc.TLSConfig = "true"
	default:
		dc.TLSConfig = "preferred"
	}
	return dc
}

// BuildDSN renders the connection settings as a driver DSN.
func BuildDSN(cfg *config.DatabaseConfig) string {
	return driverConfig(cfg).FormatDSN()
}

// Close closes the connection if one is open.
func (m *Manager) Close() error {
	if m.DB == nil {
		return nil
	}
	if err := m.DB.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.DB == nil {
		return ErrNotConnected
	}
	if err := m.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}
