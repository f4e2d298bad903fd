package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/shelterstats/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.DatabaseConfig
		expected string
	}{
		{
			name: "preferred TLS",
			cfg: &config.DatabaseConfig{
				Host: "localhost", Port: 3306, User: "root", Password: "secret",
				Database: "shelter", TLS: "preferred",
			},
			expected: "root:secret@tcp(localhost:3306)/shelter?parseTime=true&tls=preferred",
		},
		{
			name: "no database, TLS unset",
			cfg: &config.DatabaseConfig{
				Host: "localhost", Port: 3306, User: "root", Password: "secret",
			},
			expected: "root:secret@tcp(localhost:3306)/?parseTime=true&tls=preferred",
		},
		{
			name: "TLS disabled",
			cfg: &config.DatabaseConfig{
				Host: "localhost", Port: 3306, User: "root", Password: "secret",
				Database: "shelter", TLS: "disable",
			},
			expected: "root:secret@tcp(localhost:3306)/shelter?parseTime=true&tls=false",
		},
		{
			name: "TLS required",
			cfg: &config.DatabaseConfig{
				Host: "db.internal", Port: 33060, User: "reports", Password: "p@ss!w0rd#123",
				Database: "shelter", TLS: "required",
			},
			expected: "reports:p@ss!w0rd#123@tcp(db.internal:33060)/shelter?parseTime=true&tls=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildDSN(tt.cfg))
		})
	}
}

func TestDriverConfig(t *testing.T) {
	dc := driverConfig(&config.DatabaseConfig{Host: "::1", Port: 3306, Database: "shelter"})
	assert.Equal(t, "[::1]:3306", dc.Addr)
	assert.True(t, dc.ParseTime)
	assert.Equal(t, "preferred", dc.TLSConfig)
}

func TestNewManager(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "localhost", Port: 3306, User: "root", Database: "shelter"}

	manager := NewManager(cfg)
	require.NotNil(t, manager)
	assert.Same(t, cfg, manager.config)
	assert.Nil(t, manager.DB)
	assert.Equal(t, 3, manager.maxRetries)
	assert.Equal(t, time.Second, manager.backoff)
}

func TestManagerWithoutConnect(t *testing.T) {
	manager := NewManager(&config.DatabaseConfig{Host: "localhost"})

	assert.NoError(t, manager.Close())
	assert.ErrorIs(t, manager.Ping(context.Background()), ErrNotConnected)
}

func TestManagerPingAndClose(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	manager := NewManager(&config.DatabaseConfig{Host: "localhost"})
	manager.DB = db

	mock.ExpectPing()
	assert.NoError(t, manager.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("gone away"))
	assert.ErrorContains(t, manager.Ping(context.Background()), "gone away")

	mock.ExpectClose()
	assert.NoError(t, manager.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnect_Unreachable(t *testing.T) {
	manager := NewManager(&config.DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     1,
		User:     "root",
		Database: "shelter",
		TLS:      "disable",
	})
	manager.backoff = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := manager.Connect(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Nil(t, manager.DB)
}

func TestConnect_CancelledContext(t *testing.T) {
	manager := NewManager(&config.DatabaseConfig{Host: "127.0.0.1", Port: 1, TLS: "disable"})
	manager.backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := manager.Connect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
