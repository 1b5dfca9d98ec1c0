package database

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigURL(t *testing.T) {
	cfg := Config{
		Host:        "db.internal",
		Port:        5433,
		Database:    "studies",
		Username:    "cardiac",
		Password:    "pw",
		MaxConns:    25,
		MinConns:    5,
		MaxConnLife: 5 * time.Minute,
		SSLMode:     "require",
	}

	assert.Equal(t, "postgres://cardiac:pw@db.internal:5433/studies?sslmode=require", cfg.URL())
}

func TestConfigURL_Defaults(t *testing.T) {
	cfg := Config{
		Host:     "localhost",
		Port:     5432,
		Database: "cardiac_report",
		Username: "postgres",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://postgres:@localhost:5432/cardiac_report?sslmode=disable", cfg.URL())
}

func TestApplyLimits_Defaults(t *testing.T) {
	cfg := Config{
		Host:     "localhost",
		Port:     5432,
		Database: "cardiac_report",
		Username: "postgres",
		SSLMode:  "disable",
	}
	pc, err := pgxpool.ParseConfig(cfg.URL())
	require.NoError(t, err)

	applyLimits(pc, cfg)

	assert.Equal(t, int32(25), pc.MaxConns)
	assert.Equal(t, int32(0), pc.MinConns)
	assert.Equal(t, 5*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, time.Minute, pc.MaxConnIdleTime)
}

func TestApplyLimits_Configured(t *testing.T) {
	cfg := Config{
		Host:        "db.internal",
		Port:        5433,
		Database:    "studies",
		Username:    "cardiac",
		Password:    "pw",
		MaxConns:    10,
		MinConns:    2,
		MaxConnLife: time.Hour,
		MaxConnIdle: 10 * time.Minute,
		SSLMode:     "require",
	}
	pc, err := pgxpool.ParseConfig(cfg.URL())
	require.NoError(t, err)

	applyLimits(pc, cfg)

	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
	assert.Equal(t, 10*time.Minute, pc.MaxConnIdleTime)
}
