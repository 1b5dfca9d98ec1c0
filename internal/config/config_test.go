package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnvVars(t *testing.T) {
	t.Helper()
	vars := []string{
		"CARDIAC_SERVER_HOST",
		"CARDIAC_SERVER_PORT",
		"CARDIAC_STORAGE_DRIVER",
		"CARDIAC_STORAGE_SQLITE_PATH",
		"CARDIAC_DATABASE_HOST",
		"CARDIAC_AUTH_API_TOKEN",
		"CARDIAC_LIMITS_REQUESTS_PER_SECOND",
		"CARDIAC_LOGGING_LEVEL",
		"CARDIAC_ENVIRONMENT",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}

func TestNewManager_Defaults(t *testing.T) {
	clearEnvVars(t)

	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.GetConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "./data/studies.db", cfg.Storage.SQLitePath)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "cardiac_report", cfg.Database.Database)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.False(t, cfg.Database.RunMigrations)

	assert.Equal(t, "", cfg.Auth.APIToken)

	assert.Equal(t, 25.0, cfg.Limits.RequestsPerSecond)
	assert.Equal(t, 50, cfg.Limits.Burst)
	assert.Equal(t, 256, cfg.Limits.ReportCacheSize)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)

	assert.NoError(t, m.Validate())
}

func TestNewManager_EnvironmentOverrides(t *testing.T) {
	clearEnvVars(t)

	os.Setenv("CARDIAC_SERVER_PORT", "9090")
	os.Setenv("CARDIAC_STORAGE_DRIVER", "postgres")
	os.Setenv("CARDIAC_DATABASE_HOST", "db.internal")
	os.Setenv("CARDIAC_AUTH_API_TOKEN", "secret")
	os.Setenv("CARDIAC_LOGGING_LEVEL", "debug")
	defer clearEnvVars(t)

	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.GetConfig()
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.Auth.APIToken)
	assert.Equal(t, "debug", cfg.Logging.Level)

	assert.NoError(t, m.Validate())
}

func TestValidate(t *testing.T) {
	clearEnvVars(t)

	tests := []struct {
		name    string
		mutate  func(m *Manager)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(m *Manager) {},
		},
		{
			name:    "invalid port",
			mutate:  func(m *Manager) { m.config.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "port too large",
			mutate:  func(m *Manager) { m.config.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "unknown storage driver",
			mutate:  func(m *Manager) { m.config.Storage.Driver = "oracle" },
			wantErr: "unknown storage driver",
		},
		{
			name: "sqlite without path",
			mutate: func(m *Manager) {
				m.config.Storage.Driver = "sqlite"
				m.config.Storage.SQLitePath = ""
			},
			wantErr: "sqlite path is required",
		},
		{
			name: "postgres without host",
			mutate: func(m *Manager) {
				m.config.Storage.Driver = "postgres"
				m.config.Database.Host = ""
			},
			wantErr: "database host is required",
		},
		{
			name: "postgres without database name",
			mutate: func(m *Manager) {
				m.config.Storage.Driver = "postgres"
				m.config.Database.Database = ""
			},
			wantErr: "database name is required",
		},
		{
			name: "postgres without username",
			mutate: func(m *Manager) {
				m.config.Storage.Driver = "postgres"
				m.config.Database.Username = ""
			},
			wantErr: "database username is required",
		},
		{
			name:    "non-positive rate limit",
			mutate:  func(m *Manager) { m.config.Limits.RequestsPerSecond = 0 },
			wantErr: "requests per second must be positive",
		},
		{
			name:    "invalid log level",
			mutate:  func(m *Manager) { m.config.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewManager()
			require.NoError(t, err)

			tt.mutate(m)

			err = m.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDatabaseConnectionString(t *testing.T) {
	clearEnvVars(t)

	m, err := NewManager()
	require.NoError(t, err)

	m.config.Database.Host = "db.internal"
	m.config.Database.Port = 5433
	m.config.Database.Username = "cardiac"
	m.config.Database.Password = "pw"
	m.config.Database.Database = "studies"
	m.config.Database.SSLMode = "require"

	got := m.GetDatabaseConnectionString()
	assert.Equal(t, "host=db.internal port=5433 user=cardiac password=pw dbname=studies sslmode=require", got)
}

func TestSectionAccessors(t *testing.T) {
	clearEnvVars(t)

	m, err := NewManager()
	require.NoError(t, err)

	assert.Equal(t, m.GetConfig().Server, *m.GetServerConfig())
	assert.Equal(t, m.GetConfig().Database, *m.GetDatabaseConfig())
	assert.Equal(t, m.GetConfig().Storage, *m.GetStorageConfig())
}

func TestEnvironmentMode(t *testing.T) {
	clearEnvVars(t)

	m, err := NewManager()
	require.NoError(t, err)

	assert.True(t, m.IsDevelopment())
	assert.False(t, m.IsProduction())

	os.Setenv("CARDIAC_ENVIRONMENT", "production")
	defer clearEnvVars(t)

	assert.True(t, m.IsProduction())
	assert.False(t, m.IsDevelopment())
}
