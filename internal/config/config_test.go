package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_CLOUD_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS", "BIGQUERY_DATASET", "BIGQUERY_LOCATION",
		"EXECDASH_WAREHOUSE", "EXECDASH_LIBSQL_URL", "EXECDASH_PORT", "EXECDASH_QUERY_TIMEOUT",
		"EXECDASH_GROSS_MARGIN_PCT", "EXECDASH_MAX_WINDOW_DAYS", "EXECDASH_MAX_CHANNELS",
		"EXECDASH_OTEL_ENABLED", "EXECDASH_OTEL_ENDPOINT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func noEnvFiles(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT_ID", "acme-analytics")

	cfg, err := Load(noEnvFiles(t))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, WarehouseBigQuery, cfg.Warehouse)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 30.0, cfg.GrossMarginPct)
	assert.Equal(t, 365, cfg.MaxWindowDays)
	assert.Equal(t, 50, cfg.MaxChannels)
	assert.Equal(t, "analytics_ecommerce_ecommerce", cfg.BigQuery.Dataset)
	assert.Equal(t, "US", cfg.BigQuery.Location)
	assert.False(t, cfg.OTel.Enabled)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	shared := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(local, []byte("EXECDASH_WAREHOUSE=libsql\nEXECDASH_PORT=9090\n"), 0o644))
	require.NoError(t, os.WriteFile(shared, []byte("EXECDASH_PORT=7070\nEXECDASH_MAX_CHANNELS=10\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("EXECDASH_WAREHOUSE")
		os.Unsetenv("EXECDASH_PORT")
		os.Unsetenv("EXECDASH_MAX_CHANNELS")
	})

	cfg, err := Load(local, shared)
	require.NoError(t, err)
	assert.Equal(t, WarehouseLibSQL, cfg.Warehouse)
	assert.Equal(t, 9090, cfg.Port, ".env.local takes precedence")
	assert.Equal(t, 10, cfg.MaxChannels)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantKey string
	}{
		{
			name:    "missing project",
			env:     map[string]string{},
			wantKey: "GOOGLE_CLOUD_PROJECT_ID",
		},
		{
			name:    "unknown warehouse",
			env:     map[string]string{"EXECDASH_WAREHOUSE": "snowflake"},
			wantKey: "EXECDASH_WAREHOUSE",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"EXECDASH_WAREHOUSE": "libsql", "EXECDASH_QUERY_TIMEOUT": "soon"},
			wantKey: "EXECDASH_QUERY_TIMEOUT",
		},
		{
			name:    "margin out of range",
			env:     map[string]string{"EXECDASH_WAREHOUSE": "libsql", "EXECDASH_GROSS_MARGIN_PCT": "120"},
			wantKey: "EXECDASH_GROSS_MARGIN_PCT",
		},
		{
			name: "unreadable credentials",
			env: map[string]string{
				"GOOGLE_CLOUD_PROJECT_ID":        "acme",
				"GOOGLE_APPLICATION_CREDENTIALS": "/nonexistent/key.json",
			},
			wantKey: "GOOGLE_APPLICATION_CREDENTIALS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(noEnvFiles(t))
			require.Error(t, err)

			var cfgErr *Error
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantKey, cfgErr.Key)
		})
	}
}

func TestValidate_ExpandsCredentials(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	key := filepath.Join(home, "key.json")
	require.NoError(t, os.WriteFile(key, []byte("{}"), 0o600))

	cfg := &Config{
		Warehouse:      WarehouseBigQuery,
		QueryTimeout:   time.Second,
		GrossMarginPct: 30,
		MaxWindowDays:  365,
		MaxChannels:    50,
		BigQuery:       BigQuery{ProjectID: "acme", CredentialsFile: "~/key.json"},
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, key, cfg.BigQuery.CredentialsFile)
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"/etc/key.json", "/etc/key.json"},
		{"~", home},
		{"~/keys/sa.json", filepath.Join(home, "keys/sa.json")},
		{"$HOME/sa.json", home + "/sa.json"},
		{"relative/sa.json", "relative/sa.json"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadLocal_IgnoresBigQuerySettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXECDASH_WAREHOUSE", "bigquery")
	t.Setenv("EXECDASH_LIBSQL_URL", "file:/tmp/sample.db")

	cfg, err := LoadLocal(noEnvFiles(t))
	require.NoError(t, err)
	assert.Equal(t, WarehouseLibSQL, cfg.Warehouse)
	assert.Equal(t, "file:/tmp/sample.db", cfg.LibSQLURL)
}
