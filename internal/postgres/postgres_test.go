package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USERNAME",
		"POSTGRES_PASSWORD", "POSTGRES_DB_NAME", "POSTGRES_SSL_MODE",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_PASSWORD", "secret")

	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, uint16(5432), cfg.Port)
	assert.Equal(t, "postgres", cfg.Username)
	assert.Equal(t, "wallet_client", cfg.DBName)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, "host=localhost port=5432 user=postgres dbname=wallet_client sslmode=disable password=secret", cfg.String())
	assert.NotContains(t, cfg.Redacted(), "secret")
}

func TestConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "6432")
	t.Setenv("POSTGRES_DB_NAME", "wallets")

	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, uint16(6432), cfg.Port)
	assert.Equal(t, "wallets", cfg.DBName)
}

func TestConfigBadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_PORT", "not-a-port")

	_, err := NewConfigFromEnv()
	assert.Error(t, err)
}

func TestMigrationsSource(t *testing.T) {
	migrations, err := Migrations.FindMigrations()
	require.NoError(t, err)
	assert.Len(t, migrations, 1)
	assert.Equal(t, "0001_wallet_sessions", migrations[0].Id)
}
