package config_test

import (
	"testing"
	"time"

	"github.com/chrisdamba/delaycompanion/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "delaycompanion", cfg.Database.Name)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":8080")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_DB", "records")
	t.Setenv("MAX_CONNS", "7")
	t.Setenv("APP_ENV", "production")

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.Contains(t, cfg.Database.DSN(), "dbname=records")
	assert.Contains(t, cfg.Database.DSN(), "pool_max_conns=7")
}

func TestNewConfigInvalidDuration(t *testing.T) {
	t.Setenv("SERVER_WRITE_TIMEOUT", "not-a-duration")

	cfg, err := config.NewConfig()
	assert.Nil(t, cfg)
	assert.Error(t, err)
}
