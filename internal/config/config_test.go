package config

import (
	"testing"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, cleanenv.ReadEnv(&cfg))

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "localhost:4001", cfg.Address)
	assert.Equal(t, 4*time.Second, cfg.Timeout)
	assert.Equal(t, "./dealDraft.json", cfg.DraftPath)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CRM_ENV", "local")
	t.Setenv("CRM_ADDRESS", "0.0.0.0:8080")
	t.Setenv("CRM_DB_NAME", "crm_test")

	var cfg Config
	require.NoError(t, cleanenv.ReadEnv(&cfg))

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address)
	assert.Equal(t, "crm_test", cfg.DBName)
}
