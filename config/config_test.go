package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_USER", "chat")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "groupchat")
}

func TestLoadConfigDefaults(t *testing.T) {
	req := require.New(t)
	setRequired(t)

	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal("localhost", cfg.DB.Host)
	req.Equal(5432, cfg.DB.Port)
	req.Equal(10, cfg.DB.MaxSize)
	req.Equal("8080", cfg.Server.Port)
	req.Positive(cfg.Auth.BcryptCost)
}

func TestLoadConfigCollectsErrors(t *testing.T) {
	req := require.New(t)
	setRequired(t)
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("BCRYPT_COST", "99")

	_, err := LoadConfig()
	req.Error(err)
	// Both problems are reported in one pass.
	req.Contains(err.Error(), "DB_PORT")
	req.Contains(err.Error(), "BCRYPT_COST")
}

func TestLoadConfigOverrides(t *testing.T) {
	req := require.New(t)
	setRequired(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DB_POOL_SIZE", "25")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal("db.internal", cfg.DB.Host)
	req.Equal(6432, cfg.DB.Port)
	req.Equal(25, cfg.DB.MaxSize)
	req.Equal("9090", cfg.Server.Port)
}
