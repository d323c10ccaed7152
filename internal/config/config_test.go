package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("LOGIN_LOCK_WINDOW", "2m")
	t.Setenv("IS_PROD", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 2*time.Minute, cfg.LoginLockWindow)
	assert.Equal(t, int64(5), cfg.LoginMaxAttempts)
	assert.True(t, cfg.IsProd)
	assert.Equal(t, "car_rental:pw@tcp(127.0.0.1:3306)/car_rental?parseTime=true&charset=utf8mb4", cfg.DSN())
}

func TestValidateServer_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err, "migrations run without a JWT secret")
	require.Error(t, cfg.ValidateServer())

	cfg.JWTSecret = "s3cret"
	require.NoError(t, cfg.ValidateServer())
}
