// config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "skycart", cfg.MongoDBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.DefaultPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("DEFAULT_PAGE_SIZE", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 25, cfg.DefaultPageSize)
}

func TestValidateRequiresSecret(t *testing.T) {
	cfg := &Config{MongoURI: "mongodb://localhost", MongoDBName: "skycart"}
	require.Error(t, cfg.Validate())

	cfg.JWTSecret = "s"
	require.NoError(t, cfg.Validate())
}
