package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, doc map[string]any) string {
	t.Helper()
	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, out, 0o600))
	return path
}

func TestDecodeFile(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"

	t.Run("Reads yaml and applies defaults", func(t *testing.T) {
		path := writeConfig(t, map[string]any{
			"server":   map[string]any{"port": 8080, "env": "staging"},
			"database": map[string]any{"dsn": "postgres://blog@localhost/blog"},
			"jwt":      map[string]any{"secret": secret, "access_ttl": "10m"},
		})
		cfg, err := DecodeFile(path)
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "staging", cfg.Server.Env)
		assert.Equal(t, 10*time.Minute, cfg.JWT.AccessTTL)
		assert.Equal(t, 24*time.Hour, cfg.JWT.RefreshTTL)
		assert.Equal(t, 24*time.Hour, cfg.Accounts.TokenTTL)
		assert.Equal(t, 4, cfg.Pagination.PageSize)
		assert.Equal(t, 100, cfg.Pagination.MaxPageSize)
		assert.Equal(t, "noreply@example.com", cfg.Smtp.Sender)
		assert.False(t, cfg.S3Enabled())
	})

	t.Run("Environment overrides file", func(t *testing.T) {
		t.Setenv("DSN", "postgres://env@localhost/blog")
		path := writeConfig(t, map[string]any{
			"database": map[string]any{"dsn": "postgres://file@localhost/blog"},
			"jwt":      map[string]any{"secret": secret},
		})
		cfg, err := DecodeFile(path)
		require.NoError(t, err)
		assert.Equal(t, "postgres://env@localhost/blog", cfg.Database.DSN)
	})

	t.Run("Missing file falls back to environment", func(t *testing.T) {
		t.Setenv("DSN", "postgres://env@localhost/blog")
		t.Setenv("JWTSECRET", secret)
		cfg, err := DecodeFile(filepath.Join(t.TempDir(), "absent.yml"))
		require.NoError(t, err)
		assert.Equal(t, "postgres://env@localhost/blog", cfg.Database.DSN)
	})

	t.Run("Short jwt secret is rejected", func(t *testing.T) {
		path := writeConfig(t, map[string]any{
			"database": map[string]any{"dsn": "postgres://blog@localhost/blog"},
			"jwt":      map[string]any{"secret": "short"},
		})
		_, err := DecodeFile(path)
		assert.ErrorContains(t, err, "jwt secret")
	})
}
