package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validConfig = `
app:
  port: 8080
  gin_mode: release
  log_level: info
database:
  dsn: "host=localhost user=knowmate dbname=knowmate"
redis:
  addr: "localhost:6379"
  db: 0
jwt:
  secret: "file-secret"
  issuer: "knowmate"
  access_ttl: 15m
  refresh_ttl: 168h
otp:
  length: 6
smtp:
  host: ""
  port: 587
casbin:
  model_path: "config/rbac_model.conf"
`

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, validConfig)
	t.Setenv("KNOWMATE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 6, cfg.OTPLength)
	assert.Equal(t, "config/rbac_model.conf", cfg.CasbinModelPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, validConfig)
	t.Setenv("KNOWMATE_CONFIG", path)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "redis.internal:6379", cfg.RedisAddr)
}

func TestLoad_DefaultOTPLength(t *testing.T) {
	path := writeConfigFile(t, `
app:
  port: 8080
jwt:
  access_ttl: 15m
  refresh_ttl: 168h
`)
	t.Setenv("KNOWMATE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.OTPLength)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
	}{
		{
			name:    "missing file",
			missing: true,
		},
		{
			name:    "invalid yaml",
			content: "app: [not a mapping",
		},
		{
			name: "bad access ttl",
			content: `
jwt:
  access_ttl: soon
  refresh_ttl: 168h
`,
		},
		{
			name: "bad refresh ttl",
			content: `
jwt:
  access_ttl: 15m
  refresh_ttl: eventually
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.missing {
				t.Setenv("KNOWMATE_CONFIG", filepath.Join(t.TempDir(), "nope.yml"))
			} else {
				t.Setenv("KNOWMATE_CONFIG", writeConfigFile(t, tt.content))
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
