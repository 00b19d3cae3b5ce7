package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 24, cfg.JWT.AccessTokenExpireHours)
	assert.Equal(t, "moonshot-v1-8k", cfg.LLM.Model)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout())
	assert.Equal(t, StorageDriverLocal, cfg.Storage.Driver)
	assert.Equal(t, "/static/uploads", cfg.Storage.Local.URLPrefix)
	assert.False(t, cfg.Elasticsearch.Enabled)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
server:
  port: "9090"
jwt:
  secret: "from-file"
  algorithm: "HS512"
llm:
  model: "moonshot-v1-32k"
  timeout_seconds: 3
storage:
  driver: "minio"
`)
	envPath := writeFile(t, dir, "test.env", "KIMI_API_KEY=kimi-from-dotenv\n")
	t.Setenv("DATABASE_URL", "user:pw@tcp(db:3306)/qa")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("KIMI_API_KEY", "")
	require.NoError(t, os.Unsetenv("KIMI_API_KEY"))

	cfg, err := Load(path, envPath)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "HS512", cfg.JWT.Algorithm)
	assert.Equal(t, "user:pw@tcp(db:3306)/qa", cfg.Database.MySQL.DSN)
	assert.Equal(t, "kimi-from-dotenv", cfg.LLM.APIKey)
	assert.Equal(t, "moonshot-v1-32k", cfg.LLM.Model)
	assert.Equal(t, 3*time.Second, cfg.LLM.Timeout())
	assert.Equal(t, StorageDriverMinIO, cfg.Storage.Driver)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			JWT:     JWTConfig{Secret: "s", Algorithm: "HS256", AccessTokenExpireHours: 24},
			LLM:     LLMConfig{TimeoutSeconds: 10},
			Storage: StorageConfig{Driver: StorageDriverLocal},
		}
	}
	require.NoError(t, valid().Validate())

	c := valid()
	c.JWT.Secret = ""
	assert.Error(t, c.Validate())

	c = valid()
	c.JWT.Algorithm = "RS256"
	assert.Error(t, c.Validate())

	c = valid()
	c.Storage.Driver = "s3"
	assert.Error(t, c.Validate())

	c = valid()
	c.LLM.TimeoutSeconds = 0
	assert.Error(t, c.Validate())
}
