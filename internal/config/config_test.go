package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

const sampleYAML = `
env: "prod"
store: "memory"
http:
  addr: ":9090"
  enable_hsts: true
auth:
  jwt_secret: "file-secret"
  access_ttl: "2h"
moderation:
  max_length: 500
  forbidden_words: ["lottery", "bet"]
  delete_window: "12h"
cors:
  allowed_origins: ["https://books.example"]
`

const brokenYAML = `
auth:
  jwt_secret: "x"
moderation:
  forbidden_words: ["spam"
`

func TestLoad_ExplicitPath(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, StoreMemory, cfg.Store)
	require.Equal(t, ":9090", cfg.HTTP.Addr)
	require.True(t, cfg.HTTP.EnableHSTS)
	require.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	require.Equal(t, 2*time.Hour, cfg.Auth.AccessTTL)
	require.Equal(t, 500, cfg.Moderation.MaxLength)
	require.Equal(t, []string{"lottery", "bet"}, cfg.Moderation.ForbiddenWords)
	require.Equal(t, 12*time.Hour, cfg.Moderation.DeleteWindow)
	require.Equal(t, []string{"https://books.example"}, cfg.CORS.AllowedOrigins)
	require.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "config.yaml", sampleYAML)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("COMMENT_DELETE_WINDOW", "6h")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	require.Equal(t, 6*time.Hour, cfg.Moderation.DeleteWindow)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "config file does not exist")
}

func TestLoad_BrokenYAML(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_CONFIG_PATH(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "from_env.yaml", sampleYAML)
	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
}

func TestLoad_LocalYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "local.yaml", sampleYAML)
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, StorePostgres, cfg.Store)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, 1000, cfg.Moderation.MaxLength)
	require.Equal(t, []string{"spam", "viagra", "casino"}, cfg.Moderation.ForbiddenWords)
	require.Equal(t, 24*time.Hour, cfg.Moderation.DeleteWindow)
	require.Equal(t, 24*time.Hour, cfg.Auth.AccessTTL)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Store:      StoreMemory,
			HTTP:       HTTPConfig{MaxBodyBytes: 1024},
			Auth:       AuthConfig{JWTSecret: "x", AccessTTL: time.Hour},
			Moderation: ModerationConfig{MaxLength: 1000, DeleteWindow: 24 * time.Hour},
			RateLimit:  RateLimitConfig{RPS: 1, Burst: 1},
		}
	}

	cfg := valid()
	require.NoError(t, cfg.validate())

	cases := map[string]func(c *Config){
		"unknown store":      func(c *Config) { c.Store = "redis" },
		"postgres w/o dsn":   func(c *Config) { c.Store = StorePostgres; c.DB.DSN = "" },
		"missing secret":     func(c *Config) { c.Auth.JWTSecret = "" },
		"zero ttl":           func(c *Config) { c.Auth.AccessTTL = 0 },
		"zero max length":    func(c *Config) { c.Moderation.MaxLength = 0 },
		"tiny window":        func(c *Config) { c.Moderation.DeleteWindow = time.Second },
		"zero burst":         func(c *Config) { c.RateLimit.Burst = 0 },
		"zero body limit":    func(c *Config) { c.HTTP.MaxBodyBytes = 0 },
		"admin w/o password": func(c *Config) { c.Admin.Email = "admin@example.com" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			require.Error(t, c.validate())
		})
	}
}
