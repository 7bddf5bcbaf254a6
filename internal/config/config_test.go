package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
neo4j:
  uri: neo4j://graph.internal:7687
  user: reader
  password: s3cret
  database: recipes
server:
  listen_addr: ":8080"
  rate_limit: 5
query:
  timeout: 3s
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "neo4j://graph.internal:7687", cfg.Neo4j.URI)
	assert.Equal(t, "reader", cfg.Neo4j.User)
	assert.Equal(t, "recipes", cfg.Neo4j.Database)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, 5.0, cfg.Server.RateLimit)
	assert.Equal(t, 3*time.Second, cfg.Query.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched keys keep their defaults
	assert.Equal(t, 50, cfg.Neo4j.MaxPoolSize)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.Health.Interval)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "neo4j:\n  uri: neo4j://from-file:7687\n")

	t.Setenv("NEO4J_URI", "bolt://from-env:7687")
	t.Setenv("NEO4J_PASSWORD", "envpass")
	t.Setenv("RECIPES_LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("RECIPES_QUERY_TIMEOUT", "7")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://from-env:7687", cfg.Neo4j.URI)
	assert.Equal(t, "envpass", cfg.Neo4j.Password)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.ListenAddr)
	assert.Equal(t, 7*time.Second, cfg.Query.Timeout)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestValidate_Serve(t *testing.T) {
	cfg := Default()
	cfg.Neo4j.Password = "s3cret"

	result := cfg.ValidateWithMode(ValidationContextServe, ModeDevelopment)
	assert.False(t, result.HasErrors(), result.Error())
	assert.NoError(t, result.Err())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		mode   DeploymentMode
		want   string
	}{
		{"missing password", func(c *Config) { c.Neo4j.Password = "" }, ModeDevelopment, "NEO4J_PASSWORD is required"},
		{"bad scheme", func(c *Config) { c.Neo4j.URI = "http://localhost:7474" }, ModeDevelopment, "not supported"},
		{"insecure password in production", func(c *Config) { c.Neo4j.Password = "neo4j" }, ModeProduction, "insecure default"},
		{"bad listen addr", func(c *Config) { c.Server.ListenAddr = "3000" }, ModeDevelopment, "server.listen_addr"},
		{"burst missing", func(c *Config) { c.Server.RateLimit = 10; c.Server.RateBurst = 0 }, ModeDevelopment, "server.rate_burst"},
		{"negative timeout", func(c *Config) { c.Query.Timeout = -time.Second }, ModeDevelopment, "query.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Neo4j.Password = "s3cret"
			tt.mutate(cfg)

			result := cfg.ValidateWithMode(ValidationContextServe, tt.mode)
			require.True(t, result.HasErrors())
			assert.Contains(t, result.Error(), tt.want)
			assert.Error(t, result.Err())
		})
	}
}

func TestValidate_SeedIgnoresServerSettings(t *testing.T) {
	cfg := Default()
	cfg.Neo4j.Password = "s3cret"
	cfg.Server.ListenAddr = ""

	result := cfg.ValidateWithMode(ValidationContextSeed, ModeDevelopment)
	assert.False(t, result.HasErrors(), result.Error())
}

func TestDetectMode_Override(t *testing.T) {
	t.Setenv("RECIPES_MODE", "prod")
	assert.Equal(t, ModeProduction, DetectMode())
	assert.True(t, DetectMode().RequiresSecureCredentials())

	t.Setenv("RECIPES_MODE", "dev")
	assert.Equal(t, ModeDevelopment, DetectMode())
}

func TestGetDuration(t *testing.T) {
	t.Setenv("TEST_RECIPES_DURATION", "250ms")
	assert.Equal(t, 250*time.Millisecond, GetDuration("TEST_RECIPES_DURATION", time.Second))

	t.Setenv("TEST_RECIPES_DURATION", "4")
	assert.Equal(t, 4*time.Second, GetDuration("TEST_RECIPES_DURATION", time.Second))

	t.Setenv("TEST_RECIPES_DURATION", "soon")
	assert.Equal(t, time.Second, GetDuration("TEST_RECIPES_DURATION", time.Second))
}
