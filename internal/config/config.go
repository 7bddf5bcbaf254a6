package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings
type Config struct {
	// Graph store connection
	Neo4j Neo4jConfig `mapstructure:"neo4j"`

	// HTTP API
	Server ServerConfig `mapstructure:"server"`

	// Per-query limits
	Query QueryConfig `mapstructure:"query"`

	// Logger settings
	Log LogConfig `mapstructure:"log"`

	// Background connectivity checks
	Health HealthConfig `mapstructure:"health"`
}

type Neo4jConfig struct {
	URI                   string        `mapstructure:"uri"`
	User                  string        `mapstructure:"user"`
	Password              string        `mapstructure:"password"`
	Database              string        `mapstructure:"database"`
	MaxPoolSize           int           `mapstructure:"max_pool_size"`
	AcquisitionTimeout    time.Duration `mapstructure:"acquisition_timeout"`
	MaxConnectionLifetime time.Duration `mapstructure:"max_connection_lifetime"`
	UseKeychain           bool          `mapstructure:"use_keychain"` // Fall back to the OS keychain when no password is configured
}

type ServerConfig struct {
	ListenAddr   string        `mapstructure:"listen_addr"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	RateLimit    float64       `mapstructure:"rate_limit"` // Requests per second, 0 disables
	RateBurst    int           `mapstructure:"rate_burst"`
}

type QueryConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"` // Caps every per-operation read timeout, 0 keeps them
	WarningRatio float64       `mapstructure:"warning_ratio"` // Warn when a query uses this share of its timeout
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type HealthConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Neo4j: Neo4jConfig{
			URI:                   "neo4j://localhost:7687",
			User:                  "neo4j",
			Database:              "neo4j",
			MaxPoolSize:           50,
			AcquisitionTimeout:    60 * time.Second,
			MaxConnectionLifetime: time.Hour,
			UseKeychain:           true,
		},
		Server: ServerConfig{
			ListenAddr:   ":3000",
			CORSOrigins:  []string{"*"},
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateBurst:    20,
		},
		Query: QueryConfig{
			Timeout:      0,
			WarningRatio: 0.8,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Health: HealthConfig{
			Interval: 30 * time.Second,
		},
	}
}

// Load loads configuration from file, environment and .env files.
// An empty path searches the standard locations; a missing file is not an error.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, Default())

	// RECIPES_NEO4J_URI, RECIPES_SERVER_LISTEN_ADDR, ...
	v.SetEnvPrefix("RECIPES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("recipes")
		v.AddConfigPath(".recipes")
		v.AddConfigPath(".")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".recipes"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)

	// Environment and files take precedence over the keychain
	if cfg.Neo4j.Password == "" && cfg.Neo4j.UseKeychain {
		if password, err := NewKeyringManager(nil).GetNeo4jPassword(cfg.Neo4j.User); err == nil {
			cfg.Neo4j.Password = password
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("neo4j.uri", cfg.Neo4j.URI)
	v.SetDefault("neo4j.user", cfg.Neo4j.User)
	v.SetDefault("neo4j.password", cfg.Neo4j.Password)
	v.SetDefault("neo4j.database", cfg.Neo4j.Database)
	v.SetDefault("neo4j.max_pool_size", cfg.Neo4j.MaxPoolSize)
	v.SetDefault("neo4j.acquisition_timeout", cfg.Neo4j.AcquisitionTimeout)
	v.SetDefault("neo4j.max_connection_lifetime", cfg.Neo4j.MaxConnectionLifetime)
	v.SetDefault("neo4j.use_keychain", cfg.Neo4j.UseKeychain)

	v.SetDefault("server.listen_addr", cfg.Server.ListenAddr)
	v.SetDefault("server.cors_origins", cfg.Server.CORSOrigins)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.rate_limit", cfg.Server.RateLimit)
	v.SetDefault("server.rate_burst", cfg.Server.RateBurst)

	v.SetDefault("query.timeout", cfg.Query.Timeout)
	v.SetDefault("query.warning_ratio", cfg.Query.WarningRatio)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)

	v.SetDefault("health.interval", cfg.Health.Interval)
}

// loadEnvFiles loads .env files in order of precedence.
// godotenv never overwrites variables that are already set, so the first file wins.
func loadEnvFiles() {
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".recipes", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		_ = godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies the conventional unprefixed variables on top of viper's values
func applyEnvOverrides(cfg *Config) {
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		cfg.Neo4j.URI = uri
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		cfg.Neo4j.User = user
	}
	if password := os.Getenv("NEO4J_PASSWORD"); password != "" {
		cfg.Neo4j.Password = password
	}
	if database := os.Getenv("NEO4J_DATABASE"); database != "" {
		cfg.Neo4j.Database = database
	}

	if addr := os.Getenv("RECIPES_LISTEN_ADDR"); addr != "" {
		cfg.Server.ListenAddr = addr
	}
	cfg.Query.Timeout = GetDuration("RECIPES_QUERY_TIMEOUT", cfg.Query.Timeout)

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
	if file := os.Getenv("LOG_FILE"); file != "" {
		cfg.Log.File = file
	}
	cfg.Log.File = expandPath(cfg.Log.File)
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
