package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/rohankatakam/recipegraph/internal/errors"
)

// ValidationContext specifies what configuration is required
type ValidationContext string

const (
	// ValidationContextServe - the HTTP API needs Neo4j and a listen address
	ValidationContextServe ValidationContext = "serve"
	// ValidationContextMCP - the stdio tool server needs Neo4j only
	ValidationContextMCP ValidationContext = "mcp"
	// ValidationContextSeed - the fixture loader needs Neo4j only
	ValidationContextSeed ValidationContext = "seed"
	// ValidationContextCheck - connectivity probe needs Neo4j only
	ValidationContextCheck ValidationContext = "check"
)

// ValidationResult holds validation results
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// AddError adds an error to the validation result
func (vr *ValidationResult) AddError(format string, args ...interface{}) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, fmt.Sprintf(format, args...))
}

// AddWarning adds a warning to the validation result
func (vr *ValidationResult) AddWarning(format string, args ...interface{}) {
	vr.Warnings = append(vr.Warnings, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any errors
func (vr *ValidationResult) HasErrors() bool {
	return !vr.Valid || len(vr.Errors) > 0
}

// Error returns a formatted error message
func (vr *ValidationResult) Error() string {
	if !vr.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, err := range vr.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err))
	}

	if len(vr.Warnings) > 0 {
		sb.WriteString("warnings:\n")
		for _, warn := range vr.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn))
		}
	}

	return sb.String()
}

// Err returns the result as a config error, or nil when valid
func (vr *ValidationResult) Err() error {
	if !vr.HasErrors() {
		return nil
	}
	return errors.ConfigError(strings.TrimSpace(vr.Error()))
}

// Validate validates configuration for the given context with auto-detected mode
func (c *Config) Validate(ctx ValidationContext) *ValidationResult {
	return c.ValidateWithMode(ctx, DetectMode())
}

// ValidateWithMode validates configuration for the given context and deployment mode
func (c *Config) ValidateWithMode(ctx ValidationContext, mode DeploymentMode) *ValidationResult {
	result := &ValidationResult{Valid: true}

	switch ctx {
	case ValidationContextServe:
		c.validateNeo4j(result, mode)
		c.validateServer(result)
		c.validateQuery(result)
	case ValidationContextMCP:
		c.validateNeo4j(result, mode)
		c.validateQuery(result)
	case ValidationContextSeed, ValidationContextCheck:
		c.validateNeo4j(result, mode)
	default:
		result.AddError("unknown validation context %q", ctx)
	}

	return result
}

func (c *Config) validateNeo4j(result *ValidationResult, mode DeploymentMode) {
	if c.Neo4j.URI == "" {
		result.AddError("NEO4J_URI is required but not set")
	} else {
		u, err := url.Parse(c.Neo4j.URI)
		switch {
		case err != nil:
			result.AddError("NEO4J_URI is invalid: %v", err)
		case !isSupportedScheme(u.Scheme):
			result.AddError("NEO4J_URI scheme %q is not supported (use neo4j, neo4j+s, bolt or bolt+s)", u.Scheme)
		case strings.Contains(u.Host, "localhost") && mode.RequiresSecureCredentials():
			result.AddWarning("NEO4J_URI points at localhost in %s mode", mode)
		}
	}

	if c.Neo4j.User == "" {
		result.AddError("NEO4J_USER is required but not set")
	}

	if c.Neo4j.Password == "" {
		result.AddError("NEO4J_PASSWORD is required but not set. Set it via environment variable, .env file, or `recipes credentials set`.")
	} else if mode.RequiresSecureCredentials() {
		for _, insecure := range []string{"password", "neo4j", "changeme"} {
			if c.Neo4j.Password == insecure {
				result.AddError("NEO4J_PASSWORD is set to an insecure default (%s). This is not allowed in %s mode.", insecure, mode)
			}
		}
	}

	if c.Neo4j.Database == "" {
		result.AddWarning("NEO4J_DATABASE is not set, the server default database will be used")
	}

	if c.Neo4j.MaxPoolSize <= 0 {
		result.AddError("neo4j.max_pool_size must be positive, got %d", c.Neo4j.MaxPoolSize)
	}
}

func (c *Config) validateServer(result *ValidationResult) {
	if c.Server.ListenAddr == "" {
		result.AddError("server.listen_addr is required")
	} else if _, _, err := net.SplitHostPort(c.Server.ListenAddr); err != nil {
		result.AddError("server.listen_addr %q is invalid: %v", c.Server.ListenAddr, err)
	}

	if c.Server.RateLimit < 0 {
		result.AddError("server.rate_limit must not be negative, got %g", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst <= 0 {
		result.AddError("server.rate_burst must be positive when server.rate_limit is set, got %d", c.Server.RateBurst)
	}

	if len(c.Server.CORSOrigins) == 0 {
		result.AddWarning("server.cors_origins is empty, cross-origin requests will be allowed from any origin")
	}
}

func (c *Config) validateQuery(result *ValidationResult) {
	if c.Query.Timeout < 0 {
		result.AddError("query.timeout must not be negative, got %s", c.Query.Timeout)
	}
	if c.Query.WarningRatio <= 0 || c.Query.WarningRatio > 1 {
		result.AddWarning("query.warning_ratio must be in (0,1], got %.2f; slow-query warnings use 0.8", c.Query.WarningRatio)
	}
}

func isSupportedScheme(scheme string) bool {
	switch scheme {
	case "neo4j", "neo4j+s", "neo4j+ssc", "bolt", "bolt+s", "bolt+ssc":
		return true
	default:
		return false
	}
}
