package config

import (
	"os"
	"strings"
)

// DeploymentMode represents the deployment context
type DeploymentMode string

const (
	// ModeDevelopment represents local development against a Docker Neo4j.
	// Passwords from .env are acceptable.
	ModeDevelopment DeploymentMode = "development"

	// ModeProduction represents a deployed API server.
	// Credentials come from the environment and insecure defaults are rejected.
	ModeProduction DeploymentMode = "production"
)

// DetectMode determines the deployment context based on environment
func DetectMode() DeploymentMode {
	if mode := os.Getenv("RECIPES_MODE"); mode != "" {
		switch strings.ToLower(mode) {
		case "development", "dev":
			return ModeDevelopment
		case "production", "prod":
			return ModeProduction
		}
	}

	// A .env file next to the binary means someone is developing locally
	if _, err := os.Stat(".env"); err == nil {
		return ModeDevelopment
	}

	return ModeProduction
}

// RequiresSecureCredentials returns true if this mode rejects default passwords
func (m DeploymentMode) RequiresSecureCredentials() bool {
	return m == ModeProduction
}

// Description returns a human-readable description of the mode
func (m DeploymentMode) Description() string {
	switch m {
	case ModeDevelopment:
		return "local development with .env configuration"
	case ModeProduction:
		return "deployed server with environment-provided credentials"
	default:
		return "unknown mode"
	}
}
