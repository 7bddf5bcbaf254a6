package graph

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Operation names used for timeouts, transaction metadata, logs and metrics
const (
	OpListRecipes         = "list_recipes"
	OpSearchByName        = "search_by_name"
	OpSearchByIngredients = "search_by_ingredients"
	OpSearchByAuthor      = "search_by_author"
	OpRecipeDetails       = "recipe_details"
	OpHealthCheck         = "health_check"
	OpSeedWrite           = "seed_write"
)

// TransactionConfig defines timeout and metadata for transactions.
// Metadata is logged by Neo4j and visible in query.log and SHOW TRANSACTIONS.
type TransactionConfig struct {
	Timeout  time.Duration
	Metadata map[string]any
}

// DefaultTransactionConfigs returns the config per operation type
func DefaultTransactionConfigs() map[string]TransactionConfig {
	read := func(op string, timeout time.Duration) TransactionConfig {
		return TransactionConfig{
			Timeout: timeout,
			Metadata: map[string]any{
				"operation": op,
				"app":       "recipegraph",
				"type":      "read",
			},
		}
	}

	return map[string]TransactionConfig{
		// Full catalog scans touch every recipe
		OpListRecipes:         read(OpListRecipes, 15*time.Second),
		OpSearchByName:        read(OpSearchByName, 10*time.Second),
		OpSearchByIngredients: read(OpSearchByIngredients, 10*time.Second),

		// Anchored on a single node
		OpSearchByAuthor: read(OpSearchByAuthor, 5*time.Second),
		OpRecipeDetails:  read(OpRecipeDetails, 5*time.Second),

		OpHealthCheck: read(OpHealthCheck, 5*time.Second),

		OpSeedWrite: {
			Timeout: 2 * time.Minute,
			Metadata: map[string]any{
				"operation": OpSeedWrite,
				"app":       "recipegraph",
				"type":      "write",
			},
		},
	}
}

// AsNeo4jConfig converts to Neo4j transaction config functions.
// Use with session.Run or ExecuteRead/ExecuteWrite.
func (tc TransactionConfig) AsNeo4jConfig() []func(*neo4j.TransactionConfig) {
	configs := []func(*neo4j.TransactionConfig){}

	if tc.Timeout > 0 {
		configs = append(configs, neo4j.WithTxTimeout(tc.Timeout))
	}

	if len(tc.Metadata) > 0 {
		configs = append(configs, neo4j.WithTxMetadata(tc.Metadata))
	}

	return configs
}

// GetConfigForOperation retrieves the appropriate transaction config.
// Unknown operations get a 30s timeout.
func GetConfigForOperation(operation string) TransactionConfig {
	configs := DefaultTransactionConfigs()
	if config, ok := configs[operation]; ok {
		return config
	}

	return TransactionConfig{
		Timeout: 30 * time.Second,
		Metadata: map[string]any{
			"operation": operation,
			"app":       "recipegraph",
			"type":      "unknown",
		},
	}
}

// WithCustomMetadata creates a config with custom metadata
func (tc TransactionConfig) WithCustomMetadata(key string, value any) TransactionConfig {
	newConfig := TransactionConfig{
		Timeout:  tc.Timeout,
		Metadata: make(map[string]any, len(tc.Metadata)+1),
	}

	for k, v := range tc.Metadata {
		newConfig.Metadata[k] = v
	}
	newConfig.Metadata[key] = value

	return newConfig
}

// WithTimeout creates a config with a custom timeout
func (tc TransactionConfig) WithTimeout(timeout time.Duration) TransactionConfig {
	return TransactionConfig{
		Timeout:  timeout,
		Metadata: tc.Metadata,
	}
}
