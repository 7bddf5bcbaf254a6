package graph

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rohankatakam/recipegraph/internal/config"
	"github.com/rohankatakam/recipegraph/internal/logging"
)

func TestGetConfigForOperation(t *testing.T) {
	tests := []struct {
		operation string
		timeout   time.Duration
		txType    string
	}{
		{OpListRecipes, 15 * time.Second, "read"},
		{OpSearchByName, 10 * time.Second, "read"},
		{OpSearchByIngredients, 10 * time.Second, "read"},
		{OpSearchByAuthor, 5 * time.Second, "read"},
		{OpRecipeDetails, 5 * time.Second, "read"},
		{OpHealthCheck, 5 * time.Second, "read"},
		{OpSeedWrite, 2 * time.Minute, "write"},
		{"something_else", 30 * time.Second, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			cfg := GetConfigForOperation(tt.operation)
			assert.Equal(t, tt.timeout, cfg.Timeout)
			assert.Equal(t, tt.operation, cfg.Metadata["operation"])
			assert.Equal(t, tt.txType, cfg.Metadata["type"])
			assert.Equal(t, "recipegraph", cfg.Metadata["app"])
		})
	}
}

func TestTransactionConfig_WithCustomMetadata(t *testing.T) {
	base := GetConfigForOperation(OpRecipeDetails)
	custom := base.WithCustomMetadata("request_id", "abc")

	assert.Equal(t, "abc", custom.Metadata["request_id"])
	assert.Equal(t, base.Timeout, custom.Timeout)
	_, leaked := base.Metadata["request_id"]
	assert.False(t, leaked, "base metadata must not be mutated")
}

func TestTransactionConfig_AsNeo4jConfig(t *testing.T) {
	assert.Len(t, GetConfigForOperation(OpListRecipes).AsNeo4jConfig(), 2)
	assert.Empty(t, TransactionConfig{}.AsNeo4jConfig())
	assert.Len(t, TransactionConfig{Timeout: time.Second}.AsNeo4jConfig(), 1)
	assert.Equal(t, 3*time.Second, GetConfigForOperation(OpListRecipes).WithTimeout(3*time.Second).Timeout)
}

func TestReadConfig_Ceiling(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		ceiling   time.Duration
		want      time.Duration
	}{
		{"default config keeps author timeout", OpSearchByAuthor, config.Default().Query.Timeout, 5 * time.Second},
		{"default config keeps list timeout", OpListRecipes, config.Default().Query.Timeout, 15 * time.Second},
		{"ceiling lowers long reads", OpListRecipes, 8 * time.Second, 8 * time.Second},
		{"ceiling never raises short reads", OpRecipeDetails, 8 * time.Second, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := readConfig(context.Background(), tt.operation, tt.ceiling)
			assert.Equal(t, tt.want, cfg.Timeout)
			assert.Equal(t, tt.operation, cfg.Metadata["operation"])
		})
	}
}

func TestReadConfig_RequestIDMetadata(t *testing.T) {
	cfg := readConfig(context.Background(), OpSearchByName, 0)
	_, tagged := cfg.Metadata["request_id"]
	assert.False(t, tagged)

	ctx := logging.WithRequestID(context.Background(), "req-7")
	cfg = readConfig(ctx, OpSearchByName, 0)
	assert.Equal(t, "req-7", cfg.Metadata["request_id"])
	assert.Equal(t, "read", cfg.Metadata["type"])
}
