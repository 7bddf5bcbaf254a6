package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/recipegraph/internal/config"
	"github.com/rohankatakam/recipegraph/internal/graph"
)

// checkCmd verifies configuration and store connectivity without serving
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and probe Neo4j connectivity",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := connect(ctx, config.ValidationContextCheck)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Close(closeCtx)
	}()

	status, err := client.CheckPoolHealth(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", status.Message, err)
	}

	stats := client.GetPoolStats()
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", status.Message)
	fmt.Fprintf(cmd.OutOrStdout(), "  uri:       %s\n", cfg.Neo4j.URI)
	fmt.Fprintf(cmd.OutOrStdout(), "  database:  %s\n", client.Database())
	fmt.Fprintf(cmd.OutOrStdout(), "  pool size: %d (recommended for 20 concurrent requests: %d)\n",
		stats.MaxPoolSize, graph.RecommendedPoolSize(20))
	return nil
}
