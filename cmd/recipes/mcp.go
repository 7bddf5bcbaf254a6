package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/recipegraph/internal/config"
	"github.com/rohankatakam/recipegraph/internal/mcp"
	"github.com/rohankatakam/recipegraph/internal/recipe"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the recipe queries as MCP tools over stdio",
	Long: `Runs a Model Context Protocol server on stdin/stdout.
Logs go to stderr so they never mix with protocol messages.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := connect(ctx, config.ValidationContextMCP)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			logger.WithError(err).Warn("failed to close neo4j client")
		}
	}()

	s := mcp.NewMCPServer(recipe.NewService(client, logger), logger, Version)
	logger.Info("mcp server ready on stdio")
	return mcp.ServeStdio(ctx, s)
}
