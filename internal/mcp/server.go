// Package mcp exposes the recipe queries as Model Context Protocol tools.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

// NewMCPServer creates an MCP server with the five recipe tools registered
func NewMCPServer(recipes Querier, logger logrus.FieldLogger, version string) *mcp.Server {
	service := NewService(recipes, logger)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "recipegraph",
		Version: version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_recipes",
		Description: "List every recipe that has an author and at least one ingredient, ordered by name.",
	}, service.ListRecipes)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "search_recipes_by_name",
		Description: "Find recipes whose name contains the query, ignoring case.",
	}, service.SearchByName)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "search_recipes_by_ingredients",
		Description: "Find recipes that contain all of the given ingredients (exact names).",
	}, service.SearchByIngredients)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "search_recipes_by_author",
		Description: "List the names of every recipe written by an author.",
	}, service.SearchByAuthor)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_recipe_details",
		Description: "Get description, cooking time, preparation time and ingredients of one recipe.",
	}, service.RecipeDetails)

	return s
}

// ServeStdio runs the server on stdin/stdout until the client disconnects or ctx is cancelled
func ServeStdio(ctx context.Context, s *mcp.Server) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}
