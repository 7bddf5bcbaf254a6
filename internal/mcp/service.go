package mcp

import (
	"context"
	stderrors "errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/recipegraph/internal/errors"
	"github.com/rohankatakam/recipegraph/internal/recipe"
)

// Querier is the read side of the catalog. *recipe.Service satisfies it.
type Querier interface {
	ListAll(ctx context.Context) ([]recipe.Summary, error)
	SearchByName(ctx context.Context, query string) ([]recipe.Summary, error)
	SearchByIngredients(ctx context.Context, ingredients []string) ([]recipe.Summary, error)
	SearchByAuthor(ctx context.Context, author string) ([]recipe.AuthorRecipe, error)
	GetDetails(ctx context.Context, name string) (*recipe.Details, error)
}

// Service holds the tool handlers
type Service struct {
	recipes Querier
	logger  logrus.FieldLogger
}

// NewService creates the tool handlers over recipes
func NewService(recipes Querier, logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{recipes: recipes, logger: logger.WithField("component", "mcp")}
}

// --- Tool Handlers ---

// ListRecipes handles list_recipes
func (s *Service) ListRecipes(ctx context.Context, req *mcp.CallToolRequest, args ListRecipesArgs) (*mcp.CallToolResult, RecipeListResult, error) {
	recipes, err := s.recipes.ListAll(ctx)
	if err != nil {
		return nil, RecipeListResult{}, s.toolError("list_recipes", err)
	}
	return nil, RecipeListResult{Recipes: recipes}, nil
}

// SearchByName handles search_recipes_by_name
func (s *Service) SearchByName(ctx context.Context, req *mcp.CallToolRequest, args SearchByNameArgs) (*mcp.CallToolResult, RecipeListResult, error) {
	recipes, err := s.recipes.SearchByName(ctx, args.Query)
	if err != nil {
		return nil, RecipeListResult{}, s.toolError("search_recipes_by_name", err)
	}
	return nil, RecipeListResult{Recipes: recipes}, nil
}

// SearchByIngredients handles search_recipes_by_ingredients
func (s *Service) SearchByIngredients(ctx context.Context, req *mcp.CallToolRequest, args SearchByIngredientsArgs) (*mcp.CallToolResult, RecipeListResult, error) {
	recipes, err := s.recipes.SearchByIngredients(ctx, args.Ingredients)
	if err != nil {
		return nil, RecipeListResult{}, s.toolError("search_recipes_by_ingredients", err)
	}
	return nil, RecipeListResult{Recipes: recipes}, nil
}

// SearchByAuthor handles search_recipes_by_author
func (s *Service) SearchByAuthor(ctx context.Context, req *mcp.CallToolRequest, args SearchByAuthorArgs) (*mcp.CallToolResult, AuthorRecipesResult, error) {
	recipes, err := s.recipes.SearchByAuthor(ctx, args.Author)
	if err != nil {
		return nil, AuthorRecipesResult{}, s.toolError("search_recipes_by_author", err)
	}
	return nil, AuthorRecipesResult{Recipes: recipes}, nil
}

// RecipeDetails reports a missing recipe as found=false rather than a tool error
func (s *Service) RecipeDetails(ctx context.Context, req *mcp.CallToolRequest, args RecipeDetailsArgs) (*mcp.CallToolResult, RecipeDetailsResult, error) {
	details, err := s.recipes.GetDetails(ctx, args.Name)
	if stderrors.Is(err, errors.NotFound) {
		return nil, RecipeDetailsResult{Found: false}, nil
	}
	if err != nil {
		return nil, RecipeDetailsResult{}, s.toolError("get_recipe_details", err)
	}
	return nil, RecipeDetailsResult{Found: true, Details: details}, nil
}

func (s *Service) toolError(tool string, err error) error {
	s.logger.WithError(err).WithField("tool", tool).Error("tool call failed")
	return stderrors.New(errors.PublicMessage(err))
}
