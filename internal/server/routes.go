package server

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/rohankatakam/recipegraph/internal/errors"
	"github.com/rohankatakam/recipegraph/internal/graph"
	"github.com/rohankatakam/recipegraph/internal/recipe"
)

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-recipes",
		Method:      http.MethodGet,
		Path:        "/api/recipes",
		Summary:     "List recipes with at least one ingredient",
		Tags:        []string{"recipes"},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-recipe-details",
		Method:      http.MethodGet,
		Path:        "/api/recipe/details/{name}",
		Summary:     "Get recipe details",
		Description: "Answers an empty array when no recipe has this exact name.",
		Tags:        []string{"recipes"},
	}, s.handleRecipeDetails)

	// Static segments win over {recipe_name} in the chi tree
	huma.Register(s.api, huma.Operation{
		OperationID: "search-by-ingredients",
		Method:      http.MethodGet,
		Path:        "/api/search/ingredients/{ingredients}",
		Summary:     "Find recipes containing every listed ingredient",
		Tags:        []string{"search"},
	}, s.handleSearchByIngredients)

	huma.Register(s.api, huma.Operation{
		OperationID: "search-by-author",
		Method:      http.MethodGet,
		Path:        "/api/search/recipes/by/author/{authorname}",
		Summary:     "List recipes written by an author",
		Tags:        []string{"search"},
	}, s.handleSearchByAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "search-by-name",
		Method:      http.MethodGet,
		Path:        "/api/search/{recipe_name}",
		Summary:     "Find recipes whose name contains a substring",
		Tags:        []string{"search"},
	}, s.handleSearchByName)

	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"system"},
	}, s.handleHealth)
}

// --- Request/Response types for huma ---

type recipeListOutput struct {
	Body []recipe.Summary
}

type authorRecipesOutput struct {
	Body []recipe.AuthorRecipe
}

type recipeDetailsOutput struct {
	Body []recipe.Details
}

type recipeDetailsInput struct {
	Name string `path:"name" doc:"Exact recipe name"`
}

type searchByNameInput struct {
	RecipeName string `path:"recipe_name" doc:"Case-insensitive substring of the recipe name"`
}

type searchByIngredientsInput struct {
	Ingredients string `path:"ingredients" doc:"Comma-separated exact ingredient names" example:"Salt,Pepper"`
}

type searchByAuthorInput struct {
	AuthorName string `path:"authorname" doc:"Exact author name"`
}

// HealthBody is the JSON body of the health endpoint response.
type HealthBody struct {
	Status  string `json:"status" example:"ok" doc:"Health status"`
	Message string `json:"message,omitempty" doc:"Store connectivity detail"`
}

// HealthResponse wraps the health check response.
type HealthResponse struct {
	Status int
	Body   HealthBody
}

// --- Handlers ---

func (s *Server) handleListRecipes(ctx context.Context, _ *struct{}) (*recipeListOutput, error) {
	recipes, err := s.recipes.ListAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, graph.OpListRecipes, err)
	}
	return &recipeListOutput{Body: recipes}, nil
}

func (s *Server) handleRecipeDetails(ctx context.Context, input *recipeDetailsInput) (*recipeDetailsOutput, error) {
	details, err := s.recipes.GetDetails(ctx, input.Name)
	if stderrors.Is(err, errors.NotFound) {
		return &recipeDetailsOutput{Body: []recipe.Details{}}, nil
	}
	if err != nil {
		return nil, s.fail(ctx, graph.OpRecipeDetails, err)
	}
	return &recipeDetailsOutput{Body: []recipe.Details{*details}}, nil
}

func (s *Server) handleSearchByName(ctx context.Context, input *searchByNameInput) (*recipeListOutput, error) {
	recipes, err := s.recipes.SearchByName(ctx, input.RecipeName)
	if err != nil {
		return nil, s.fail(ctx, graph.OpSearchByName, err)
	}
	return &recipeListOutput{Body: recipes}, nil
}

func (s *Server) handleSearchByIngredients(ctx context.Context, input *searchByIngredientsInput) (*recipeListOutput, error) {
	ingredients := recipe.ParseIngredientList(input.Ingredients)

	recipes, err := s.recipes.SearchByIngredients(ctx, ingredients)
	if err != nil {
		return nil, s.fail(ctx, graph.OpSearchByIngredients, err)
	}
	return &recipeListOutput{Body: recipes}, nil
}

func (s *Server) handleSearchByAuthor(ctx context.Context, input *searchByAuthorInput) (*authorRecipesOutput, error) {
	recipes, err := s.recipes.SearchByAuthor(ctx, input.AuthorName)
	if err != nil {
		return nil, s.fail(ctx, graph.OpSearchByAuthor, err)
	}
	return &authorRecipesOutput{Body: recipes}, nil
}

func (s *Server) handleHealth(ctx context.Context, _ *struct{}) (*HealthResponse, error) {
	if s.health == nil {
		return &HealthResponse{Status: http.StatusOK, Body: HealthBody{Status: "ok"}}, nil
	}

	status, err := s.health.CheckPoolHealth(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("health check failed")
		msg := "graph store unreachable"
		if status != nil && status.Message != "" {
			msg = status.Message
		}
		return &HealthResponse{
			Status: http.StatusServiceUnavailable,
			Body:   HealthBody{Status: "unhealthy", Message: msg},
		}, nil
	}
	return &HealthResponse{
		Status: http.StatusOK,
		Body:   HealthBody{Status: "ok", Message: status.Message},
	}, nil
}
