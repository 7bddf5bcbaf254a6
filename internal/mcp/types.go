package mcp

import "github.com/rohankatakam/recipegraph/internal/recipe"

// --- Tool Arguments ---

// ListRecipesArgs takes no arguments
type ListRecipesArgs struct{}

// SearchByNameArgs are the arguments of search_recipes_by_name
type SearchByNameArgs struct {
	Query string `json:"query" jsonschema:"Case-insensitive substring of the recipe name. Empty matches every recipe."`
}

// SearchByIngredientsArgs are the arguments of search_recipes_by_ingredients
type SearchByIngredientsArgs struct {
	Ingredients []string `json:"ingredients" jsonschema:"Exact ingredient names; every one must be present in the recipe"`
}

// SearchByAuthorArgs are the arguments of search_recipes_by_author
type SearchByAuthorArgs struct {
	Author string `json:"author" jsonschema:"Exact author name"`
}

// RecipeDetailsArgs are the arguments of get_recipe_details
type RecipeDetailsArgs struct {
	Name string `json:"name" jsonschema:"Exact recipe name"`
}

// --- Tool Results ---

// RecipeListResult is the output of the list and search tools
type RecipeListResult struct {
	Recipes []recipe.Summary `json:"recipes"`
}

// AuthorRecipesResult lists the recipes of one author
type AuthorRecipesResult struct {
	Recipes []recipe.AuthorRecipe `json:"recipes"`
}

// RecipeDetailsResult carries the details when Found is true
type RecipeDetailsResult struct {
	Found   bool            `json:"found"`
	Details *recipe.Details `json:"details,omitempty"`
}
