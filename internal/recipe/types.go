package recipe

// Summary is one row of the list and search results
type Summary struct {
	Name                string `json:"name"`
	Author              string `json:"author"`
	SkillLevel          string `json:"skillLevel"`
	NumberOfIngredients int    `json:"numberOfIngredients"`
}

// AuthorRecipe is one row of the author search.
// Action is always "Details"; the client renders it as a link to the details view.
type AuthorRecipe struct {
	Name   string `json:"name"`
	Action string `json:"action"`
}

// ActionDetails is the only action attached to author search rows
const ActionDetails = "Details"

// Details holds the full description of one recipe.
// CookingTime and PreparationTime are passed through as stored; no unit is assumed.
type Details struct {
	Description     string   `json:"description"`
	CookingTime     int      `json:"cookingTime"`
	PreparationTime int      `json:"preparationTime"`
	Ingredients     []string `json:"ingredients"`
}
