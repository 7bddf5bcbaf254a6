package graph

// Node labels and relationship types of the recipe catalog
const (
	LabelAuthor     = "Author"
	LabelRecipe     = "Recipe"
	LabelIngredient = "Ingredient"

	RelWrote              = "WROTE"
	RelContainsIngredient = "CONTAINS_INGREDIENT"
)

// GraphNode represents a node in the graph
type GraphNode struct {
	Label      string         // Node type: "Author", "Recipe", "Ingredient"
	Key        any            // Value of the label's unique key property
	Properties map[string]any // Additional node properties
}

// GraphEdge represents an edge between two nodes identified by label and key
type GraphEdge struct {
	Type      string // Edge type: "WROTE", "CONTAINS_INGREDIENT"
	FromLabel string
	FromKey   any
	ToLabel   string
	ToKey     any
}

// getUniqueKey returns the identifying property for each node label.
// Every catalog node is keyed by name; an unknown label has no key.
func getUniqueKey(label string) string {
	keys := map[string]string{
		LabelAuthor:     "name",
		LabelRecipe:     "name",
		LabelIngredient: "name",
	}

	if key, ok := keys[label]; ok {
		return key
	}
	return ""
}
