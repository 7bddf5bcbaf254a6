package seed

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/recipegraph/internal/graph"
)

// Writer runs statements in one write transaction. *graph.Client satisfies it.
type Writer interface {
	ExecuteWrite(ctx context.Context, operation string, statements []graph.Statement) error
}

// Loader writes catalogs through a Writer
type Loader struct {
	writer Writer
	logger logrus.FieldLogger
}

// NewLoader creates a catalog loader
func NewLoader(writer Writer, logger logrus.FieldLogger) *Loader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Loader{writer: writer, logger: logger.WithField("component", "seed")}
}

// Load MERGEs every node and relationship of the catalog in a single transaction.
// Loading the same catalog twice leaves the graph unchanged.
func (l *Loader) Load(ctx context.Context, catalog *Catalog) error {
	statements, err := Statements(catalog)
	if err != nil {
		return err
	}
	if err := l.writer.ExecuteWrite(ctx, graph.OpSeedWrite, statements); err != nil {
		return err
	}

	l.logger.WithFields(logrus.Fields{
		"authors":    len(catalog.Authors),
		"recipes":    catalog.RecipeCount(),
		"statements": len(statements),
	}).Info("catalog loaded")
	return nil
}

// Statements builds the MERGE statements for a catalog.
// Nodes are emitted before the relationships that reference them.
func Statements(catalog *Catalog) ([]graph.Statement, error) {
	var statements []graph.Statement

	add := func(build func(b *graph.CypherBuilder) (string, error)) error {
		b := graph.NewCypherBuilder()
		query, err := build(b)
		if err != nil {
			return err
		}
		statements = append(statements, b.Statement(query))
		return nil
	}
	node := func(n graph.GraphNode) error {
		return add(func(b *graph.CypherBuilder) (string, error) { return b.BuildMergeNode(n) })
	}
	edge := func(e graph.GraphEdge) error {
		return add(func(b *graph.CypherBuilder) (string, error) { return b.BuildMergeEdge(e) })
	}

	seenIngredients := make(map[string]struct{})
	for _, author := range catalog.Authors {
		authorName := strings.TrimSpace(author.Name)
		if err := node(graph.GraphNode{Label: graph.LabelAuthor, Key: authorName}); err != nil {
			return nil, err
		}

		for _, recipe := range author.Recipes {
			recipeName := strings.TrimSpace(recipe.Name)
			err := node(graph.GraphNode{
				Label: graph.LabelRecipe,
				Key:   recipeName,
				Properties: map[string]any{
					"description":     recipe.Description,
					"skillLevel":      recipe.SkillLevel,
					"cookingTime":     recipe.CookingTime,
					"preparationTime": recipe.PreparationTime,
				},
			})
			if err != nil {
				return nil, err
			}
			if err := edge(graph.GraphEdge{
				Type:      graph.RelWrote,
				FromLabel: graph.LabelAuthor,
				FromKey:   authorName,
				ToLabel:   graph.LabelRecipe,
				ToKey:     recipeName,
			}); err != nil {
				return nil, err
			}

			for _, ingredient := range recipe.Ingredients {
				ingredient = strings.TrimSpace(ingredient)
				if ingredient == "" {
					continue
				}
				if _, ok := seenIngredients[ingredient]; !ok {
					seenIngredients[ingredient] = struct{}{}
					if err := node(graph.GraphNode{Label: graph.LabelIngredient, Key: ingredient}); err != nil {
						return nil, err
					}
				}
				if err := edge(graph.GraphEdge{
					Type:      graph.RelContainsIngredient,
					FromLabel: graph.LabelRecipe,
					FromKey:   recipeName,
					ToLabel:   graph.LabelIngredient,
					ToKey:     ingredient,
				}); err != nil {
					return nil, err
				}
			}
		}
	}
	return statements, nil
}
