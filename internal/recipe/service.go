// Package recipe implements the catalog queries: one parameterized traversal per
// call, records mapped onto response rows.
package recipe

import (
	"context"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/recipegraph/internal/errors"
	"github.com/rohankatakam/recipegraph/internal/graph"
)

// Runner executes one read-only Cypher statement and returns every record.
// *graph.Client satisfies it.
type Runner interface {
	Read(ctx context.Context, operation, cypher string, params map[string]any) ([]*neo4j.Record, error)
}

// Service answers catalog queries. It holds no per-request state and is safe for concurrent use.
type Service struct {
	runner Runner
	logger logrus.FieldLogger
}

// NewService creates a query service on top of runner
func NewService(runner Runner, logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		runner: runner,
		logger: logger.WithField("component", "recipe_service"),
	}
}

// ListAll returns every recipe that has an author and at least one ingredient, ordered by name
func (s *Service) ListAll(ctx context.Context) ([]Summary, error) {
	records, err := s.runner.Read(ctx, graph.OpListRecipes, listAllQuery, nil)
	if err != nil {
		return nil, err
	}
	return s.summaries(graph.OpListRecipes, records)
}

// SearchByName returns recipes whose name contains query, ignoring case.
// A blank query matches everything ListAll returns.
func (s *Service) SearchByName(ctx context.Context, query string) ([]Summary, error) {
	params := map[string]any{"query": strings.TrimSpace(query)}

	records, err := s.runner.Read(ctx, graph.OpSearchByName, searchByNameQuery, params)
	if err != nil {
		return nil, err
	}
	return s.summaries(graph.OpSearchByName, records)
}

// SearchByIngredients returns recipes containing every listed ingredient by exact name.
// numberOfIngredients is the recipe's total count, not the number matched.
// An empty list matches every recipe that has an author.
func (s *Service) SearchByIngredients(ctx context.Context, ingredients []string) ([]Summary, error) {
	params := map[string]any{"ingredients": NormalizeIngredients(ingredients)}

	records, err := s.runner.Read(ctx, graph.OpSearchByIngredients, searchByIngredientsQuery, params)
	if err != nil {
		return nil, err
	}
	return s.summaries(graph.OpSearchByIngredients, records)
}

// SearchByAuthor returns the names of every recipe written by author, ordered by name
func (s *Service) SearchByAuthor(ctx context.Context, author string) ([]AuthorRecipe, error) {
	params := map[string]any{"author": strings.TrimSpace(author)}

	records, err := s.runner.Read(ctx, graph.OpSearchByAuthor, searchByAuthorQuery, params)
	if err != nil {
		return nil, err
	}

	out := make([]AuthorRecipe, 0, len(records))
	for _, record := range records {
		name, err := stringField(record, "name")
		if err != nil {
			return nil, s.integrityFailure(graph.OpSearchByAuthor, err)
		}
		out = append(out, AuthorRecipe{Name: name, Action: ActionDetails})
	}
	return out, nil
}

// GetDetails returns the details of the recipe with exactly this name.
// Unknown names return an errors.NotFound error.
func (s *Service) GetDetails(ctx context.Context, name string) (*Details, error) {
	name = strings.TrimSpace(name)
	params := map[string]any{"name": name}

	records, err := s.runner.Read(ctx, graph.OpRecipeDetails, detailsQuery, params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NotFoundErrorf("recipe %q not found", name)
	}

	details, err := toDetails(records[0])
	if err != nil {
		return nil, s.integrityFailure(graph.OpRecipeDetails, err)
	}
	return &details, nil
}

func (s *Service) summaries(operation string, records []*neo4j.Record) ([]Summary, error) {
	out := make([]Summary, 0, len(records))
	for _, record := range records {
		summary, err := toSummary(record)
		if err != nil {
			return nil, s.integrityFailure(operation, err)
		}
		out = append(out, summary)
	}
	return out, nil
}

func (s *Service) integrityFailure(operation string, err error) error {
	s.logger.WithError(err).WithField("operation", operation).Error("unexpected record shape")
	return err
}
