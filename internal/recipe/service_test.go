package recipe

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/recipegraph/internal/errors"
	"github.com/rohankatakam/recipegraph/internal/graph"
)

type readCall struct {
	operation string
	cypher    string
	params    map[string]any
}

// fakeRunner returns canned records and remembers what it was asked to run
type fakeRunner struct {
	records []*neo4j.Record
	err     error
	calls   []readCall
}

func (f *fakeRunner) Read(_ context.Context, operation, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	f.calls = append(f.calls, readCall{operation: operation, cypher: cypher, params: params})
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func newTestService(runner *fakeRunner) *Service {
	logger, _ := test.NewNullLogger()
	return NewService(runner, logger)
}

func summaryRecord(name, author, skill string, count any) *neo4j.Record {
	return &neo4j.Record{
		Keys:   []string{"name", "author", "skillLevel", "numberOfIngredients"},
		Values: []any{name, author, skill, count},
	}
}

func TestListAll(t *testing.T) {
	runner := &fakeRunner{records: []*neo4j.Record{
		summaryRecord("Apple Pie", "Mary Cadogan", "Easy", int64(6)),
		summaryRecord("Tomato Soup", "Good Food team", "Easy", int64(5)),
	}}
	svc := newTestService(runner)

	got, err := svc.ListAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Summary{
		{Name: "Apple Pie", Author: "Mary Cadogan", SkillLevel: "Easy", NumberOfIngredients: 6},
		{Name: "Tomato Soup", Author: "Good Food team", SkillLevel: "Easy", NumberOfIngredients: 5},
	}, got)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, graph.OpListRecipes, runner.calls[0].operation)
	assert.Equal(t, listAllQuery, runner.calls[0].cypher)
}

func TestListAll_EmptyIsNotNil(t *testing.T) {
	svc := newTestService(&fakeRunner{})

	got, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchByName_TrimsAndBinds(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"soup", "soup"},
		{"  Soup ", "Soup"},
		{"", ""},
		{"   ", ""},
		{"' OR 1=1 //", "' OR 1=1 //"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			runner := &fakeRunner{}
			_, err := newTestService(runner).SearchByName(context.Background(), tt.input)
			require.NoError(t, err)

			require.Len(t, runner.calls, 1)
			assert.Equal(t, graph.OpSearchByName, runner.calls[0].operation)
			assert.Equal(t, searchByNameQuery, runner.calls[0].cypher)
			assert.Equal(t, map[string]any{"query": tt.want}, runner.calls[0].params)
		})
	}
}

func TestSearchByIngredients_NormalizesInput(t *testing.T) {
	runner := &fakeRunner{records: []*neo4j.Record{
		summaryRecord("Pasta", "Alice", "Easy", int64(7)),
	}}
	svc := newTestService(runner)

	got, err := svc.SearchByIngredients(context.Background(), []string{" salt", "pepper ", "", "salt"})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"salt", "pepper"}, runner.calls[0].params["ingredients"])
	assert.Equal(t, 7, got[0].NumberOfIngredients)
}

func TestSearchByIngredients_EmptyListBindsEmptySlice(t *testing.T) {
	runner := &fakeRunner{records: []*neo4j.Record{
		summaryRecord("Plain Water", "Alice", "Easy", int64(0)),
	}}

	got, err := newTestService(runner).SearchByIngredients(context.Background(), nil)
	require.NoError(t, err)

	ingredients, ok := runner.calls[0].params["ingredients"].([]string)
	require.True(t, ok)
	assert.NotNil(t, ingredients)
	assert.Empty(t, ingredients)
	assert.Equal(t, 0, got[0].NumberOfIngredients)
}

func TestSearchByAuthor(t *testing.T) {
	runner := &fakeRunner{records: []*neo4j.Record{
		{Keys: []string{"name"}, Values: []any{"Apple Pie"}},
		{Keys: []string{"name"}, Values: []any{"Plain Water"}},
	}}

	got, err := newTestService(runner).SearchByAuthor(context.Background(), " Mary Cadogan ")
	require.NoError(t, err)

	assert.Equal(t, []AuthorRecipe{
		{Name: "Apple Pie", Action: "Details"},
		{Name: "Plain Water", Action: "Details"},
	}, got)
	assert.Equal(t, map[string]any{"author": "Mary Cadogan"}, runner.calls[0].params)
	assert.Equal(t, graph.OpSearchByAuthor, runner.calls[0].operation)
}

func TestSearchByAuthor_Unknown(t *testing.T) {
	got, err := newTestService(&fakeRunner{}).SearchByAuthor(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetDetails(t *testing.T) {
	runner := &fakeRunner{records: []*neo4j.Record{{
		Keys:   []string{"description", "cookingTime", "preparationTime", "ingredients"},
		Values: []any{"A warming soup", int64(1800), int64(600), []any{"tomato", "onion"}},
	}}}

	got, err := newTestService(runner).GetDetails(context.Background(), "Tomato Soup ")
	require.NoError(t, err)

	assert.Equal(t, &Details{
		Description:     "A warming soup",
		CookingTime:     1800,
		PreparationTime: 600,
		Ingredients:     []string{"tomato", "onion"},
	}, got)
	assert.Equal(t, map[string]any{"name": "Tomato Soup"}, runner.calls[0].params)
}

func TestGetDetails_NoIngredients(t *testing.T) {
	runner := &fakeRunner{records: []*neo4j.Record{{
		Keys:   []string{"description", "cookingTime", "preparationTime", "ingredients"},
		Values: []any{"Just water", int64(0), int64(1), []any{}},
	}}}

	got, err := newTestService(runner).GetDetails(context.Background(), "Plain Water")
	require.NoError(t, err)
	assert.NotNil(t, got.Ingredients)
	assert.Empty(t, got.Ingredients)
}

func TestGetDetails_NotFound(t *testing.T) {
	_, err := newTestService(&fakeRunner{}).GetDetails(context.Background(), "Nonexistent Dish")

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.NotFound))
}

func TestService_PropagatesStoreErrors(t *testing.T) {
	storeErr := errors.UnavailableError(context.DeadlineExceeded, "graph query timed out")
	svc := newTestService(&fakeRunner{err: storeErr})

	_, err := svc.ListAll(context.Background())
	assert.Same(t, storeErr, err)

	_, err = svc.SearchByAuthor(context.Background(), "x")
	assert.True(t, stderrors.Is(err, errors.Unavailable))

	_, err = svc.GetDetails(context.Background(), "x")
	assert.True(t, stderrors.Is(err, errors.Unavailable))
}

func TestService_DataIntegrity(t *testing.T) {
	tests := []struct {
		name   string
		record *neo4j.Record
	}{
		{"null count", summaryRecord("A", "B", "Easy", nil)},
		{"fractional count", summaryRecord("A", "B", "Easy", 2.5)},
		{"string count", summaryRecord("A", "B", "Easy", "3")},
		{"numeric name", &neo4j.Record{
			Keys:   []string{"name", "author", "skillLevel", "numberOfIngredients"},
			Values: []any{int64(9), "B", "Easy", int64(1)},
		}},
		{"missing column", &neo4j.Record{Keys: []string{"name"}, Values: []any{"A"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{records: []*neo4j.Record{tt.record}}
			got, err := newTestService(runner).ListAll(context.Background())

			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.DataIntegrity))
		})
	}
}
