package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/recipegraph/internal/graph"
)

var _ graph.QueryObserver = (*Recorder)(nil)

func TestRecorder_ObserveRequest(t *testing.T) {
	r := NewRecorder()

	r.ObserveRequest(http.MethodGet, "/api/recipes", http.StatusOK, 12*time.Millisecond)
	r.ObserveRequest(http.MethodGet, "/api/recipes", http.StatusOK, 8*time.Millisecond)
	r.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.httpRequestsTotal.WithLabelValues("GET", "/api/recipes", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestRecorder_ObserveQuery(t *testing.T) {
	r := NewRecorder()

	r.ObserveQuery(graph.OpListRecipes, 5*time.Millisecond, nil)
	r.ObserveQuery(graph.OpListRecipes, 5*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.queriesTotal.WithLabelValues(graph.OpListRecipes, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.queriesTotal.WithLabelValues(graph.OpListRecipes, "error")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.ObserveQuery(graph.OpRecipeDetails, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `recipegraph_graph_queries_total{operation="recipe_details",outcome="success"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
