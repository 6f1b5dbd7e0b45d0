package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-landwatch/observability"
	"go-landwatch/processor"
	"go-landwatch/render"
	"go-landwatch/types"
)

type stubSearcher struct{}

func (stubSearcher) Search(context.Context, processor.SearchRequest) ([]types.PolicyEvent, error) {
	return []types.PolicyEvent{}, nil
}

func (stubSearcher) CacheSize(context.Context) int { return 0 }

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	m.Searches.WithLabelValues("recent", "ok").Inc()

	return SetupRouter(Deps{
		Searcher: stubSearcher{},
		Styles:   render.DefaultStyles(),
		Gatherer: reg,
	})
}

func TestSetupRouter_Routes(t *testing.T) {
	r := newRouter(t)

	for _, target := range []string{"/api/search?q=x", "/api/top_impact", "/api/health", "/api/boundaries", "/"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusOK, w.Code, target)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), target)
	}
}

func TestSetupRouter_Metrics(t *testing.T) {
	r := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `landwatch_searches_total{mode="recent",outcome="ok"} 1`)
}

func TestSetupRouter_Preflight(t *testing.T) {
	r := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/search", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
