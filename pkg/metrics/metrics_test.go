package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := NewServerMetrics("test")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/books/{bookId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/api/books/1", "/api/books/2", "/api/books/3"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// three distinct IDs collapse into the one pattern series
	assert.Equal(t, 1, testutil.CollectAndCount(m.Requests))
	assert.Equal(t, float64(3),
		testutil.ToFloat64(m.Requests.WithLabelValues("GET /api/books/{bookId}", "200")))

	// unrouted requests share a single fallback label instead of the raw path
	for _, path := range []string{"/nope/1", "/nope/2"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.Requests.WithLabelValues("GET unmatched", "404")))
}
