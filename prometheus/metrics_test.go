package prometheus_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/DennisFaucher/aisalesplan/mock"
	"github.com/DennisFaucher/aisalesplan/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("counts searches by outcome", func(t *testing.T) {
		t.Parallel()

		m := prometheus.NewMetrics()
		calls := 0
		inner := &mock.Searcher{SearchFn: func(ctx context.Context, query string) (*aisalesplan.SearchResult, error) {
			calls++
			if calls == 1 {
				return &aisalesplan.SearchResult{Content: "ok"}, nil
			}
			return nil, aisalesplan.Errorf(aisalesplan.EUNAUTHORIZED, "no key")
		}}
		s := prometheus.NewInstrumentedSearcher(inner, "perplexity", m)

		_, err := s.Search(context.Background(), "q")
		require.NoError(t, err)
		_, err = s.Search(context.Background(), "q")
		require.Error(t, err)

		expected := `
# HELP aisalesplan_searches_total Total number of backend searches by backend and error code
# TYPE aisalesplan_searches_total counter
aisalesplan_searches_total{backend="perplexity",code="ok"} 1
aisalesplan_searches_total{backend="perplexity",code="unauthorized"} 1
`
		require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "aisalesplan_searches_total"))
		n, err := testutil.GatherAndCount(m.Registry(), "aisalesplan_search_duration_seconds")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestMetrics_Middleware(t *testing.T) {
	t.Parallel()

	t.Run("labels requests with route pattern and status", func(t *testing.T) {
		t.Parallel()

		m := prometheus.NewMetrics()
		mux := http.NewServeMux()
		mux.HandleFunc("GET /research/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		h := m.Middleware(mux)

		for _, path := range []string{"/research/a", "/research/b"} {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusNotFound, rec.Code)
		}

		expected := `
# HELP aisalesplan_http_requests_total Total number of HTTP requests by route and status
# TYPE aisalesplan_http_requests_total counter
aisalesplan_http_requests_total{route="GET /research/{id}",status="404"} 2
`
		require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "aisalesplan_http_requests_total"))
	})

	t.Run("defaults to 200 when handler only writes a body", func(t *testing.T) {
		t.Parallel()

		m := prometheus.NewMetrics()
		h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "ok")
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/anything", nil))

		expected := `
# HELP aisalesplan_http_requests_total Total number of HTTP requests by route and status
# TYPE aisalesplan_http_requests_total counter
aisalesplan_http_requests_total{route="unmatched",status="200"} 1
`
		require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "aisalesplan_http_requests_total"))
	})
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := prometheus.NewMetrics()
	m.Middleware(http.NotFoundHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `aisalesplan_http_requests_total{route="unmatched",status="404"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
