package elastic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-bot/internal/common/config"
	"search-bot/internal/common/database"
	apperrors "search-bot/internal/common/errors"
	"search-bot/internal/common/logger"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	es, err := database.NewElasticsearch(config.ElasticsearchConfig{Addresses: []string{server.URL}})
	require.NoError(t, err)

	return New(&Config{Index: "pages", Size: 10, Fields: []string{"title^2", "snippet", "content"}}, es, logger.NewTestLogger(t))
}

func TestSearch_QueryString(t *testing.T) {
	query := `"rate limiter" -redis`
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pages/_search", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("size"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		qs := body["query"].(map[string]interface{})["query_string"].(map[string]interface{})
		assert.Equal(t, query, qs["query"])

		_, _ = w.Write([]byte(`{
		  "took": 12,
		  "hits": {
		    "total": {"value": 10000, "relation": "gte"},
		    "hits": [
		      {"_source": {"title": "Token bucket", "url": "https://blog.example.com/tb", "snippet": "refill"}},
		      {"_source": {"title": "Leaky bucket", "url": "not a url", "snippet": "outflow"}}
		    ]
		  }
		}`))
	})

	res, err := p.Search(context.Background(), query)

	require.NoError(t, err)
	require.Len(t, res.Hits, 2)
	assert.Equal(t, "Token bucket", res.Hits[0].Title)
	assert.Equal(t, "blog.example.com", res.Hits[0].DisplaySource)
	assert.Equal(t, "not a url", res.Hits[1].DisplaySource)
	assert.Equal(t, "10000+", res.Metadata.TotalResultsLabel)
	assert.InDelta(t, 0.012, res.Metadata.ElapsedSeconds, 0.0001)
}

func TestSearch_ErrorStatus(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"search_phase_execution_exception"}}`))
	})

	_, err := p.Search(context.Background(), "title:(")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSearchProviderFailed, apperrors.CodeOf(err))
}

func TestSearch_MalformedBody(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits": `))
	})

	_, err := p.Search(context.Background(), "q")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSearchResponseInvalid, apperrors.CodeOf(err))
}
