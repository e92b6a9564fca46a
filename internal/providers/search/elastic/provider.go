// internal/providers/search/elastic/provider.go
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"search-bot/internal/common/database"
	apperrors "search-bot/internal/common/errors"
	apphttp "search-bot/internal/common/http"
	"search-bot/internal/common/logger"
	"search-bot/internal/models"
)

const ProviderName = "elasticsearch"

// Provider runs queries as Elasticsearch query_string searches, so the
// index's own operator syntax (AND, OR, -, quotes, wildcards) applies.
type Provider struct {
	config *Config
	es     *database.ElasticsearchClient
	logger logger.Logger
}

func New(config *Config, es *database.ElasticsearchClient, log logger.Logger) *Provider {
	return &Provider{
		config: config,
		es:     es,
		logger: log.With(map[string]interface{}{
			"provider": ProviderName,
			"index":    config.Index,
		}),
	}
}

type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value    int64  `json:"value"`
			Relation string `json:"relation"`
		} `json:"total"`
		Hits []struct {
			Source struct {
				Title   string `json:"title"`
				URL     string `json:"url"`
				Snippet string `json:"snippet"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (p *Provider) Search(ctx context.Context, query string) (models.SearchResult, error) {
	body, err := p.buildQuery(query)
	if err != nil {
		return models.SearchResult{}, apperrors.NewSearchProviderError(ProviderName, err)
	}

	client := p.es.Client
	res, err := client.Search(
		client.Search.WithContext(ctx),
		client.Search.WithIndex(p.config.Index),
		client.Search.WithBody(bytes.NewReader(body)),
		client.Search.WithSize(p.config.Size),
	)
	if err != nil {
		if apphttp.IsTimeout(err) {
			return models.SearchResult{}, apperrors.NewSearchTimeoutError(ProviderName, err)
		}
		return models.SearchResult{}, apperrors.NewSearchProviderError(ProviderName, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		p.logger.Warn("search returned error status", map[string]interface{}{
			"status": res.StatusCode,
		})
		return models.SearchResult{}, apperrors.NewSearchStatusError(ProviderName, res.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return models.SearchResult{}, apperrors.NewSearchResponseError(ProviderName, fmt.Sprintf("decode error: %v", err))
	}

	hits := make([]models.SearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, models.SearchHit{
			Title:         h.Source.Title,
			URL:           h.Source.URL,
			Snippet:       h.Source.Snippet,
			DisplaySource: hostOf(h.Source.URL),
		})
	}

	total := strconv.FormatInt(parsed.Hits.Total.Value, 10)
	if parsed.Hits.Total.Relation == "gte" {
		total += "+"
	}

	p.logger.Info("index search completed", map[string]interface{}{
		"resultCount": len(hits),
		"tookMs":      parsed.Took,
	})

	return models.SearchResult{
		Hits: hits,
		Metadata: models.SearchMetadata{
			TotalResultsLabel: total,
			ElapsedSeconds:    float64(parsed.Took) / 1000,
		},
	}, nil
}

func (p *Provider) buildQuery(query string) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{
			"query_string": map[string]interface{}{
				"query":            query,
				"fields":           p.config.Fields,
				"default_operator": "AND",
				"lenient":          true,
			},
		},
		"_source": []string{"title", "url", "snippet"},
	})
}

func hostOf(link string) string {
	if u, err := url.Parse(link); err == nil && u.Host != "" {
		return u.Host
	}
	return link
}
