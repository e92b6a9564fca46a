// internal/providers/search/google/provider.go
package google

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	apperrors "search-bot/internal/common/errors"
	apphttp "search-bot/internal/common/http"
	"search-bot/internal/common/logger"
	"search-bot/internal/models"
)

const (
	ProviderName = "google"

	// Custom Search returns at most ten items per request.
	maxPerRequest = 10
)

// Provider queries the Google Custom Search JSON API.
type Provider struct {
	config *Config
	client *apphttp.Client
	logger logger.Logger
}

func New(config *Config, log logger.Logger) *Provider {
	return &Provider{
		config: config,
		client: apphttp.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"provider": ProviderName,
		}),
	}
}

// Search sends query unchanged. A response without items is a valid empty result.
func (p *Provider) Search(ctx context.Context, query string) (models.SearchResult, error) {
	searchURL, err := p.buildSearchURL(query)
	if err != nil {
		return models.SearchResult{}, apperrors.NewSearchProviderError(ProviderName, err)
	}

	resp, err := p.client.Get(ctx, searchURL, nil)
	if err != nil {
		if apphttp.IsTimeout(err) {
			return models.SearchResult{}, apperrors.NewSearchTimeoutError(ProviderName, err)
		}
		return models.SearchResult{}, apperrors.NewSearchProviderError(ProviderName, err)
	}
	if !resp.OK() {
		p.logger.Warn("search API returned non-success status", map[string]interface{}{
			"status": resp.StatusCode,
			"error":  gjson.GetBytes(resp.Body, "error.message").String(),
		})
		return models.SearchResult{}, apperrors.NewSearchStatusError(ProviderName, resp.StatusCode)
	}

	result, err := parseResponse(resp.Body)
	if err != nil {
		return models.SearchResult{}, err
	}

	p.logger.Info("web search completed", map[string]interface{}{
		"resultCount": len(result.Hits),
		"total":       result.Metadata.TotalResultsLabel,
	})
	return result, nil
}

func (p *Provider) buildSearchURL(query string) (string, error) {
	baseURL, err := url.Parse(p.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	num := p.config.MaxResults
	if num <= 0 || num > maxPerRequest {
		num = maxPerRequest
	}

	params := url.Values{}
	params.Add("key", p.config.APIKey)
	params.Add("cx", p.config.EngineID)
	params.Add("q", query)
	params.Add("num", fmt.Sprintf("%d", num))
	baseURL.RawQuery = params.Encode()
	return baseURL.String(), nil
}

func parseResponse(body []byte) (models.SearchResult, error) {
	if !gjson.ValidBytes(body) {
		return models.SearchResult{}, apperrors.NewSearchResponseError(ProviderName, "response is not valid JSON")
	}

	doc := gjson.ParseBytes(body)
	items := doc.Get("items").Array()
	hits := make([]models.SearchHit, 0, len(items))
	for _, item := range items {
		link := item.Get("link").String()
		if link == "" {
			continue
		}
		hits = append(hits, models.SearchHit{
			Title:         strings.TrimSpace(item.Get("title").String()),
			URL:           link,
			Snippet:       strings.Join(strings.Fields(item.Get("snippet").String()), " "),
			DisplaySource: displaySource(item.Get("displayLink").String(), link),
		})
	}

	return models.SearchResult{
		Hits: hits,
		Metadata: models.SearchMetadata{
			TotalResultsLabel: doc.Get("searchInformation.formattedTotalResults").String(),
			ElapsedSeconds:    doc.Get("searchInformation.searchTime").Float(),
		},
	}, nil
}

func displaySource(displayLink, link string) string {
	if displayLink != "" {
		return displayLink
	}
	if u, err := url.Parse(link); err == nil {
		return u.Host
	}
	return link
}
