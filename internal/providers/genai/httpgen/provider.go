// internal/providers/genai/httpgen/provider.go
package httpgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"search-bot/internal/common/config"
	apperrors "search-bot/internal/common/errors"
	apphttp "search-bot/internal/common/http"
	"search-bot/internal/common/logger"
)

const ProviderName = "http"

type Config struct {
	GenAIBaseURL string
	APIKey       string
	Timeout      time.Duration
	Temperature  float64
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		GenAIBaseURL: strings.TrimRight(cfg.Generation.HTTP.BaseURL, "/"),
		APIKey:       cfg.Generation.HTTP.APIKey,
		Timeout:      config.GetDuration(cfg.Generation.HTTP.Timeout),
		Temperature:  cfg.Generation.Temperature,
	}
}

// Provider calls a generic text-generation service over HTTP.
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

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate makes exactly one call; failures are returned, not retried.
func (p *Provider) Generate(ctx context.Context, prompt string, maxOutputTokens int) (string, error) {
	headers := map[string]string{}
	if p.config.APIKey != "" {
		headers["Authorization"] = "Bearer " + p.config.APIKey
	}

	resp, err := p.client.PostJSON(ctx, p.config.GenAIBaseURL+"/api/ai/generate", generateRequest{
		Prompt:      prompt,
		MaxTokens:   maxOutputTokens,
		Temperature: p.config.Temperature,
	}, headers)
	if err != nil {
		return "", apperrors.NewGenerationError(ProviderName, err)
	}
	if !resp.OK() {
		return "", apperrors.NewGenerationError(ProviderName, fmt.Errorf("status %d", resp.StatusCode)).
			WithMetadata(map[string]interface{}{"status": resp.StatusCode})
	}

	var apiResponse generateResponse
	if err := json.Unmarshal(resp.Body, &apiResponse); err != nil {
		return "", apperrors.NewGenerationError(ProviderName, fmt.Errorf("decode error: %w", err))
	}

	p.logger.Debug("generation completed", map[string]interface{}{
		"maxOutputTokens": maxOutputTokens,
		"chars":           len(apiResponse.Text),
	})
	return apiResponse.Text, nil
}
