// internal/providers/genai/gemini/provider.go
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"search-bot/internal/common/config"
	apperrors "search-bot/internal/common/errors"
	"search-bot/internal/common/logger"
)

const ProviderName = "gemini"

type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	// BaseURL overrides the API endpoint; empty uses the public endpoint.
	BaseURL string
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		APIKey:      cfg.Generation.Gemini.APIKey,
		Model:       cfg.Generation.Gemini.Model,
		Temperature: float32(cfg.Generation.Temperature),
	}
}

// Provider generates text with the Gemini API.
type Provider struct {
	config *Config
	client *genai.Client
	logger logger.Logger
}

func New(ctx context.Context, cfg *Config, log logger.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.NewConfigError("gemini api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Provider{
		config: cfg,
		client: client,
		logger: log.With(map[string]interface{}{
			"provider": ProviderName,
			"model":    cfg.Model,
		}),
	}, nil
}

// Generate returns the model's text for prompt. An empty answer is returned
// as "" without error; callers decide what empty means.
func (p *Provider) Generate(ctx context.Context, prompt string, maxOutputTokens int) (string, error) {
	temperature := p.config.Temperature
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.config.Model, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxOutputTokens),
		Temperature:     &temperature,
	})
	if err != nil {
		return "", apperrors.NewGenerationError(ProviderName, err)
	}

	text := resp.Text()
	p.logger.Debug("generation completed", map[string]interface{}{
		"maxOutputTokens": maxOutputTokens,
		"chars":           len(text),
	})
	return text, nil
}
