// internal/pipeline/enricher/enricher.go
package enricher

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	apperrors "search-bot/internal/common/errors"
	"search-bot/internal/common/fallback"
	"search-bot/internal/common/logger"
	"search-bot/internal/models"
)

// FallbackInsight replaces an insight whose generation failed or came back empty.
const FallbackInsight = "No AI insight is available for this result."

// Generator is the text-generation collaborator.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxOutputTokens int) (string, error)
}

type Enricher struct {
	config    *Config
	generator Generator
	errors    *apperrors.ErrorHandler
	logger    logger.Logger
}

func New(config *Config, generator Generator, errHandler *apperrors.ErrorHandler, log logger.Logger) *Enricher {
	return &Enricher{
		config:    config,
		generator: generator,
		errors:    errHandler,
		logger: log.With(map[string]interface{}{
			"component": "enricher",
		}),
	}
}

// EnrichHits attaches an insight to each of the first MaxEnrichedHits hits.
// Generation runs concurrently per hit and never fails the call: a hit whose
// generation failed carries FallbackInsight. Order follows hits.
func (e *Enricher) EnrichHits(ctx context.Context, hits []models.SearchHit, query string, cls models.Classification) []models.EnrichedHit {
	top := models.TopHits(hits)
	enriched := make([]models.EnrichedHit, len(top))

	var g errgroup.Group
	for i, hit := range top {
		g.Go(func() error {
			prompt := buildInsightPrompt(query, cls, hit)
			insight := fallback.Or(func() (string, error) {
				return e.generate(ctx, prompt, e.config.InsightMaxTokens)
			}, FallbackInsight, func(err error) {
				e.errors.Degraded("enrich", err, map[string]interface{}{
					"hitIndex": i,
					"url":      hit.URL,
				})
			})
			enriched[i] = models.EnrichedHit{SearchHit: hit, Insight: insight}
			return nil
		})
	}
	_ = g.Wait()

	fallbacks := 0
	for _, h := range enriched {
		if h.Insight == FallbackInsight {
			fallbacks++
		}
	}
	e.logger.Info("hits enriched", map[string]interface{}{
		"available": len(hits),
		"enriched":  len(enriched),
		"fallbacks": fallbacks,
	})

	return enriched
}

// Summarize produces the overview across enriched hits. A failed or empty
// generation yields "", which callers treat as "no overview".
func (e *Enricher) Summarize(ctx context.Context, query string, enriched []models.EnrichedHit, cls models.Classification) string {
	if len(enriched) == 0 {
		return ""
	}

	prompt := buildOverviewPrompt(query, cls, enriched)
	return fallback.Or(func() (string, error) {
		return e.generate(ctx, prompt, e.config.OverviewMaxTokens)
	}, "", func(err error) {
		e.errors.Degraded("summarize", err, map[string]interface{}{
			"hitCount": len(enriched),
		})
	})
}

// generate runs on errgroup goroutines, out of reach of any caller's recover.
// A panicking generator becomes a generation error.
func (e *Enricher) generate(ctx context.Context, prompt string, maxTokens int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", apperrors.NewGenerationError(e.config.Provider, fmt.Errorf("panic: %v", r))
		}
	}()

	text, err = e.generator.Generate(ctx, prompt, maxTokens)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.NewGenerationEmptyError(e.config.Provider)
	}
	return text, nil
}
