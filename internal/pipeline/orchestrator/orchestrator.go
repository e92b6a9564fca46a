// internal/pipeline/orchestrator/orchestrator.go
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "search-bot/internal/common/errors"
	"search-bot/internal/common/logger"
	"search-bot/internal/common/metrics"
	"search-bot/internal/common/observability"
	"search-bot/internal/models"
	"search-bot/internal/pipeline/classifier"
	"search-bot/internal/pipeline/composer"
	"search-bot/internal/pipeline/enricher"
	"search-bot/internal/pipeline/sequencer"
)

// Searcher is the search-provider collaborator.
type Searcher interface {
	Search(ctx context.Context, query string) (models.SearchResult, error)
}

type Orchestrator struct {
	classifier *classifier.Classifier
	searcher   Searcher
	enricher   *enricher.Enricher
	sequencer  *sequencer.Sequencer
	sender     sequencer.Sender
	errors     *apperrors.ErrorHandler
	obs        *observability.Observability
	logger     logger.Logger
}

func New(
	cls *classifier.Classifier,
	searcher Searcher,
	enr *enricher.Enricher,
	seq *sequencer.Sequencer,
	sender sequencer.Sender,
	errHandler *apperrors.ErrorHandler,
	obs *observability.Observability,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		classifier: cls,
		searcher:   searcher,
		enricher:   enr,
		sequencer:  seq,
		sender:     sender,
		errors:     errHandler,
		obs:        obs,
		logger: log.With(map[string]interface{}{
			"component": "orchestrator",
		}),
	}
}

// HandleQuery runs one query through classify, search, enrich, compose and
// deliver. Zero hits produce a single no-results notice. Any failure before
// delivery, including a panic, produces a single fixed error notice.
func (o *Orchestrator) HandleQuery(ctx context.Context, target, query string) (result Result) {
	result = Result{QueryID: uuid.NewString(), State: StateReceived}
	start := time.Now()

	ctx, span := o.obs.StartSpan(ctx, "handle_query",
		attribute.String("queryId", result.QueryID),
		attribute.String("target", target),
	)
	log := o.logger.With(map[string]interface{}{
		"queryId": result.QueryID,
		"target":  target,
		"traceId": span.SpanContext().TraceID().String(),
	})

	metrics.QueriesActive.Inc()
	defer func() {
		metrics.QueriesActive.Dec()
		if r := recover(); r != nil {
			result = o.fail(ctx, log, target, result, apperrors.NewInternalError(fmt.Errorf("panic: %v", r)))
		}
		if result.State == StateFailed {
			span.SetStatus(codes.Error, "query failed")
		}
		span.SetAttributes(attribute.String("state", string(result.State)))
		span.End()

		kind := string(result.Classification.Kind)
		metrics.QueriesHandled.WithLabelValues(kind, string(result.State)).Inc()
		o.obs.RecordQuery(ctx, kind, string(result.State), time.Since(start))
		log.Info("query finished", map[string]interface{}{
			"state":      string(result.State),
			"kind":       kind,
			"hitCount":   result.HitCount,
			"delivery":   string(result.Delivery.Status),
			"durationMs": time.Since(start).Milliseconds(),
		})
	}()

	log.Info("query received", map[string]interface{}{
		"queryLength": len(query),
	})

	result.Classification = o.classifier.Classify(query)
	result.State = StateClassified

	var searchResult models.SearchResult
	err := o.stage(ctx, "search", func(ctx context.Context) error {
		var err error
		searchResult, err = o.searcher.Search(ctx, query)
		return err
	})
	if err != nil {
		return o.fail(ctx, log, target, result, err)
	}
	result.State = StateSearched
	result.HitCount = len(searchResult.Hits)

	if len(searchResult.Hits) == 0 {
		notice := composer.NoResults(result.Classification)
		if err := o.sender.Send(ctx, target, notice); err != nil {
			o.errors.Handle(ctx, "no_results", err, map[string]interface{}{"queryId": result.QueryID})
			result.State = StateFailed
			return result
		}
		result.State = StateNoResults
		return result
	}

	var enriched []models.EnrichedHit
	var overview string
	_ = o.stage(ctx, "enrich", func(ctx context.Context) error {
		enriched = o.enricher.EnrichHits(ctx, searchResult.Hits, query, result.Classification)
		overview = o.enricher.Summarize(ctx, query, enriched, result.Classification)
		return nil
	})
	result.State = StateEnriched

	payloads := composer.Compose(query, result.Classification, enriched, searchResult.Metadata, overview)
	combined := composer.ComposeCombined(query, result.Classification, enriched, searchResult.Metadata, overview)
	result.State = StateComposed

	_ = o.stage(ctx, "deliver", func(ctx context.Context) error {
		result.Delivery = o.sequencer.Deliver(ctx, target, payloads, combined)
		return nil
	})
	metrics.DeliveryOutcomes.WithLabelValues(string(result.Delivery.Status)).Inc()

	if result.Delivery.Status == models.DeliveryFallbackFailed {
		result.State = StateFailed
	} else {
		result.State = StateDelivered
	}
	return result
}

// stage runs fn inside a child span and records its duration.
func (o *Orchestrator) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := o.obs.StartSpan(ctx, name)
	defer span.End()

	timer := time.Now()
	err := fn(ctx)
	metrics.StageDuration.WithLabelValues(name).Observe(time.Since(timer).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.CodeOf(err)))
	}
	return err
}

// fail logs err and sends the fixed error notice. The notice send is best-effort.
// The stage logged is the last state reached before the failure.
func (o *Orchestrator) fail(ctx context.Context, log logger.Logger, target string, result Result, err error) Result {
	o.errors.Handle(ctx, string(result.State), err, map[string]interface{}{
		"queryId": result.QueryID,
	})

	if sendErr := o.sender.Send(ctx, target, composer.ErrorNotice()); sendErr != nil {
		log.Warn("failed to send error notice", map[string]interface{}{
			"error": sendErr.Error(),
		})
	}

	result.State = StateFailed
	return result
}
