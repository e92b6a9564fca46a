// cmd/search-bot/app.go
package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"search-bot/internal/common/config"
	"search-bot/internal/common/database"
	apperrors "search-bot/internal/common/errors"
	"search-bot/internal/common/logger"
	"search-bot/internal/common/metrics"
	"search-bot/internal/common/observability"
	"search-bot/internal/pipeline/classifier"
	"search-bot/internal/pipeline/enricher"
	"search-bot/internal/pipeline/orchestrator"
	"search-bot/internal/pipeline/sequencer"
	"search-bot/internal/providers/genai/gemini"
	"search-bot/internal/providers/genai/httpgen"
	"search-bot/internal/providers/messaging/telegram"
	"search-bot/internal/providers/search/elastic"
	"search-bot/internal/providers/search/google"
)

// readinessCheck reports whether a dependency can serve traffic.
type readinessCheck struct {
	name  string
	check func(ctx context.Context) error
}

// app holds the wired components shared by all commands.
type app struct {
	cfg          *config.Config
	zapLog       *zap.Logger
	log          logger.Logger
	obs          *observability.Observability
	errors       *apperrors.ErrorHandler
	sender       sequencer.Sender
	orchestrator *orchestrator.Orchestrator
	redis        *database.RedisClient
	checks       []readinessCheck
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// newApp wires the pipeline. A nil sender means the Telegram channel.
func newApp(ctx context.Context, cfg *config.Config, sender sequencer.Sender) (*app, error) {
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"service": cfg.App.Name,
	})

	a := &app{
		cfg:    cfg,
		zapLog: zapLog,
		log:    log,
		obs:    observability.New(cfg.App.Name, log, nil),
		errors: apperrors.NewErrorHandler(log, metrics.RecordError),
	}

	if sender == nil {
		sender = telegram.New(telegram.LoadConfig(cfg), log)
	}
	a.sender = sender

	searcher, err := a.buildSearcher(ctx)
	if err != nil {
		return nil, err
	}
	generator, err := a.buildGenerator(ctx)
	if err != nil {
		return nil, err
	}

	enr := enricher.New(enricher.LoadConfig(cfg), generator, a.errors, log)
	seq := sequencer.New(sequencer.LoadConfig(cfg), sender, a.errors, log)
	a.orchestrator = orchestrator.New(classifier.Default(), searcher, enr, seq, sender, a.errors, a.obs, log)

	return a, nil
}

func (a *app) buildSearcher(ctx context.Context) (orchestrator.Searcher, error) {
	switch a.cfg.Search.Provider {
	case config.ProviderElasticsearch:
		var es *database.ElasticsearchClient
		err := retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(a.cfg.Search.Elasticsearch)
			if err != nil {
				return err
			}
			return es.Ping(ctx)
		}, 5, 2*time.Second, a.log, "Elasticsearch connection")
		if err != nil {
			return nil, err
		}
		a.checks = append(a.checks, readinessCheck{name: "elasticsearch", check: es.Ping})
		return elastic.New(elastic.LoadConfig(a.cfg), es, a.log), nil
	default:
		return google.New(google.LoadConfig(a.cfg), a.log), nil
	}
}

func (a *app) buildGenerator(ctx context.Context) (enricher.Generator, error) {
	switch a.cfg.Generation.Provider {
	case config.ProviderHTTP:
		return httpgen.New(httpgen.LoadConfig(a.cfg), a.log), nil
	default:
		g, err := gemini.New(ctx, gemini.LoadConfig(a.cfg), a.log)
		if err != nil {
			return nil, fmt.Errorf("gemini provider: %w", err)
		}
		return g, nil
	}
}

// connectRedis opens the dedup store. Failure after retries is fatal for
// serve since duplicate deliveries would re-run whole queries.
func (a *app) connectRedis(ctx context.Context) error {
	a.redis = database.NewRedis(a.cfg.Redis)
	err := retryWithBackoff(func() error {
		return a.redis.Ping(ctx)
	}, 10, 2*time.Second, a.log, "Redis connection")
	if err != nil {
		return err
	}
	a.checks = append(a.checks, readinessCheck{name: "redis", check: a.redis.Ping})
	return nil
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("error closing redis", map[string]interface{}{"error": err.Error()})
		}
	}
	a.obs.Shutdown()
	_ = a.zapLog.Sync()
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
