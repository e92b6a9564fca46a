// internal/pipeline/sequencer/sequencer.go
package sequencer

import (
	"context"
	"time"

	apperrors "search-bot/internal/common/errors"
	"search-bot/internal/common/fallback"
	"search-bot/internal/common/logger"
	"search-bot/internal/models"
)

// Sender is the messaging collaborator.
type Sender interface {
	Send(ctx context.Context, target string, payload models.MessagePayload) error
}

const defaultFallbackTimeout = 10 * time.Second

type Sequencer struct {
	config *Config
	sender Sender
	errors *apperrors.ErrorHandler
	logger logger.Logger
	sleep  func(ctx context.Context, d time.Duration) error

	fallbackTimeout time.Duration
}

func New(config *Config, sender Sender, errHandler *apperrors.ErrorHandler, log logger.Logger) *Sequencer {
	return &Sequencer{
		config: config,
		sender: sender,
		errors: errHandler,
		logger: log.With(map[string]interface{}{
			"component": "sequencer",
		}),
		sleep:           sleepContext,
		fallbackTimeout: fallbackTimeoutOrDefault(config.FallbackTimeout),
	}
}

func fallbackTimeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultFallbackTimeout
	}
	return d
}

// Deliver sends payloads to target strictly in order, pausing between sends.
// On the first failed send the rest of the sequence is abandoned and the
// combined payload is sent once instead, bounded by FallbackTimeout even when
// ctx is already done. A failed fallback is logged and not retried.
func (s *Sequencer) Deliver(ctx context.Context, target string, payloads []models.MessagePayload, combined models.MessagePayload) models.DeliveryOutcome {
	sent, err := s.sendSequence(ctx, target, payloads)
	if err == nil {
		s.logger.Info("response delivered", map[string]interface{}{
			"target":   target,
			"payloads": sent,
		})
		return models.DeliveryOutcome{Status: models.DeliveryDelivered, Sent: sent}
	}

	s.errors.Degraded("deliver", err, map[string]interface{}{
		"target":   target,
		"sent":     sent,
		"payloads": len(payloads),
	})

	// The sequence may have stopped because ctx was cancelled during a pause,
	// so the fallback gets its own deadline.
	fallbackCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fallbackTimeout)
	defer cancel()

	status := fallback.OrElse(func() (models.DeliveryStatus, error) {
		return models.DeliveryFallbackDelivered, s.sender.Send(fallbackCtx, target, combined)
	}, func(err error) models.DeliveryStatus {
		s.errors.Handle(fallbackCtx, "deliver_fallback", err, map[string]interface{}{
			"target": target,
		})
		return models.DeliveryFallbackFailed
	})

	return models.DeliveryOutcome{Status: status, Sent: sent}
}

func (s *Sequencer) sendSequence(ctx context.Context, target string, payloads []models.MessagePayload) (int, error) {
	for i, p := range payloads {
		if err := s.sender.Send(ctx, target, p); err != nil {
			return i, err
		}
		if i == len(payloads)-1 {
			break
		}
		if err := s.sleep(ctx, s.pauseAfter(p.Kind)); err != nil {
			return i + 1, err
		}
	}
	return len(payloads), nil
}

func (s *Sequencer) pauseAfter(kind models.PayloadKind) time.Duration {
	if kind == models.PayloadResult {
		return s.config.LongPause
	}
	return s.config.ShortPause
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
