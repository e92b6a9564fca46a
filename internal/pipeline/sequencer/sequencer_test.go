package sequencer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "search-bot/internal/common/errors"
	"search-bot/internal/common/logger"
	"search-bot/internal/models"
)

type fakeSender struct {
	sent   []models.MessagePayload
	failOn map[models.PayloadKind]error
	failAt int // 1-based send number that fails, 0 disables
}

func (f *fakeSender) Send(_ context.Context, _ string, p models.MessagePayload) error {
	f.sent = append(f.sent, p)
	if f.failAt > 0 && len(f.sent) == f.failAt {
		return apperrors.NewDeliveryError("fake", errors.New("429 too many requests"))
	}
	if err, ok := f.failOn[p.Kind]; ok {
		return err
	}
	return nil
}

func createTestSequencer(t *testing.T, sender Sender) (*Sequencer, *[]time.Duration) {
	log := logger.NewTestLogger(t)
	s := New(&Config{ShortPause: 400 * time.Millisecond, LongPause: 700 * time.Millisecond}, sender, apperrors.NewErrorHandler(log, nil), log)
	pauses := &[]time.Duration{}
	s.sleep = func(_ context.Context, d time.Duration) error {
		*pauses = append(*pauses, d)
		return nil
	}
	return s, pauses
}

func response() []models.MessagePayload {
	return []models.MessagePayload{
		{Body: "header", Kind: models.PayloadHeader},
		{Body: "overview", Kind: models.PayloadOverview},
		{Body: "r1", Kind: models.PayloadResult},
		{Body: "r2", Kind: models.PayloadResult},
		{Body: "footer", Kind: models.PayloadFooter},
	}
}

var combined = models.MessagePayload{Body: "everything", Kind: models.PayloadCombined}

func TestDeliver_InOrderWithPacing(t *testing.T) {
	sender := &fakeSender{}
	s, pauses := createTestSequencer(t, sender)

	out := s.Deliver(context.Background(), "42", response(), combined)

	assert.Equal(t, models.DeliveryOutcome{Status: models.DeliveryDelivered, Sent: 5}, out)
	assert.Equal(t, response(), sender.sent)
	assert.Equal(t, []time.Duration{
		400 * time.Millisecond, // header
		400 * time.Millisecond, // overview
		700 * time.Millisecond, // r1
		700 * time.Millisecond, // r2
	}, *pauses)
}

func TestDeliver_SinglePayloadHasNoPause(t *testing.T) {
	sender := &fakeSender{}
	s, pauses := createTestSequencer(t, sender)

	out := s.Deliver(context.Background(), "42", []models.MessagePayload{{Body: "only", Kind: models.PayloadNotice}}, combined)

	assert.Equal(t, models.DeliveryDelivered, out.Status)
	assert.Empty(t, *pauses)
}

func TestDeliver_MidSequenceFailureSendsFallbackOnce(t *testing.T) {
	tests := []struct {
		name     string
		failAt   int
		wantSent int
	}{
		{"header fails", 1, 0},
		{"second result fails", 4, 3},
		{"footer fails", 5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{failAt: tt.failAt}
			s, _ := createTestSequencer(t, sender)

			out := s.Deliver(context.Background(), "42", response(), combined)

			assert.Equal(t, models.DeliveryFallbackDelivered, out.Status)
			assert.Equal(t, tt.wantSent, out.Sent)
			require.Len(t, sender.sent, tt.failAt+1)
			assert.Equal(t, combined, sender.sent[len(sender.sent)-1])
			for _, p := range sender.sent[:tt.failAt] {
				assert.NotEqual(t, models.PayloadCombined, p.Kind)
			}
		})
	}
}

func TestDeliver_FallbackFailureIsNotRetried(t *testing.T) {
	sender := &fakeSender{
		failAt: 2,
		failOn: map[models.PayloadKind]error{models.PayloadCombined: errors.New("chat not found")},
	}
	s, _ := createTestSequencer(t, sender)

	out := s.Deliver(context.Background(), "42", response(), combined)

	assert.Equal(t, models.DeliveryFallbackFailed, out.Status)
	assert.Len(t, sender.sent, 3)
}

func TestDeliver_CancelledPauseFallsBack(t *testing.T) {
	sender := &fakeSender{}
	s, _ := createTestSequencer(t, sender)
	s.sleep = func(context.Context, time.Duration) error { return context.Canceled }

	out := s.Deliver(context.Background(), "42", response(), combined)

	assert.Equal(t, models.DeliveryFallbackDelivered, out.Status)
	assert.Equal(t, 1, out.Sent)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, models.PayloadCombined, sender.sent[1].Kind)
}

// ctxSender fails any send whose context is already done.
type ctxSender struct {
	sent      []models.MessagePayload
	deadlines []time.Duration
}

func (c *ctxSender) Send(ctx context.Context, _ string, p models.MessagePayload) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewDeliveryError("fake", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		c.deadlines = append(c.deadlines, time.Until(deadline))
	}
	c.sent = append(c.sent, p)
	return nil
}

func TestDeliver_FallbackSurvivesCancelledContext(t *testing.T) {
	sender := &ctxSender{}
	log := logger.NewTestLogger(t)
	s := New(&Config{ShortPause: time.Second, FallbackTimeout: 3 * time.Second}, sender, apperrors.NewErrorHandler(log, nil), log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	out := s.Deliver(ctx, "42", response(), combined)

	assert.Equal(t, models.DeliveryFallbackDelivered, out.Status)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, models.PayloadCombined, sender.sent[1].Kind)
	require.Len(t, sender.deadlines, 1)
	assert.LessOrEqual(t, sender.deadlines[0], 3*time.Second)
}

func TestNew_DefaultsFallbackTimeout(t *testing.T) {
	log := logger.NewTestLogger(t)
	s := New(&Config{}, &fakeSender{}, apperrors.NewErrorHandler(log, nil), log)
	assert.Equal(t, defaultFallbackTimeout, s.fallbackTimeout)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
