// internal/transport/webhook/handler.go
package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "search-bot/internal/common/errors"
	"search-bot/internal/common/logger"
	"search-bot/internal/common/metrics"
	"search-bot/internal/models"
	"search-bot/internal/pipeline/orchestrator"
	"search-bot/internal/pipeline/sequencer"
)

const (
	SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

	maxUpdateSize = 1 << 20
)

// QueryHandler runs one search query for a chat.
type QueryHandler interface {
	HandleQuery(ctx context.Context, target, query string) orchestrator.Result
}

type Config struct {
	Secret       string
	QueryTimeout time.Duration
}

// Handler receives Telegram webhook updates. Text messages become search
// queries; known commands get their static reply; everything else is
// acknowledged and dropped.
type Handler struct {
	config  *Config
	queries QueryHandler
	sender  sequencer.Sender
	dedup   Deduplicator
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, queries QueryHandler, sender sequencer.Sender, dedup Deduplicator, errHandler *apperrors.ErrorHandler, log logger.Logger) *Handler {
	if dedup == nil {
		dedup = NoopDeduplicator{}
	}
	return &Handler{
		config:  config,
		queries: queries,
		sender:  sender,
		dedup:   dedup,
		errors:  errHandler,
		logger: log.With(map[string]interface{}{
			"component": "webhook",
		}),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.config.Secret != "" && r.Header.Get(SecretHeader) != h.config.Secret {
		metrics.UpdatesReceived.WithLabelValues("unauthorized").Inc()
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUpdateSize))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	update, err := h.decode(body)
	if err != nil {
		metrics.UpdatesReceived.WithLabelValues("invalid").Inc()
		h.errors.Handle(r.Context(), "decode_update", err, nil)
		http.Error(w, "invalid update", http.StatusBadRequest)
		return
	}

	// The query must finish even if Telegram drops the connection.
	ctx := context.WithoutCancel(r.Context())
	result := h.route(ctx, update)
	metrics.UpdatesReceived.WithLabelValues(result).Inc()

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) decode(body []byte) (*models.Update, error) {
	res := compiledUpdateSchema.ValidateBytes(body)
	if !res.Valid {
		return nil, apperrors.NewInvalidUpdateError(strings.Join(res.GetErrorMessages(), "; "))
	}

	var update models.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, apperrors.NewInvalidUpdateError(err.Error())
	}
	return &update, nil
}

// route handles one decoded update and returns the routing result label.
func (h *Handler) route(ctx context.Context, update *models.Update) string {
	first, err := h.dedup.FirstSeen(ctx, update.UpdateID)
	if err != nil {
		// Dedup is best effort; process rather than drop.
		h.logger.Warn("update dedup unavailable", map[string]interface{}{
			"updateId": update.UpdateID,
			"error":    err.Error(),
		})
		first = true
	}
	if !first {
		dup := apperrors.NewDuplicateUpdateError(update.UpdateID)
		h.logger.Info("duplicate update ignored", map[string]interface{}{
			"updateId":  update.UpdateID,
			"errorCode": string(dup.Code),
			"details":   dup.Details,
		})
		return "duplicate"
	}

	msg := update.Message
	if msg == nil {
		return "ignored"
	}
	if msg.From != nil && msg.From.IsBot {
		return "ignored"
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return "ignored"
	}

	target := strconv.FormatInt(msg.Chat.ID, 10)

	if isCommand(text) {
		reply, ok := commandReply(text)
		if !ok {
			return "ignored"
		}
		if err := h.sender.Send(ctx, target, reply); err != nil {
			h.errors.Handle(ctx, "command_reply", err, map[string]interface{}{
				"updateId": update.UpdateID,
				"target":   target,
			})
		}
		return "command"
	}

	qctx := ctx
	if h.config.QueryTimeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, h.config.QueryTimeout)
		defer cancel()
	}
	result := h.queries.HandleQuery(qctx, target, text)
	h.logger.Debug("query handled", map[string]interface{}{
		"updateId": update.UpdateID,
		"queryId":  result.QueryID,
		"state":    string(result.State),
	})
	return "query"
}
