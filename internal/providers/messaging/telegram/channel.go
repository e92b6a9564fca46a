// internal/providers/messaging/telegram/channel.go
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "search-bot/internal/common/errors"
	apphttp "search-bot/internal/common/http"
	"search-bot/internal/common/logger"
	"search-bot/internal/models"
)

const (
	ChannelName = "telegram"

	// MaxMessageLength is the Bot API limit for one message text.
	MaxMessageLength = 4096

	parseModeMarkdown = "Markdown"
	truncationMark    = "…"
	sectionBreak      = "\n\n"
)

// Channel sends messages through the Telegram Bot API.
type Channel struct {
	config *Config
	client *apphttp.Client
	logger logger.Logger
}

func New(config *Config, log logger.Logger) *Channel {
	return &Channel{
		config: config,
		client: apphttp.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"channel": ChannelName,
		}),
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	ErrorCode   int    `json:"error_code"`
}

// Send delivers one payload to the chat identified by target. A body longer
// than MaxMessageLength is truncated.
func (c *Channel) Send(ctx context.Context, target string, payload models.MessagePayload) error {
	text, markupIntact := truncate(payload.Body, MaxMessageLength)
	req := sendMessageRequest{
		ChatID:                target,
		Text:                  text,
		DisableWebPagePreview: true,
	}
	if payload.UseRichFormatting && markupIntact {
		req.ParseMode = parseModeMarkdown
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.config.BaseURL, c.config.BotToken)
	resp, err := c.client.PostJSON(ctx, url, req, nil)
	if err != nil {
		return apperrors.NewDeliveryError(ChannelName, err)
	}

	var body apiResponse
	_ = json.Unmarshal(resp.Body, &body)

	if !resp.OK() || !body.OK {
		c.logger.Warn("sendMessage rejected", map[string]interface{}{
			"target":      target,
			"kind":        string(payload.Kind),
			"status":      resp.StatusCode,
			"description": body.Description,
		})
		return apperrors.NewDeliveryError(ChannelName, fmt.Errorf("status %d: %s", resp.StatusCode, body.Description)).
			WithMetadata(map[string]interface{}{"status": resp.StatusCode})
	}

	c.logger.Debug("message sent", map[string]interface{}{
		"target": target,
		"kind":   string(payload.Kind),
	})
	return nil
}

// truncate shortens s to at most max runes. It prefers the last blank-line
// section break so no Markdown entity is cut open; markupIntact is false when
// no such break exists and the text was cut mid-section.
func truncate(s string, max int) (text string, markupIntact bool) {
	runes := []rune(s)
	if len(runes) <= max {
		return s, true
	}
	head := string(runes[:max-utf8.RuneCountInString(truncationMark)])
	if i := strings.LastIndex(head, sectionBreak); i > 0 {
		return head[:i] + sectionBreak + truncationMark, true
	}
	return head + truncationMark, false
}
