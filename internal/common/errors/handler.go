// internal/common/errors/handler.go
package errors

import (
	"context"
)

// Logger is the subset of logger.Logger the handler needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// Recorder receives one call per handled error, typically a metrics counter.
type Recorder func(code ErrorCode, category string)

// ErrorHandler normalizes pipeline failures, logs them with their category
// and reports them to an optional recorder. It never decides what the user
// sees; callers map the returned error to a fixed notice.
type ErrorHandler struct {
	logger   Logger
	recorder Recorder
}

func NewErrorHandler(logger Logger, recorder Recorder) *ErrorHandler {
	return &ErrorHandler{logger: logger, recorder: recorder}
}

// Handle logs err with the given stage and identifying fields and returns
// the normalized error.
func (h *ErrorHandler) Handle(ctx context.Context, stage string, err error, fields map[string]interface{}) *StandardError {
	stdErr := Normalize(err)
	if stdErr == nil {
		return nil
	}

	logFields := map[string]interface{}{
		"stage":         stage,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	for k, v := range stdErr.Metadata {
		logFields[k] = v
	}
	for k, v := range fields {
		logFields[k] = v
	}
	if ctx.Err() != nil {
		logFields["contextError"] = ctx.Err().Error()
	}

	h.logger.Error("pipeline stage failed", logFields)

	if h.recorder != nil {
		h.recorder(stdErr.Code, GetErrorCategory(stdErr.Code))
	}
	return stdErr
}

// Degraded logs a failure that was absorbed locally.
func (h *ErrorHandler) Degraded(stage string, err error, fields map[string]interface{}) {
	stdErr := Normalize(err)
	if stdErr == nil {
		return
	}
	logFields := map[string]interface{}{
		"stage":     stage,
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	h.logger.Warn("degraded to fallback", logFields)

	if h.recorder != nil {
		h.recorder(stdErr.Code, GetErrorCategory(stdErr.Code))
	}
}
