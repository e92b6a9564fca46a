// Package errors provides the standardized error type shared by the search
// pipeline, its providers and the webhook transport.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeSearchProviderFailed  ErrorCode = "SEARCH_PROVIDER_FAILED"
	ErrCodeSearchTimeout         ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeSearchResponseInvalid ErrorCode = "SEARCH_RESPONSE_INVALID"

	ErrCodeGenerationFailed ErrorCode = "GENERATION_FAILED"
	ErrCodeGenerationEmpty  ErrorCode = "GENERATION_EMPTY"

	ErrCodeDeliveryFailed ErrorCode = "DELIVERY_FAILED"

	ErrCodeInvalidUpdate   ErrorCode = "INVALID_UPDATE"
	ErrCodeDuplicateUpdate ErrorCode = "DUPLICATE_UPDATE"

	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches another *StandardError by code, so sentinel values built with
// the constructors below can be used with errors.Is.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMetadata returns e after merging the given key/value pairs.
func (e *StandardError) WithMetadata(kv map[string]interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{}, len(kv))
	}
	for k, v := range kv {
		e.Metadata[k] = v
	}
	return e
}

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// ==========================
// 2. Sentinels
// ==========================

// Sentinels for errors.Is comparisons. Only the Code is significant.
var (
	ErrSearchProvider = &StandardError{Code: ErrCodeSearchProviderFailed}
	ErrSearchTimeout  = &StandardError{Code: ErrCodeSearchTimeout}
	ErrDelivery       = &StandardError{Code: ErrCodeDeliveryFailed}
)

// ==========================
// 3. Error Constructors
// ==========================

// NewSearchProviderError reports a failed or non-success search call.
func NewSearchProviderError(provider string, err error) *StandardError {
	return newError(ErrCodeSearchProviderFailed,
		fmt.Sprintf("Search provider '%s' error", provider), err, true)
}

// NewSearchStatusError reports a non-success HTTP status from a search provider.
func NewSearchStatusError(provider string, status int) *StandardError {
	return NewSearchProviderError(provider, fmt.Errorf("status %d", status)).
		WithMetadata(map[string]interface{}{"status": status})
}

// NewSearchTimeoutError reports a search call that hit the transport deadline.
func NewSearchTimeoutError(provider string, err error) *StandardError {
	return newError(ErrCodeSearchTimeout,
		fmt.Sprintf("Search provider '%s' timeout", provider), err, true)
}

// NewSearchResponseError reports a malformed provider payload.
func NewSearchResponseError(provider string, details string) *StandardError {
	e := newError(ErrCodeSearchResponseInvalid,
		fmt.Sprintf("Search provider '%s' returned an invalid response", provider), nil, false)
	e.Details = details
	return e
}

// NewGenerationError reports a failed text generation call.
func NewGenerationError(provider string, err error) *StandardError {
	return newError(ErrCodeGenerationFailed,
		fmt.Sprintf("Generation provider '%s' error", provider), err, true)
}

// NewGenerationEmptyError reports a generation call that produced no text.
func NewGenerationEmptyError(provider string) *StandardError {
	return newError(ErrCodeGenerationEmpty,
		fmt.Sprintf("Generation provider '%s' returned empty text", provider), nil, false)
}

// NewDeliveryError reports a failed send to the messaging channel.
func NewDeliveryError(channel string, err error) *StandardError {
	return newError(ErrCodeDeliveryFailed,
		fmt.Sprintf("Messaging channel '%s' send failed", channel), err, true)
}

// NewInvalidUpdateError reports an inbound update that failed validation.
func NewInvalidUpdateError(details string) *StandardError {
	e := newError(ErrCodeInvalidUpdate, "Invalid inbound update", nil, false)
	e.Details = details
	return e
}

// NewDuplicateUpdateError reports a redelivered inbound update.
func NewDuplicateUpdateError(updateID int64) *StandardError {
	e := newError(ErrCodeDuplicateUpdate, "Update already processed", nil, false)
	e.Details = fmt.Sprintf("updateId: %d", updateID)
	return e
}

// NewConfigError reports an invalid configuration value.
func NewConfigError(details string) *StandardError {
	e := newError(ErrCodeConfigInvalid, "Invalid configuration", nil, false)
	e.Details = details
	return e
}

// NewInternalError wraps anything without a more specific code.
func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err, false)
}

// ==========================
// 4. Utility Functions
// ==========================

// Normalize returns err as a *StandardError, wrapping it as INTERNAL_ERROR
// when no StandardError is found in its chain.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// CodeOf returns the code of the first StandardError in err's chain.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return Normalize(err).Code
}

// IsRetryableErrorCode checks if an error code is transient.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeSearchProviderFailed,
		ErrCodeSearchTimeout,
		ErrCodeGenerationFailed,
		ErrCodeDeliveryFailed:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.HasPrefix(codeStr, "GENERATION"):
		return "AI"
	case strings.HasPrefix(codeStr, "DELIVERY"):
		return "DELIVERY"
	case strings.Contains(codeStr, "UPDATE"):
		return "TRANSPORT"
	case strings.HasPrefix(codeStr, "CONFIG"):
		return "CONFIG"
	default:
		return "OTHER"
	}
}
