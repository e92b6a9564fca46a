// internal/models/notification.go
package models

// PayloadKind tags a MessagePayload with its place in a response.
type PayloadKind string

const (
	PayloadHeader   PayloadKind = "header"
	PayloadOverview PayloadKind = "overview"
	PayloadResult   PayloadKind = "result"
	PayloadFooter   PayloadKind = "footer"
	PayloadNotice   PayloadKind = "notice"
	PayloadCombined PayloadKind = "combined"
)

// MessagePayload is the unit the delivery sequencer sends. Kind is used for
// pacing and logging only and never reaches the wire.
type MessagePayload struct {
	Body              string      `json:"body"`
	UseRichFormatting bool        `json:"useRichFormatting"`
	Kind              PayloadKind `json:"kind"`
}

// DeliveryStatus is the terminal status of one delivery attempt.
type DeliveryStatus string

const (
	DeliveryDelivered         DeliveryStatus = "delivered"
	DeliveryFallbackDelivered DeliveryStatus = "fallback_delivered"
	DeliveryFallbackFailed    DeliveryStatus = "fallback_failed"
)

// DeliveryOutcome reports how a payload sequence was delivered.
type DeliveryOutcome struct {
	Status DeliveryStatus `json:"status"`
	Sent   int            `json:"sent"` // sequence payloads sent before success or failure
}
