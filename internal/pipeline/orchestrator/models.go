// internal/pipeline/orchestrator/models.go
package orchestrator

import "search-bot/internal/models"

// State is a pipeline position. delivered, no_results and failed are terminal.
type State string

const (
	StateReceived   State = "received"
	StateClassified State = "classified"
	StateSearched   State = "searched"
	StateEnriched   State = "enriched"
	StateComposed   State = "composed"
	StateDelivered  State = "delivered"
	StateNoResults  State = "no_results"
	StateFailed     State = "failed"
)

// Result summarizes one HandleQuery run.
type Result struct {
	QueryID        string                 `json:"queryId"`
	State          State                  `json:"state"`
	Classification models.Classification  `json:"classification"`
	HitCount       int                    `json:"hitCount"`
	Delivery       models.DeliveryOutcome `json:"delivery"`
}
