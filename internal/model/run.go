package model

import "time"

// RunStatus tracks a collection run through its lifecycle.
type RunStatus string

// Run lifecycle states.
const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusCollecting RunStatus = "collecting"
	RunStatusEnhancing  RunStatus = "enhancing"
	RunStatusComplete   RunStatus = "complete"
	RunStatusFailed     RunStatus = "failed"
)

// Run is the persistence record for one end-to-end collection request.
type Run struct {
	ID          string             `json:"id"`
	Company     string             `json:"company"`
	Mode        Mode               `json:"mode"`
	Status      RunStatus          `json:"status"`
	Aggregate   *AggregateResult   `json:"aggregate,omitempty"`
	Enhancement *EnhancementResult `json:"enhancement,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
