package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
)

type LineStatus string

const (
	LineCommitted LineStatus = "committed"
	LineFailed    LineStatus = "failed"
)

// Checkout is the audit record of one checkout run.
type Checkout struct {
	ID         string          `json:"id"`
	Status     Status          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	Tendered   decimal.Decimal `json:"tendered"`
	LineCount  int             `json:"line_count"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
	Lines      []LineOutcome   `json:"lines"`
}

type LineOutcome struct {
	Index          int             `json:"index"`
	ItemID         int64           `json:"item_id"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Discount       decimal.Decimal `json:"discount"`
	IdempotencyKey string          `json:"idempotency_key"`
	Status         LineStatus      `json:"status"`
	Error          string          `json:"error,omitempty"`
	RecordedAt     time.Time       `json:"recorded_at"`
}

// FinalStatus derives the run status from how many of total lines committed.
func FinalStatus(committed, total int) Status {
	switch {
	case committed == total:
		return StatusCompleted
	case committed == 0:
		return StatusFailed
	default:
		return StatusPartial
	}
}
