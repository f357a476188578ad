package cart

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
)

// LineFailure identifies the first line whose submission failed.
type LineFailure struct {
	Index int   `json:"index"`
	Line  Line  `json:"line"`
	Cause error `json:"-"`
}

type CheckoutResult struct {
	ID         string          `json:"id"`
	Committed  []Line          `json:"committed"`
	Unsent     []Line          `json:"unsent,omitempty"`
	Failed     *LineFailure    `json:"failed,omitempty"`
	Total      decimal.Decimal `json:"total"`
	Tendered   decimal.Decimal `json:"tendered"`
	Change     decimal.Decimal `json:"change"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

func (r *CheckoutResult) Success() bool {
	return r.Failed == nil
}

// CommittedItemIDs lists the items whose sale is already recorded remotely.
func (r *CheckoutResult) CommittedItemIDs() []int64 {
	ids := make([]int64, 0, len(r.Committed))
	for _, l := range r.Committed {
		ids = append(ids, l.ItemID)
	}
	return ids
}

// LineFailedError is returned when a checkout stops part way. The lines
// before Index stay committed on the inventory service.
type LineFailedError struct {
	CheckoutID string
	Index      int
	Line       Line
	Committed  int
	Cause      error
}

func (e *LineFailedError) Error() string {
	return fmt.Sprintf("checkout %s: line %d (%s) failed after %d committed: %v",
		e.CheckoutID, e.Index+1, e.Line.Name, e.Committed, e.Cause)
}

func (e *LineFailedError) Unwrap() []error {
	return []error{domainErrors.ErrCheckoutLineFailed, e.Cause}
}

func (r *CheckoutResult) Err() error {
	if r.Failed == nil {
		return nil
	}
	return &LineFailedError{
		CheckoutID: r.ID,
		Index:      r.Failed.Index,
		Line:       r.Failed.Line,
		Committed:  len(r.Committed),
		Cause:      r.Failed.Cause,
	}
}
