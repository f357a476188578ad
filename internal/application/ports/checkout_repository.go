package ports

import (
	"context"
	"time"

	"github.com/yuzvak/pos-service/internal/domain/journal"
)

type CheckoutJournal interface {
	StartCheckout(ctx context.Context, checkout *journal.Checkout) error
	RecordLine(ctx context.Context, checkoutID string, line journal.LineOutcome) error
	FinishCheckout(ctx context.Context, checkoutID string, status journal.Status, finishedAt time.Time) error
	GetCheckout(ctx context.Context, checkoutID string) (*journal.Checkout, error)
}
