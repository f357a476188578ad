package use_cases

import (
	"context"
	"errors"

	"github.com/yuzvak/pos-service/internal/application/ports"
	"github.com/yuzvak/pos-service/internal/application/register"
	"github.com/yuzvak/pos-service/internal/domain/cart"
	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
	"github.com/yuzvak/pos-service/internal/domain/journal"
	"github.com/yuzvak/pos-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/pos-service/internal/pkg/clock"
	"github.com/yuzvak/pos-service/internal/pkg/generator"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

type CheckoutUseCase struct {
	register *register.Register
	recorder ports.TransactionRecorder
	catalog  CatalogRefresher
	journal  ports.CheckoutJournal
	ids      *generator.CodeGenerator
	clock    clock.Clock
	log      *logger.Logger
}

// NewCheckoutUseCase wires the checkout protocol. journal may be nil when no
// database is configured.
func NewCheckoutUseCase(
	reg *register.Register,
	recorder ports.TransactionRecorder,
	catalog CatalogRefresher,
	checkoutJournal ports.CheckoutJournal,
	ids *generator.CodeGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		register: reg,
		recorder: recorder,
		catalog:  catalog,
		journal:  checkoutJournal,
		ids:      ids,
		clock:    clk,
		log:      log,
	}
}

// Execute submits every cart line as a separate sale, strictly in cart order,
// and stops at the first line the inventory service refuses. Lines already
// recorded are not rolled back. When a line fails the returned result is
// still populated and the error is a *cart.LineFailedError.
func (uc *CheckoutUseCase) Execute(ctx context.Context) (*cart.CheckoutResult, error) {
	sub, err := uc.register.BeginCheckout(uc.ids.GenerateIdempotencyKey)
	if err != nil {
		return nil, err
	}

	metrics := monitoring.NewCheckoutMetrics()
	metrics.RecordAttempt()

	result := &cart.CheckoutResult{
		ID:        uc.ids.GenerateCheckoutID(),
		Committed: make([]cart.Line, 0, len(sub.Lines)),
		Total:     sub.Quote.Total,
		Tendered:  sub.Tender.Amount,
		Change:    sub.Quote.Change,
		StartedAt: uc.clock.Now(),
	}
	log := uc.log.WithField("checkout_id", result.ID)

	log.Info("Checkout started",
		"lines", len(sub.Lines),
		"total", result.Total.String(),
		"tendered", result.Tendered.String())

	uc.startJournal(ctx, log, result, len(sub.Lines))

	for i, line := range sub.Lines {
		key := line.IdempotencyKey

		err := uc.recorder.RecordTransaction(ctx, line.Sale(), key)
		outcome := journal.LineOutcome{
			Index:          i,
			ItemID:         line.ItemID,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			Discount:       line.Discount,
			IdempotencyKey: key,
			Status:         journal.LineCommitted,
			RecordedAt:     uc.clock.Now(),
		}

		if err != nil {
			metrics.RecordLineFailed()
			outcome.Status = journal.LineFailed
			outcome.Error = err.Error()
			uc.recordJournalLine(ctx, log, result.ID, outcome)

			result.Failed = &cart.LineFailure{Index: i, Line: line, Cause: err}
			result.Unsent = append(result.Unsent, sub.Lines[i+1:]...)

			log.Error("Checkout line rejected",
				"index", i,
				"item_id", line.ItemID,
				"committed", len(result.Committed),
				"error", err)
			break
		}

		metrics.RecordLineCommitted()
		uc.recordJournalLine(ctx, log, result.ID, outcome)
		result.Committed = append(result.Committed, line)
	}

	result.FinishedAt = uc.clock.Now()
	uc.register.FinishCheckout(result)
	uc.finishJournal(ctx, log, result, len(sub.Lines))

	if !result.Success() {
		metrics.RecordFailure(failureReason(result))
		return result, result.Err()
	}

	metrics.RecordSuccess()
	log.Info("Checkout completed", "lines", len(result.Committed))

	if err := uc.catalog.Refresh(ctx); err != nil {
		log.Warn("Catalog refresh after checkout failed", "error", err)
	}

	return result, nil
}

// GetCheckout reads a past run back from the journal.
func (uc *CheckoutUseCase) GetCheckout(ctx context.Context, id string) (*journal.Checkout, error) {
	if uc.journal == nil {
		return nil, domainErrors.ErrCheckoutNotFound
	}
	return uc.journal.GetCheckout(ctx, id)
}

func (uc *CheckoutUseCase) startJournal(ctx context.Context, log *logger.Logger, result *cart.CheckoutResult, lines int) {
	if uc.journal == nil {
		return
	}
	entry := &journal.Checkout{
		ID:        result.ID,
		Status:    journal.StatusPending,
		Total:     result.Total,
		Tendered:  result.Tendered,
		LineCount: lines,
		StartedAt: result.StartedAt,
	}
	if err := uc.journal.StartCheckout(ctx, entry); err != nil {
		log.Error("Failed to journal checkout start, its lines will not be journaled", "error", err)
	}
}

func (uc *CheckoutUseCase) recordJournalLine(ctx context.Context, log *logger.Logger, id string, outcome journal.LineOutcome) {
	if uc.journal == nil {
		return
	}
	if err := uc.journal.RecordLine(ctx, id, outcome); err != nil {
		log.Error("Failed to journal checkout line",
			"index", outcome.Index,
			"item_id", outcome.ItemID,
			"idempotency_key", outcome.IdempotencyKey,
			"status", string(outcome.Status),
			"error", err)
	}
}

func (uc *CheckoutUseCase) finishJournal(ctx context.Context, log *logger.Logger, result *cart.CheckoutResult, lines int) {
	if uc.journal == nil {
		return
	}
	status := journal.FinalStatus(len(result.Committed), lines)
	if err := uc.journal.FinishCheckout(ctx, result.ID, status, result.FinishedAt); err != nil {
		log.Warn("Failed to journal checkout finish", "error", err)
	}
}

func failureReason(result *cart.CheckoutResult) string {
	if result.Failed == nil {
		return ""
	}
	if errors.Is(result.Failed.Cause, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(result.Failed.Cause, domainErrors.ErrInventoryRejected) {
		return "rejected"
	}
	return "transport"
}
