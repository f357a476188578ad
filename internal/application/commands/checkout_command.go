package commands

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yuzvak/pos-service/internal/application/use_cases"
	"github.com/yuzvak/pos-service/internal/domain/cart"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type CheckoutResponse struct {
	Success        bool            `json:"success"`
	CheckoutID     string          `json:"checkout_id"`
	CommittedLines int             `json:"committed_lines"`
	Total          decimal.Decimal `json:"total"`
	Tendered       decimal.Decimal `json:"tendered"`
	Change         decimal.Decimal `json:"change"`
	Failed         *FailedLine     `json:"failed,omitempty"`
	RemainingLines int             `json:"remaining_lines"`
	FinishedAt     time.Time       `json:"finished_at"`
}

type FailedLine struct {
	Index  int    `json:"index"`
	ItemID int64  `json:"item_id"`
	Name   string `json:"name"`
	Error  string `json:"error"`
}

type CheckoutHandler struct {
	checkoutUseCase *use_cases.CheckoutUseCase
	log             *logger.Logger
}

func NewCheckoutHandler(checkoutUseCase *use_cases.CheckoutUseCase, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
		log:             log,
	}
}

// Handle runs a checkout. A response is returned whenever the run started,
// including when it stopped on a failed line; err then carries the cause.
func (h *CheckoutHandler) Handle(ctx context.Context) (*CheckoutResponse, error) {
	h.log.Info("Processing checkout request")

	result, err := h.checkoutUseCase.Execute(ctx)
	if result == nil {
		return nil, err
	}

	response := NewCheckoutResponse(result)
	if err != nil {
		h.log.Warn("Checkout stopped on failed line",
			"checkout_id", result.ID,
			"committed", response.CommittedLines,
			"remaining", response.RemainingLines)
	}
	return response, err
}

func NewCheckoutResponse(result *cart.CheckoutResult) *CheckoutResponse {
	response := &CheckoutResponse{
		Success:        result.Success(),
		CheckoutID:     result.ID,
		CommittedLines: len(result.Committed),
		Total:          result.Total,
		Tendered:       result.Tendered,
		Change:         result.Change,
		FinishedAt:     result.FinishedAt,
	}

	if f := result.Failed; f != nil {
		response.Failed = &FailedLine{
			Index:  f.Index,
			ItemID: f.Line.ItemID,
			Name:   f.Line.Name,
			Error:  f.Cause.Error(),
		}
		response.RemainingLines = 1 + len(result.Unsent)
	}

	return response
}
