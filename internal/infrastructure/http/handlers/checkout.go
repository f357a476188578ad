package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/yuzvak/pos-service/internal/application/commands"
	"github.com/yuzvak/pos-service/internal/application/use_cases"
	"github.com/yuzvak/pos-service/internal/infrastructure/http/response"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type CheckoutHandler struct {
	checkout *commands.CheckoutHandler
	useCase  *use_cases.CheckoutUseCase
	log      *logger.Logger
}

func NewCheckoutHandler(useCase *use_cases.CheckoutUseCase, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: commands.NewCheckoutHandler(useCase, log),
		useCase:  useCase,
		log:      log,
	}
}

// HandleCheckout runs the checkout on a context detached from the request:
// once the first line is sent the run is never cancelled by a disconnecting
// client. Each remote call is still bounded by the client timeout, and the
// server write deadline is lifted so the outcome always reaches the client.
func (h *CheckoutHandler) HandleCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithoutCancel(r.Context())

		if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
			h.log.Warn("Failed to lift write deadline for checkout", "error", err)
		}

		resp, err := h.checkout.Handle(ctx)
		if err != nil {
			if resp != nil {
				response.WriteDomainErrorWithData(w, err, resp)
				return
			}
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, resp, "Checkout completed")
	}
}

func (h *CheckoutHandler) HandleGetCheckout(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Checkout id is required")
		return
	}

	checkout, err := h.useCase.GetCheckout(r.Context(), id)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteSuccess(w, checkout)
}
