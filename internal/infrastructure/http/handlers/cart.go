package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/yuzvak/pos-service/internal/application/register"
	"github.com/yuzvak/pos-service/internal/infrastructure/http/response"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type CartHandler struct {
	register *register.Register
	log      *logger.Logger
}

func NewCartHandler(reg *register.Register, log *logger.Logger) *CartHandler {
	return &CartHandler{
		register: reg,
		log:      log,
	}
}

type AddItemRequest struct {
	ItemID int64 `json:"item_id"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type SetDiscountRequest struct {
	Discount json.RawMessage `json:"discount"`
}

type SetTenderRequest struct {
	Amount json.RawMessage `json:"amount"`
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, h.register.View())
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decodeBody(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}
	if req.ItemID <= 0 {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"item_id": "item_id must be a positive number",
		})
		return
	}

	if _, err := h.register.AddItem(req.ItemID); err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteSuccess(w, h.register.View())
}

func (h *CartHandler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathItemID(r)
	if !ok {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid item id")
		return
	}

	var req SetQuantityRequest
	if err := decodeBody(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}
	if req.Quantity == nil {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"quantity": "quantity is required",
		})
		return
	}

	if _, err := h.register.SetQuantity(id, *req.Quantity); err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteSuccess(w, h.register.View())
}

// HandleSetDiscount accepts any input; text that is not a non-negative number
// becomes a zero discount.
func (h *CartHandler) HandleSetDiscount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathItemID(r)
	if !ok {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid item id")
		return
	}

	var req SetDiscountRequest
	if err := decodeBody(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	if _, err := h.register.SetDiscount(id, rawInput(req.Discount)); err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteSuccess(w, h.register.View())
}

func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathItemID(r)
	if !ok {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid item id")
		return
	}

	if err := h.register.RemoveItem(id); err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteSuccess(w, h.register.View())
}

// HandleSetTender stores the tendered amount as typed. An amount that does not
// parse is kept and simply keeps checkout disabled.
func (h *CartHandler) HandleSetTender(w http.ResponseWriter, r *http.Request) {
	var req SetTenderRequest
	if err := decodeBody(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	if _, err := h.register.SetTender(rawInput(req.Amount)); err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteSuccess(w, h.register.View())
}
