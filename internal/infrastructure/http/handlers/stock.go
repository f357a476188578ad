package handlers

import (
	"net/http"

	"github.com/yuzvak/pos-service/internal/application/commands"
	"github.com/yuzvak/pos-service/internal/infrastructure/http/response"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type StockHandler struct {
	stock *commands.StockHandler
	log   *logger.Logger
}

func NewStockHandler(stock *commands.StockHandler, log *logger.Logger) *StockHandler {
	return &StockHandler{
		stock: stock,
		log:   log,
	}
}

func (h *StockHandler) HandleRestock(w http.ResponseWriter, r *http.Request) {
	var cmd commands.RestockCommand
	if err := decodeBody(r, &cmd); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	resp, err := h.stock.Restock(r.Context(), cmd)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, response.Success(resp, "Stock purchase recorded"))
}

func (h *StockHandler) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	var cmd commands.CreateItemCommand
	if err := decodeBody(r, &cmd); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	resp, err := h.stock.CreateItem(r.Context(), cmd)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, response.Success(resp, "Item created"))
}
