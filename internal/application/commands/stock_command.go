package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yuzvak/pos-service/internal/application/ports"
	"github.com/yuzvak/pos-service/internal/domain/catalog"
	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
	"github.com/yuzvak/pos-service/internal/domain/transaction"
	"github.com/yuzvak/pos-service/internal/pkg/generator"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type RestockCommand struct {
	ItemID    int64           `json:"item_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CreateItemCommand struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Quantity  int             `json:"quantity"`
}

func (c CreateItemCommand) Validate() error {
	switch {
	case strings.TrimSpace(c.Code) == "":
		return fmt.Errorf("%w: code is required", domainErrors.ErrInvalidItem)
	case strings.TrimSpace(c.Name) == "":
		return fmt.Errorf("%w: name is required", domainErrors.ErrInvalidItem)
	case c.BuyPrice.IsNegative(), c.SellPrice.IsNegative():
		return fmt.Errorf("%w: prices cannot be negative", domainErrors.ErrInvalidItem)
	case c.Quantity < 0:
		return fmt.Errorf("%w: quantity cannot be negative", domainErrors.ErrInvalidItem)
	}
	return nil
}

type StockResponse struct {
	Success      bool `json:"success"`
	CatalogItems int  `json:"catalog_items"`
}

type Catalog interface {
	Refresh(ctx context.Context) error
	Snapshot() *catalog.Snapshot
}

// StockHandler records stock purchases and new items on the inventory
// service, then refreshes the catalog so the register sees the new stock.
type StockHandler struct {
	recorder ports.TransactionRecorder
	creator  ports.ItemCreator
	catalog  Catalog
	ids      *generator.CodeGenerator
	log      *logger.Logger
}

func NewStockHandler(
	recorder ports.TransactionRecorder,
	creator ports.ItemCreator,
	catalogCache Catalog,
	ids *generator.CodeGenerator,
	log *logger.Logger,
) *StockHandler {
	return &StockHandler{
		recorder: recorder,
		creator:  creator,
		catalog:  catalogCache,
		ids:      ids,
		log:      log,
	}
}

func (h *StockHandler) Restock(ctx context.Context, cmd RestockCommand) (*StockResponse, error) {
	tx, err := transaction.NewRestock(cmd.ItemID, cmd.Quantity, cmd.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrInvalidItem, err.Error())
	}

	if err := h.recorder.RecordTransaction(ctx, tx, h.ids.GenerateIdempotencyKey()); err != nil {
		h.log.Error("Failed to record stock purchase", "error", err, "item_id", cmd.ItemID)
		return nil, err
	}

	h.log.Info("Stock purchase recorded", "item_id", cmd.ItemID, "quantity", cmd.Quantity)
	return h.refreshed(ctx), nil
}

func (h *StockHandler) CreateItem(ctx context.Context, cmd CreateItemCommand) (*StockResponse, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	item := catalog.NewItem{
		Code:      strings.TrimSpace(cmd.Code),
		Name:      strings.TrimSpace(cmd.Name),
		BuyPrice:  cmd.BuyPrice,
		SellPrice: cmd.SellPrice,
		Quantity:  cmd.Quantity,
	}
	if err := h.creator.CreateItem(ctx, item); err != nil {
		h.log.Error("Failed to create item", "error", err, "code", item.Code)
		return nil, err
	}

	h.log.Info("Item created", "code", item.Code, "quantity", item.Quantity)
	return h.refreshed(ctx), nil
}

func (h *StockHandler) refreshed(ctx context.Context) *StockResponse {
	if err := h.catalog.Refresh(ctx); err != nil {
		h.log.Warn("Catalog refresh after stock change failed", "error", err)
	}
	return &StockResponse{Success: true, CatalogItems: h.catalog.Snapshot().Len()}
}
