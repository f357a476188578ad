package ports

import (
	"context"

	"github.com/yuzvak/pos-service/internal/domain/catalog"
	"github.com/yuzvak/pos-service/internal/domain/report"
	"github.com/yuzvak/pos-service/internal/domain/transaction"
)

type ItemSource interface {
	ListItems(ctx context.Context) ([]catalog.Item, error)
}

type TransactionRecorder interface {
	RecordTransaction(ctx context.Context, tx transaction.Transaction, idempotencyKey string) error
}

type ItemCreator interface {
	CreateItem(ctx context.Context, item catalog.NewItem) error
}

type ReportSource interface {
	Rekapitulasi(ctx context.Context, period report.Period) ([]report.StockRecap, error)
	TransactionHistory(ctx context.Context, period report.Period) ([]report.HistoryEntry, error)
	Dashboard(ctx context.Context) (*report.Dashboard, error)
}

// Inventory is the full contract of the remote inventory service.
type Inventory interface {
	ItemSource
	TransactionRecorder
	ItemCreator
	ReportSource
}
