package use_cases

import (
	"context"

	"github.com/yuzvak/pos-service/internal/application/ports"
	"github.com/yuzvak/pos-service/internal/domain/report"
	"github.com/yuzvak/pos-service/internal/domain/transaction"
	"github.com/yuzvak/pos-service/internal/pkg/clock"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type ReportQuery struct {
	Year   string
	Month  string
	Search string
	// Kind narrows the transaction history to one jenis_transaksi.
	Kind string
}

type RecapReport struct {
	Period string              `json:"period"`
	Rows   []report.StockRecap `json:"rows"`
}

type HistoryReport struct {
	Period  string                `json:"period"`
	Entries []report.HistoryEntry `json:"entries"`
}

// ReportUseCase passes report requests through to the inventory service and
// applies the local search filter.
type ReportUseCase struct {
	source ports.ReportSource
	clock  clock.Clock
	log    *logger.Logger
}

func NewReportUseCase(source ports.ReportSource, clk clock.Clock, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{
		source: source,
		clock:  clk,
		log:    log,
	}
}

func (uc *ReportUseCase) Rekapitulasi(ctx context.Context, q ReportQuery) (*RecapReport, error) {
	period, err := report.ParsePeriod(q.Year, q.Month, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	rows, err := uc.source.Rekapitulasi(ctx, period)
	if err != nil {
		uc.log.Error("Failed to load stock recap", "error", err, "period", period.String())
		return nil, err
	}

	return &RecapReport{
		Period: period.String(),
		Rows:   report.FilterRecaps(rows, q.Search),
	}, nil
}

func (uc *ReportUseCase) TransactionHistory(ctx context.Context, q ReportQuery) (*HistoryReport, error) {
	period, err := report.ParsePeriod(q.Year, q.Month, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	kind, err := transaction.ParseKind(q.Kind)
	if err != nil {
		return nil, err
	}

	entries, err := uc.source.TransactionHistory(ctx, period)
	if err != nil {
		uc.log.Error("Failed to load transaction history", "error", err, "period", period.String())
		return nil, err
	}

	return &HistoryReport{
		Period:  period.String(),
		Entries: report.FilterHistory(entries, q.Search, kind),
	}, nil
}

func (uc *ReportUseCase) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	dashboard, err := uc.source.Dashboard(ctx)
	if err != nil {
		uc.log.Error("Failed to load dashboard", "error", err)
		return nil, err
	}
	return dashboard, nil
}
