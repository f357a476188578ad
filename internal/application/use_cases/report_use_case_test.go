package use_cases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
	"github.com/yuzvak/pos-service/internal/domain/report"
	"github.com/yuzvak/pos-service/internal/pkg/clock"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

type ReportSourceMock struct{ mock.Mock }

func (m *ReportSourceMock) Rekapitulasi(ctx context.Context, period report.Period) ([]report.StockRecap, error) {
	args := m.Called(ctx, period)
	rows, _ := args.Get(0).([]report.StockRecap)
	return rows, args.Error(1)
}

func (m *ReportSourceMock) TransactionHistory(ctx context.Context, period report.Period) ([]report.HistoryEntry, error) {
	args := m.Called(ctx, period)
	entries, _ := args.Get(0).([]report.HistoryEntry)
	return entries, args.Error(1)
}

func (m *ReportSourceMock) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(*report.Dashboard)
	return d, args.Error(1)
}

func newReportUseCase(source *ReportSourceMock) *ReportUseCase {
	now := time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)
	return NewReportUseCase(source, clock.NewMockClock(now), logger.NewNop())
}

func TestReportUseCase_Rekapitulasi_DefaultsPeriodAndFilters(t *testing.T) {
	ctx := context.Background()
	source := new(ReportSourceMock)
	source.On("Rekapitulasi", ctx, report.Period{Year: 2024, Month: 5}).Return([]report.StockRecap{
		{Code: "ATK 0001", Name: "Pulpen"},
		{Code: "MKN 0001", Name: "Roti"},
	}, nil).Once()

	recap, err := newReportUseCase(source).Rekapitulasi(ctx, ReportQuery{Search: "roti"})

	require.NoError(t, err)
	assert.Equal(t, "2024-05", recap.Period)
	require.Len(t, recap.Rows, 1)
	assert.Equal(t, "Roti", recap.Rows[0].Name)
	source.AssertExpectations(t)
}

func TestReportUseCase_Rekapitulasi_InvalidPeriod(t *testing.T) {
	source := new(ReportSourceMock)

	_, err := newReportUseCase(source).Rekapitulasi(context.Background(), ReportQuery{Month: "13"})

	assert.ErrorIs(t, err, domainErrors.ErrInvalidPeriod)
	source.AssertNotCalled(t, "Rekapitulasi", mock.Anything, mock.Anything)
}

func TestReportUseCase_TransactionHistory(t *testing.T) {
	ctx := context.Background()
	source := new(ReportSourceMock)
	source.On("TransactionHistory", ctx, report.Period{Year: 2023, Month: 12}).Return([]report.HistoryEntry{
		{ID: 1, Name: "Pulpen", Kind: "penjualan"},
		{ID: 2, Name: "Roti", Kind: "pembelian"},
	}, nil).Once()

	history, err := newReportUseCase(source).TransactionHistory(ctx, ReportQuery{Year: "2023", Month: "12"})

	require.NoError(t, err)
	assert.Len(t, history.Entries, 2)
	assert.Equal(t, "2023-12", history.Period)
}

func TestReportUseCase_TransactionHistory_KindFilter(t *testing.T) {
	ctx := context.Background()
	source := new(ReportSourceMock)
	source.On("TransactionHistory", ctx, report.Period{Year: 2024, Month: 5}).Return([]report.HistoryEntry{
		{ID: 1, Name: "Pulpen", Kind: "penjualan"},
		{ID: 2, Name: "Roti", Kind: "pembelian"},
	}, nil).Once()

	history, err := newReportUseCase(source).TransactionHistory(ctx, ReportQuery{Kind: "pembelian"})

	require.NoError(t, err)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, int64(2), history.Entries[0].ID)
}

func TestReportUseCase_TransactionHistory_UnknownKind(t *testing.T) {
	source := new(ReportSourceMock)

	_, err := newReportUseCase(source).TransactionHistory(context.Background(), ReportQuery{Kind: "retur"})

	assert.ErrorIs(t, err, domainErrors.ErrInvalidKind)
	source.AssertNotCalled(t, "TransactionHistory", mock.Anything, mock.Anything)
}

func TestReportUseCase_Dashboard_PropagatesError(t *testing.T) {
	ctx := context.Background()
	source := new(ReportSourceMock)
	source.On("Dashboard", ctx).Return(nil, errors.New("unreachable")).Once()

	_, err := newReportUseCase(source).Dashboard(ctx)

	assert.EqualError(t, err, "unreachable")
}
