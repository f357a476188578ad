package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/pos-service/internal/domain/catalog"
	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
	"github.com/yuzvak/pos-service/internal/domain/report"
	"github.com/yuzvak/pos-service/internal/domain/transaction"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second, logger.NewNop())
}

func decodeBody(t *testing.T, r *http.Request) map[string]json.RawMessage {
	t.Helper()
	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestClient_ListItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, itemsPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "kode_barang": "ATK 0001", "nama_barang": "Pulpen", "harga_beli": 1500, "harga_jual": "2000.50", "stok": 7}
		]`))
	})

	items, err := client.ListItems(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, "ATK 0001", items[0].Code)
	assert.True(t, items[0].BuyPrice.Equal(decimal.NewFromInt(1500)))
	assert.True(t, items[0].SellPrice.Equal(decimal.RequireFromString("2000.50")))
	assert.Equal(t, 7, items[0].Stock)
}

func TestClient_RecordTransaction_Sale(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, transactionsPath, r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get(idempotencyHeader))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body := decodeBody(t, r)
		assert.JSONEq(t, `3`, string(body["item_id"]))
		assert.JSONEq(t, `"penjualan"`, string(body["jenis_transaksi"]))
		assert.JSONEq(t, `2`, string(body["jumlah"]))
		assert.Equal(t, `2000`, string(body["harga_satuan"]))
		assert.Equal(t, `600`, string(body["diskon"]))
		w.WriteHeader(http.StatusCreated)
	})

	tx := transaction.NewSale(3, 2, decimal.NewFromInt(2000), decimal.NewFromInt(600))
	err := client.RecordTransaction(context.Background(), tx, "key-1")

	assert.NoError(t, err)
}

func TestClient_RecordTransaction_RestockOmitsDiscount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.JSONEq(t, `"pembelian_stok"`, string(body["jenis_transaksi"]))
		_, hasDiscount := body["diskon"]
		assert.False(t, hasDiscount)
		w.WriteHeader(http.StatusOK)
	})

	tx, err := transaction.NewRestock(3, 10, decimal.NewFromInt(1500))
	require.NoError(t, err)

	assert.NoError(t, client.RecordTransaction(context.Background(), tx, ""))
}

func TestClient_RejectionCarriesMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "stok tidak mencukupi"}`))
	})

	err := client.RecordTransaction(context.Background(), transaction.NewSale(1, 1, decimal.NewFromInt(1), decimal.Zero), "k")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainErrors.ErrInventoryRejected))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "stok tidak mencukupi", apiErr.Message)
}

func TestClient_RejectionWithoutBodyUsesStatusText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := client.ListItems(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

func TestClient_TransportErrorIsNotRejection(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, time.Second, logger.NewNop())

	_, err := client.ListItems(context.Background())

	require.Error(t, err)
	assert.False(t, errors.Is(err, domainErrors.ErrInventoryRejected))
}

func TestClient_CreateItem(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, itemsPath, r.URL.Path)
		body := decodeBody(t, r)
		assert.JSONEq(t, `"ATK 0009"`, string(body["kode_barang"]))
		assert.JSONEq(t, `"Penggaris"`, string(body["nama_barang"]))
		assert.Equal(t, `4000`, string(body["harga_beli"]))
		assert.Equal(t, `6000.5`, string(body["harga_jual"]))
		assert.JSONEq(t, `20`, string(body["jumlah"]))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.CreateItem(context.Background(), catalog.NewItem{
		Code:      "ATK 0009",
		Name:      "Penggaris",
		BuyPrice:  decimal.NewFromInt(4000),
		SellPrice: decimal.RequireFromString("6000.50"),
		Quantity:  20,
	})

	assert.NoError(t, err)
}

func TestClient_ReportsSendPeriod(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024", r.URL.Query().Get("tahun"))
		assert.Equal(t, "03", r.URL.Query().Get("bulan"))
		switch r.URL.Path {
		case recapPath:
			_, _ = w.Write([]byte(`[{"kode_barang": "ATK 0001", "nama_barang": "Pulpen", "stok_awal": 5, "stok_akhir": 3, "keuntungan": 1200}]`))
		case historyPath:
			_, _ = w.Write([]byte(`[{"id": 9, "nama_barang": "Pulpen", "jenis_transaksi": "penjualan", "jumlah": 2}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	period, err := report.NewPeriod(2024, 3)
	require.NoError(t, err)

	rows, err := client.Rekapitulasi(context.Background(), period)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].ClosingStock)
	assert.True(t, rows[0].Profit.Equal(decimal.NewFromInt(1200)))

	entries, err := client.TransactionHistory(context.Background(), period)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(9), entries[0].ID)
}

func TestClient_Dashboard(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, dashboardPath, r.URL.Path)
		_, _ = w.Write([]byte(`{
			"stockInfo": {"totalJenisBarang": 4, "totalStok": 120, "totalStockTerjual": 30},
			"financialInfo": {"totalOmset": 90000},
			"topSelling": [{"nama_barang": "Pulpen", "jumlah_terjual": 12}]
		}`))
	})

	dashboard, err := client.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, dashboard.StockInfo.ItemKinds)
	assert.True(t, dashboard.FinancialInfo.TotalRevenue.Equal(decimal.NewFromInt(90000)))
	require.Len(t, dashboard.TopSelling, 1)
	assert.Equal(t, 12, dashboard.TopSelling[0].SoldQty)
}

func TestClient_RequestHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.ListItems(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
