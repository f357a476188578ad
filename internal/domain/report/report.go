package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yuzvak/pos-service/internal/domain/transaction"
)

// StockRecap is one row of the monthly stock reconciliation.
type StockRecap struct {
	Code          string          `json:"kode_barang"`
	Name          string          `json:"nama_barang"`
	OpeningStock  int             `json:"stok_awal"`
	PurchasedQty  int             `json:"jumlah_pembelian"`
	BuyPrice      decimal.Decimal `json:"harga_beli"`
	TotalBuy      decimal.Decimal `json:"total_harga_beli"`
	SoldQty       int             `json:"jumlah_terjual"`
	SellPrice     decimal.Decimal `json:"harga_jual"`
	TotalSell     decimal.Decimal `json:"total_harga_jual"`
	TotalDiscount decimal.Decimal `json:"total_diskon"`
	ClosingStock  int             `json:"stok_akhir"`
	Profit        decimal.Decimal `json:"keuntungan"`
}

type HistoryEntry struct {
	ID           int64            `json:"id"`
	Date         string           `json:"tanggal"`
	Code         string           `json:"kode_barang"`
	Name         string           `json:"nama_barang"`
	Kind         transaction.Kind `json:"jenis_transaksi"`
	Quantity     int              `json:"jumlah"`
	UnitPrice    decimal.Decimal  `json:"harga_satuan"`
	Discount     decimal.Decimal  `json:"diskon"`
	TotalPrice   decimal.Decimal  `json:"total_harga"`
	OpeningStock int              `json:"stok_awal"`
	ClosingStock int              `json:"stok_akhir"`
}

type Dashboard struct {
	StockInfo struct {
		ItemKinds  int `json:"totalJenisBarang"`
		TotalStock int `json:"totalStok"`
		TotalSold  int `json:"totalStockTerjual"`
	} `json:"stockInfo"`
	FinancialInfo struct {
		TotalCapital decimal.Decimal `json:"totalModal"`
		TotalRevenue decimal.Decimal `json:"totalOmset"`
		GrossProfit  decimal.Decimal `json:"totalKeuntunganKotor"`
		NetProfit    decimal.Decimal `json:"totalKeuntunganBersih"`
	} `json:"financialInfo"`
	TopSelling []TopSellingItem `json:"topSelling"`
}

type TopSellingItem struct {
	Name    string `json:"nama_barang"`
	SoldQty int    `json:"jumlah_terjual"`
}

// FilterRecaps keeps rows whose name or code contains query, ignoring case.
func FilterRecaps(rows []StockRecap, query string) []StockRecap {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}

	out := make([]StockRecap, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Code), q) {
			out = append(out, r)
		}
	}
	return out
}

// FilterHistory keeps entries whose item name contains query, ignoring case,
// and whose kind is kind. An empty query or kind matches everything.
func FilterHistory(entries []HistoryEntry, query string, kind transaction.Kind) []HistoryEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" && kind == "" {
		return entries
	}

	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if kind != "" && e.Kind != kind {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}
