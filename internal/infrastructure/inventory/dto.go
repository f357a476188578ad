package inventory

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/yuzvak/pos-service/internal/domain/catalog"
	"github.com/yuzvak/pos-service/internal/domain/transaction"
)

type itemDTO struct {
	ID        int64           `json:"id"`
	Code      string          `json:"kode_barang"`
	Name      string          `json:"nama_barang"`
	BuyPrice  decimal.Decimal `json:"harga_beli"`
	SellPrice decimal.Decimal `json:"harga_jual"`
	Stock     int             `json:"stok"`
}

func (d itemDTO) toDomain() catalog.Item {
	return catalog.Item{
		ID:        d.ID,
		Code:      d.Code,
		Name:      d.Name,
		BuyPrice:  d.BuyPrice,
		SellPrice: d.SellPrice,
		Stock:     d.Stock,
	}
}

// Monetary fields go out as json.Number so they are written as plain JSON
// numbers without passing through float64.
type transactionDTO struct {
	ItemID    int64        `json:"item_id"`
	Kind      string       `json:"jenis_transaksi"`
	Quantity  int          `json:"jumlah"`
	UnitPrice json.Number  `json:"harga_satuan"`
	Discount  *json.Number `json:"diskon,omitempty"`
}

func newTransactionDTO(tx transaction.Transaction) transactionDTO {
	dto := transactionDTO{
		ItemID:    tx.ItemID,
		Kind:      string(tx.Kind),
		Quantity:  tx.Quantity,
		UnitPrice: number(tx.UnitPrice),
	}
	if tx.Discount != nil {
		d := number(*tx.Discount)
		dto.Discount = &d
	}
	return dto
}

type newItemDTO struct {
	Code      string      `json:"kode_barang"`
	Name      string      `json:"nama_barang"`
	BuyPrice  json.Number `json:"harga_beli"`
	SellPrice json.Number `json:"harga_jual"`
	Quantity  int         `json:"jumlah"`
}

func newNewItemDTO(item catalog.NewItem) newItemDTO {
	return newItemDTO{
		Code:      item.Code,
		Name:      item.Name,
		BuyPrice:  number(item.BuyPrice),
		SellPrice: number(item.SellPrice),
		Quantity:  item.Quantity,
	}
}

type errorDTO struct {
	Message string `json:"message"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
