package transaction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
)

type Kind string

const (
	KindSale     Kind = "penjualan"
	KindPurchase Kind = "pembelian"
	KindRestock  Kind = "pembelian_stok"
)

// ParseKind reads a jenis_transaksi value. Empty input yields an empty kind,
// meaning no filter.
func ParseKind(raw string) (Kind, error) {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case "", KindSale, KindPurchase, KindRestock:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", domainErrors.ErrInvalidKind, raw)
	}
}

// Transaction is one stock movement recorded on the inventory service.
// Discount is nil for movements that carry no discount field.
type Transaction struct {
	ItemID    int64
	Kind      Kind
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  *decimal.Decimal
}

func NewSale(itemID int64, quantity int, unitPrice, discount decimal.Decimal) Transaction {
	return Transaction{
		ItemID:    itemID,
		Kind:      KindSale,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Discount:  &discount,
	}
}

func NewRestock(itemID int64, quantity int, unitPrice decimal.Decimal) (Transaction, error) {
	if itemID <= 0 {
		return Transaction{}, errors.New("item id must be positive")
	}
	if quantity <= 0 {
		return Transaction{}, errors.New("quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return Transaction{}, errors.New("unit price cannot be negative")
	}

	return Transaction{
		ItemID:    itemID,
		Kind:      KindRestock,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}, nil
}
