package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yuzvak/pos-service/internal/domain/catalog"
	"github.com/yuzvak/pos-service/internal/domain/transaction"
)

// Line is one catalog item pending checkout. Code, Name and UnitPrice are
// copied from the catalog when the line is created.
//
// IdempotencyKey is assigned on the first submission attempt and kept until
// the line commits, so a resubmitted sale carries the same key. Changing the
// quantity or discount clears it.
type Line struct {
	ItemID         int64           `json:"item_id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	Discount       decimal.Decimal `json:"discount"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

func newLine(item catalog.Item) *Line {
	return &Line{
		ItemID:    item.ID,
		Code:      item.Code,
		Name:      item.Name,
		UnitPrice: item.SellPrice,
		Quantity:  1,
		Discount:  decimal.Zero,
	}
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) Total() decimal.Decimal {
	return LineTotal(l)
}

// Sale is the remote transaction that commits this line.
func (l Line) Sale() transaction.Transaction {
	return transaction.NewSale(l.ItemID, l.Quantity, l.UnitPrice, l.Discount)
}

// ParseDiscount turns free-form input into a discount. Input that is not a
// number, or is negative, yields zero.
func ParseDiscount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
