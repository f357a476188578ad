package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Stock     int             `json:"stock"`
}

func (i Item) InStock() bool {
	return i.Stock > 0
}

// Category is the first word of the item code, e.g. "ATK" for "ATK 0012".
func (i Item) Category() string {
	fields := strings.Fields(i.Code)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Matches reports whether the item belongs to category (prefix of the code)
// and its name contains query, ignoring case. Empty filters match everything.
func (i Item) Matches(query, category string) bool {
	if category != "" && !strings.HasPrefix(i.Code, category) {
		return false
	}
	return strings.Contains(strings.ToLower(i.Name), strings.ToLower(query))
}

// NewItem is a catalog entry to be created on the inventory service together
// with its opening stock.
type NewItem struct {
	Code      string
	Name      string
	BuyPrice  decimal.Decimal
	SellPrice decimal.Decimal
	Quantity  int
}
