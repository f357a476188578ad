package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineTotal is unit price times quantity minus discount. It is not floored,
// so a discount above the subtotal yields a negative total.
func LineTotal(l Line) decimal.Decimal {
	return l.Subtotal().Sub(l.Discount)
}

func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineTotal(l))
	}
	return total
}

// Tender is the amount offered by the customer. Valid is false when the raw
// input is not a number.
type Tender struct {
	Raw    string          `json:"raw"`
	Amount decimal.Decimal `json:"amount"`
	Valid  bool            `json:"valid"`
}

// ParseTender strips leading zeros the way the register input does and parses
// the rest. An all-zero input such as "0" strips to nothing and is not a
// valid tender, so a zero-total cart still needs a positive amount before it
// can be checked out. A leading "0." keeps its fraction: "0.5" parses as ".5".
func ParseTender(raw string) Tender {
	cleaned := strings.TrimLeft(strings.TrimSpace(raw), "0")
	t := Tender{Raw: cleaned}

	if cleaned == "" {
		return t
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return t
	}

	t.Amount = amount
	t.Valid = true
	return t
}

func Change(tendered, total decimal.Decimal) decimal.Decimal {
	return tendered.Sub(total)
}

// DisplayChange floors the change at zero. It must not be used to decide
// whether checkout is allowed.
func DisplayChange(tendered, total decimal.Decimal) decimal.Decimal {
	change := Change(tendered, total)
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}

// Covers reports whether the tender pays for total.
func (t Tender) Covers(total decimal.Decimal) bool {
	return t.Valid && t.Amount.GreaterThanOrEqual(total)
}

type Quote struct {
	Total         decimal.Decimal `json:"total"`
	Tender        Tender          `json:"tender"`
	Change        decimal.Decimal `json:"change"`
	DisplayChange decimal.Decimal `json:"display_change"`
	Covered       bool            `json:"covered"`
}

func NewQuote(lines []Line, tender Tender) Quote {
	total := Total(lines)
	q := Quote{
		Total:   total,
		Tender:  tender,
		Covered: tender.Covers(total),
	}
	if tender.Valid {
		q.Change = Change(tender.Amount, total)
		q.DisplayChange = DisplayChange(tender.Amount, total)
	}
	return q
}
