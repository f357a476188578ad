package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yuzvak/pos-service/internal/domain/catalog"
	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
)

// Cart is an ordered set of lines with at most one line per item.
// It is not safe for concurrent use.
type Cart struct {
	lines []*Line
}

func New() *Cart {
	return &Cart{}
}

// Add puts one unit of item into the cart, creating the line on first add.
func (c *Cart) Add(item catalog.Item) (Line, error) {
	if line := c.find(item.ID); line != nil {
		if line.Quantity+1 > item.Stock {
			return *line, stockExceeded(item)
		}
		line.Quantity++
		line.IdempotencyKey = ""
		return *line, nil
	}

	if item.Stock < 1 {
		return Line{}, stockExceeded(item)
	}

	line := newLine(item)
	c.lines = append(c.lines, line)
	return *line, nil
}

// SetQuantity replaces the quantity of an existing line. Zero is accepted and
// keeps the line in the cart.
func (c *Cart) SetQuantity(item catalog.Item, quantity int) (Line, error) {
	line := c.find(item.ID)
	if line == nil {
		return Line{}, domainErrors.ErrLineNotFound
	}
	if quantity < 0 {
		return *line, domainErrors.ErrInvalidQuantity
	}
	if quantity > item.Stock {
		return *line, stockExceeded(item)
	}

	if line.Quantity != quantity {
		line.Quantity = quantity
		line.IdempotencyKey = ""
	}
	return *line, nil
}

func (c *Cart) SetDiscount(itemID int64, raw string) (Line, error) {
	line := c.find(itemID)
	if line == nil {
		return Line{}, domainErrors.ErrLineNotFound
	}

	discount := ParseDiscount(raw)
	if !discount.Equal(line.Discount) {
		line.Discount = discount
		line.IdempotencyKey = ""
	}
	return *line, nil
}

// AssignIdempotencyKeys gives every line without a key a fresh one from
// newKey. Lines that already carry a key keep it.
func (c *Cart) AssignIdempotencyKeys(newKey func() string) {
	for _, line := range c.lines {
		if line.IdempotencyKey == "" {
			line.IdempotencyKey = newKey()
		}
	}
}

func (c *Cart) Remove(itemID int64) {
	for i, line := range c.lines {
		if line.ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Line(itemID int64) (Line, bool) {
	line := c.find(itemID)
	if line == nil {
		return Line{}, false
	}
	return *line, true
}

func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Total() decimal.Decimal {
	return Total(c.Lines())
}

func (c *Cart) find(itemID int64) *Line {
	for _, line := range c.lines {
		if line.ItemID == itemID {
			return line
		}
	}
	return nil
}

func stockExceeded(item catalog.Item) error {
	return fmt.Errorf("%w: maximum stock (%d) reached for %s", domainErrors.ErrStockExceeded, item.Stock, item.Name)
}
