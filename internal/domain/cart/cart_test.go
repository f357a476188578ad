package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/pos-service/internal/domain/catalog"
	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
)

func testItem(id int64, price int64, stock int) catalog.Item {
	return catalog.Item{
		ID:        id,
		Code:      "ATK 000" + decimal.NewFromInt(id).String(),
		Name:      "Item " + decimal.NewFromInt(id).String(),
		BuyPrice:  decimal.NewFromInt(price / 2),
		SellPrice: decimal.NewFromInt(price),
		Stock:     stock,
	}
}

func TestCart_Add_CreatesLineWithQuantityOne(t *testing.T) {
	c := New()
	item := testItem(1, 1000, 5)

	line, err := c.Add(item)

	require.NoError(t, err)
	assert.Equal(t, int64(1), line.ItemID)
	assert.Equal(t, 1, line.Quantity)
	assert.True(t, line.Discount.IsZero())
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 1, c.Len())
}

func TestCart_Add_IncrementsExistingLine(t *testing.T) {
	c := New()
	item := testItem(1, 1000, 5)

	_, err := c.Add(item)
	require.NoError(t, err)
	line, err := c.Add(item)

	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 1, c.Len())
}

func TestCart_Add_SecondAddOverSingleStockIsRejected(t *testing.T) {
	c := New()
	item := testItem(1, 1000, 1)

	_, err := c.Add(item)
	require.NoError(t, err)

	_, err = c.Add(item)

	assert.ErrorIs(t, err, domainErrors.ErrStockExceeded)
	line, ok := c.Line(1)
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
}

func TestCart_Add_OutOfStockItemCreatesNoLine(t *testing.T) {
	c := New()

	_, err := c.Add(testItem(1, 1000, 0))

	assert.ErrorIs(t, err, domainErrors.ErrStockExceeded)
	assert.True(t, c.IsEmpty())
}

func TestCart_Add_OutOfStockDoesNotGrowExistingLine(t *testing.T) {
	c := New()
	_, err := c.Add(testItem(1, 1000, 3))
	require.NoError(t, err)

	_, err = c.Add(testItem(1, 1000, 0))

	assert.ErrorIs(t, err, domainErrors.ErrStockExceeded)
	line, _ := c.Line(1)
	assert.Equal(t, 1, line.Quantity)
}

func TestCart_SetQuantity(t *testing.T) {
	item := testItem(1, 1000, 5)

	tests := []struct {
		name     string
		quantity int
		wantErr  error
		wantQty  int
	}{
		{name: "within stock", quantity: 4, wantQty: 4},
		{name: "exactly stock", quantity: 5, wantQty: 5},
		{name: "zero keeps line", quantity: 0, wantQty: 0},
		{name: "above stock", quantity: 6, wantErr: domainErrors.ErrStockExceeded, wantQty: 1},
		{name: "negative", quantity: -1, wantErr: domainErrors.ErrInvalidQuantity, wantQty: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			_, err := c.Add(item)
			require.NoError(t, err)

			_, err = c.SetQuantity(item, tt.quantity)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			line, ok := c.Line(item.ID)
			require.True(t, ok)
			assert.Equal(t, tt.wantQty, line.Quantity)
		})
	}
}

func TestCart_SetQuantity_UnknownLine(t *testing.T) {
	c := New()

	_, err := c.SetQuantity(testItem(9, 1000, 5), 1)

	assert.ErrorIs(t, err, domainErrors.ErrLineNotFound)
}

func TestCart_QuantityNeverExceedsStock(t *testing.T) {
	item := testItem(1, 1000, 3)
	c := New()

	for i := 0; i < 10; i++ {
		_, _ = c.Add(item)
		line, _ := c.Line(item.ID)
		assert.LessOrEqual(t, line.Quantity, item.Stock)
	}
	for _, q := range []int{2, 7, 3, 4, 0, 100} {
		_, _ = c.SetQuantity(item, q)
		line, _ := c.Line(item.ID)
		assert.LessOrEqual(t, line.Quantity, item.Stock)
	}
}

func TestCart_SetDiscount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "100", want: "100"},
		{raw: " 250.5 ", want: "250.5"},
		{raw: "abc", want: "0"},
		{raw: "", want: "0"},
		{raw: "-50", want: "0"},
		{raw: "5000", want: "5000"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := New()
			_, err := c.Add(testItem(1, 1000, 5))
			require.NoError(t, err)

			line, err := c.SetDiscount(1, tt.raw)

			require.NoError(t, err)
			assert.Equal(t, tt.want, line.Discount.String())
		})
	}
}

func TestCart_SetDiscount_UnknownLine(t *testing.T) {
	_, err := New().SetDiscount(1, "10")

	assert.ErrorIs(t, err, domainErrors.ErrLineNotFound)
}

func TestCart_RemoveKeepsOrder(t *testing.T) {
	c := New()
	for id := int64(1); id <= 3; id++ {
		_, err := c.Add(testItem(id, 1000, 5))
		require.NoError(t, err)
	}

	c.Remove(2)
	c.Remove(42)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].ItemID)
	assert.Equal(t, int64(3), lines[1].ItemID)
}

func TestCart_LinesAreCopies(t *testing.T) {
	c := New()
	_, err := c.Add(testItem(1, 1000, 5))
	require.NoError(t, err)

	lines := c.Lines()
	lines[0].Quantity = 99

	line, _ := c.Line(1)
	assert.Equal(t, 1, line.Quantity)
}

func TestCart_Clear(t *testing.T) {
	c := New()
	_, err := c.Add(testItem(1, 1000, 5))
	require.NoError(t, err)

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}

func TestCart_IdempotencyKeys(t *testing.T) {
	c := New()
	item := testItem(1, 1000, 5)
	_, err := c.Add(item)
	require.NoError(t, err)
	_, err = c.Add(testItem(2, 500, 5))
	require.NoError(t, err)

	n := 0
	next := func() string {
		n++
		return "k" + decimal.NewFromInt(int64(n)).String()
	}

	c.AssignIdempotencyKeys(next)
	c.AssignIdempotencyKeys(next)
	lines := c.Lines()
	assert.Equal(t, "k1", lines[0].IdempotencyKey)
	assert.Equal(t, "k2", lines[1].IdempotencyKey)

	t.Run("unchanged edits keep the key", func(t *testing.T) {
		_, err := c.SetQuantity(item, 1)
		require.NoError(t, err)
		line, err := c.SetDiscount(1, "0")
		require.NoError(t, err)
		assert.Equal(t, "k1", line.IdempotencyKey)
	})

	t.Run("discount change clears the key", func(t *testing.T) {
		line, err := c.SetDiscount(1, "50")
		require.NoError(t, err)
		assert.Empty(t, line.IdempotencyKey)
	})

	t.Run("add clears the key", func(t *testing.T) {
		line, err := c.Add(testItem(2, 500, 5))
		require.NoError(t, err)
		assert.Empty(t, line.IdempotencyKey)
	})
}
