package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []Item {
	return []Item{
		{ID: 1, Code: "ATK 0001", Name: "Pulpen Hitam", SellPrice: decimal.NewFromInt(3000), Stock: 10},
		{ID: 2, Code: "MKN 0001", Name: "Roti Tawar", SellPrice: decimal.NewFromInt(15000), Stock: 0},
		{ID: 3, Code: "ATK 0002", Name: "Pensil 2B", SellPrice: decimal.NewFromInt(2500), Stock: 4},
	}
}

func TestSnapshot_Get(t *testing.T) {
	s := NewSnapshot(sampleItems(), time.Unix(100, 0))

	item, ok := s.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Pensil 2B", item.Name)

	_, ok = s.Get(99)
	assert.False(t, ok)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, time.Unix(100, 0), s.FetchedAt())
}

func TestSnapshot_IsolatedFromCallerSlices(t *testing.T) {
	items := sampleItems()
	s := NewSnapshot(items, time.Now())

	items[0].Stock = 0
	out := s.Items()
	out[1].Name = "changed"

	item, _ := s.Get(1)
	assert.Equal(t, 10, item.Stock)
	item, _ = s.Get(2)
	assert.Equal(t, "Roti Tawar", item.Name)
}

func TestSnapshot_Categories(t *testing.T) {
	s := NewSnapshot(sampleItems(), time.Now())

	assert.Equal(t, []string{"ATK", "MKN"}, s.Categories())
}

func TestSnapshot_Filter(t *testing.T) {
	s := NewSnapshot(sampleItems(), time.Now())

	assert.Len(t, s.Filter("", ""), 3)
	assert.Len(t, s.Filter("", "ATK"), 2)
	assert.Len(t, s.Filter("pen", ""), 2)
	assert.Len(t, s.Filter("PEN", "ATK"), 2)
	assert.Len(t, s.Filter("roti", "ATK"), 0)
}

func TestItem_InStockAndCategory(t *testing.T) {
	items := sampleItems()

	assert.True(t, items[0].InStock())
	assert.False(t, items[1].InStock())
	assert.Equal(t, "MKN", items[1].Category())
	assert.Equal(t, "", Item{}.Category())
}
