package catalog

import (
	"time"
)

// Snapshot is an immutable view of the item list as last fetched.
type Snapshot struct {
	items     []Item
	index     map[int64]int
	fetchedAt time.Time
}

func NewSnapshot(items []Item, fetchedAt time.Time) *Snapshot {
	copied := make([]Item, len(items))
	copy(copied, items)

	index := make(map[int64]int, len(copied))
	for i, item := range copied {
		index[item.ID] = i
	}

	return &Snapshot{
		items:     copied,
		index:     index,
		fetchedAt: fetchedAt,
	}
}

func (s *Snapshot) Get(id int64) (Item, bool) {
	i, ok := s.index[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

func (s *Snapshot) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Snapshot) Len() int {
	return len(s.items)
}

func (s *Snapshot) FetchedAt() time.Time {
	return s.fetchedAt
}

// Categories lists distinct categories in first-seen order.
func (s *Snapshot) Categories() []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, item := range s.items {
		c := item.Category()
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}
	return categories
}

func (s *Snapshot) Filter(query, category string) []Item {
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if item.Matches(query, category) {
			out = append(out, item)
		}
	}
	return out
}
