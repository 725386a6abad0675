package model

// CategoryStats holds the counts for one category.
type CategoryStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// ItemStats summarizes the whole list.
type ItemStats struct {
	Total      int                      `json:"total"`
	Completed  int                      `json:"completed"`
	Pending    int                      `json:"pending"`
	ByCategory map[string]CategoryStats `json:"byCategory"`
}

// NewItemStats returns empty stats ready for Add.
func NewItemStats() *ItemStats {
	return &ItemStats{ByCategory: make(map[string]CategoryStats)}
}

// Add counts one item.
func (s *ItemStats) Add(category string, completed bool) {
	if s.ByCategory == nil {
		s.ByCategory = make(map[string]CategoryStats)
	}

	bucket := s.ByCategory[category]
	s.Total++
	bucket.Total++
	if completed {
		s.Completed++
		bucket.Completed++
	} else {
		s.Pending++
		bucket.Pending++
	}
	s.ByCategory[category] = bucket
}

// ComputeStats builds stats from a list of items in a single pass.
func ComputeStats(items []Item) *ItemStats {
	stats := NewItemStats()
	for _, item := range items {
		stats.Add(item.Category, item.Completed)
	}
	return stats
}
