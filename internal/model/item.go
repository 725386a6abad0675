package model

import "time"

// Item is a single entry on the shopping list.
type Item struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Category  string    `json:"category"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultCategory is assigned when an item is created without a category.
const DefaultCategory = "Other"

// Categories offered by the web page.
var Categories = []string{
	"Food",
	"Drinks",
	"Household",
	"Electronics",
	"Clothing",
	"Health",
	DefaultCategory,
}

// Filter selects items by completion state.
type Filter string

// Filters.
const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// ParseFilter maps a query value to a Filter. The empty string means FilterAll.
func ParseFilter(s string) (Filter, bool) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, true
	case FilterCompleted:
		return FilterCompleted, true
	case FilterPending:
		return FilterPending, true
	default:
		return "", false
	}
}

// Completed returns the completed value the filter restricts to, or nil for FilterAll.
func (f Filter) Completed() *bool {
	var v bool
	switch f {
	case FilterCompleted:
		v = true
	case FilterPending:
		v = false
	default:
		return nil
	}
	return &v
}

// Match reports whether the item passes the filter.
func (f Filter) Match(item Item) bool {
	c := f.Completed()
	return c == nil || *c == item.Completed
}
