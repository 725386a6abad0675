// Package ui holds the state of the shopping-list page and the controller
// that changes it. State only changes through Reduce.
package ui

import (
	"slices"
	"time"

	"github.com/erazemk/shoplist/internal/model"
)

// Banner messages.
const (
	ErrLoadItems     = "Failed to load items"
	ErrAddItem       = "Failed to add item"
	ErrUpdateItem    = "Failed to update item"
	ErrDeleteItem    = "Failed to delete item"
	ErrDeleteItems   = "Failed to delete items"
	ErrCompleteItems = "Failed to mark items as completed"
)

// State is everything the page renders.
type State struct {
	Items    []model.Item
	Stats    *model.ItemStats
	Filter   model.Filter
	Selected map[int64]bool
	// ShowStats turns the stats panel on. Stats are only fetched while it is set.
	ShowStats bool
	// Editing is the item whose edit form is open. At most one at a time.
	Editing *model.Item
	// Loading gates every control while a request is in flight.
	Loading bool
	// Loaded is set once the first load has finished, successfully or not.
	Loaded bool
	Error  string
}

// NewState returns the state before the first load.
func NewState(filter model.Filter) State {
	if _, ok := model.ParseFilter(string(filter)); !ok || filter == "" {
		filter = model.FilterAll
	}
	return State{Filter: filter, Selected: map[int64]bool{}}
}

// Visible returns the loaded items that pass the active filter.
func (s State) Visible() []model.Item {
	visible := make([]model.Item, 0, len(s.Items))
	for _, item := range s.Items {
		if s.Filter.Match(item) {
			visible = append(visible, item)
		}
	}
	return visible
}

// SelectedIDs returns the selected ids in ascending order.
func (s State) SelectedIDs() []int64 {
	ids := make([]int64, 0, len(s.Selected))
	for id, ok := range s.Selected {
		if ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Find returns the loaded item with the given id.
func (s State) Find(id int64) (model.Item, bool) {
	i := slices.IndexFunc(s.Items, func(it model.Item) bool { return it.ID == id })
	if i < 0 {
		return model.Item{}, false
	}
	return s.Items[i], true
}

// FallbackItems is shown when the very first load fails, so the page is
// never blank.
func FallbackItems() []model.Item {
	return []model.Item{
		{
			ID:        1,
			Name:      "Apples",
			Quantity:  5,
			Category:  "Food",
			Completed: false,
			CreatedAt: time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        2,
			Name:      "Milk",
			Quantity:  2,
			Category:  "Drinks",
			Completed: true,
			CreatedAt: time.Date(2025, 1, 20, 10, 30, 0, 0, time.UTC),
		},
	}
}
