package ui

import (
	"slices"

	"github.com/erazemk/shoplist/internal/model"
)

// Action is an event that changes State.
type Action interface {
	action()
}

type (
	// LoadStarted marks the start of a list reload.
	LoadStarted struct{}
	// LoadSucceeded carries the freshly fetched list.
	LoadSucceeded struct{ Items []model.Item }
	// LoadFailed reports a failed list reload.
	LoadFailed struct{}
	// StatsLoaded carries stats fetched from the API.
	StatsLoaded struct{ Stats *model.ItemStats }
	// StatsFailed makes the stats fall back to the loaded list.
	StatsFailed struct{}
	// StatsShown shows or hides the stats panel.
	StatsShown struct{ Show bool }
	// FilterChanged switches the active filter.
	FilterChanged struct{ Filter model.Filter }
	// ItemAdded inserts a created item.
	ItemAdded struct{ Item model.Item }
	// ItemUpdated replaces an item.
	ItemUpdated struct{ Item model.Item }
	// ItemDeleted removes an item.
	ItemDeleted struct{ ID int64 }
	// SelectionToggled flips the selection of one item.
	SelectionToggled struct{ ID int64 }
	// SelectionCleared empties the selection.
	SelectionCleared struct{}
	// BulkDeleted removes several items and clears the selection.
	BulkDeleted struct{ IDs []int64 }
	// BulkUpdated replaces several items and clears the selection.
	BulkUpdated struct{ Items []model.Item }
	// EditStarted opens the edit form of one item, closing any other.
	EditStarted struct{ Item model.Item }
	// EditCancelled closes the edit form.
	EditCancelled struct{}
	// ActionStarted marks a mutation in flight.
	ActionStarted struct{}
	// ActionFailed ends a mutation with a banner message.
	ActionFailed struct{ Message string }
	// ActionFinished ends a successful mutation.
	ActionFinished struct{}
	// ErrorDismissed clears the banner.
	ErrorDismissed struct{}
)

func (LoadStarted) action()      {}
func (LoadSucceeded) action()    {}
func (LoadFailed) action()       {}
func (StatsLoaded) action()      {}
func (StatsFailed) action()      {}
func (StatsShown) action()       {}
func (FilterChanged) action()    {}
func (ItemAdded) action()        {}
func (ItemUpdated) action()      {}
func (ItemDeleted) action()      {}
func (SelectionToggled) action() {}
func (SelectionCleared) action() {}
func (BulkDeleted) action()      {}
func (BulkUpdated) action()      {}
func (EditStarted) action()      {}
func (EditCancelled) action()    {}
func (ActionStarted) action()    {}
func (ActionFailed) action()     {}
func (ActionFinished) action()   {}
func (ErrorDismissed) action()   {}

// clone copies the slices and maps of s so the copy can be changed freely.
func (s State) clone() State {
	s.Items = slices.Clone(s.Items)
	selected := make(map[int64]bool, len(s.Selected))
	for id, ok := range s.Selected {
		if ok {
			selected[id] = true
		}
	}
	s.Selected = selected
	if s.Editing != nil {
		editing := *s.Editing
		s.Editing = &editing
	}
	return s
}

func (s *State) removeItems(ids ...int64) {
	s.Items = slices.DeleteFunc(s.Items, func(it model.Item) bool {
		return slices.Contains(ids, it.ID)
	})
	for _, id := range ids {
		delete(s.Selected, id)
		if s.Editing != nil && s.Editing.ID == id {
			s.Editing = nil
		}
	}
}

// replaceItem swaps in the new version of item. An item that no longer
// passes the filter leaves the list.
func (s *State) replaceItem(item model.Item) {
	i := slices.IndexFunc(s.Items, func(it model.Item) bool { return it.ID == item.ID })
	if i < 0 {
		return
	}
	if !s.Filter.Match(item) {
		s.removeItems(item.ID)
		return
	}
	s.Items[i] = item
	if s.Editing != nil && s.Editing.ID == item.ID {
		s.Editing = nil
	}
}

// Reduce returns the state that results from applying a to s. It never
// modifies s.
func Reduce(s State, a Action) State {
	s = s.clone()

	switch a := a.(type) {
	case LoadStarted:
		s.Loading = true
		s.Error = ""

	case LoadSucceeded:
		s.Loading = false
		s.Loaded = true
		s.Items = slices.Clone(a.Items)
		if s.Items == nil {
			s.Items = []model.Item{}
		}
		for id := range s.Selected {
			if _, ok := s.Find(id); !ok {
				delete(s.Selected, id)
			}
		}
		if s.Editing != nil {
			if _, ok := s.Find(s.Editing.ID); !ok {
				s.Editing = nil
			}
		}

	case LoadFailed:
		s.Loading = false
		s.Error = ErrLoadItems
		if !s.Loaded {
			s.Items = FallbackItems()
			s.Loaded = true
		}

	case StatsLoaded:
		if a.Stats == nil {
			s.Stats = model.ComputeStats(s.Items)
		} else {
			s.Stats = a.Stats
		}

	case StatsFailed:
		s.Stats = model.ComputeStats(s.Items)

	case StatsShown:
		s.ShowStats = a.Show
		if !a.Show {
			s.Stats = nil
		}

	case FilterChanged:
		if _, ok := model.ParseFilter(string(a.Filter)); ok {
			s.Filter = a.Filter
			if s.Filter == "" {
				s.Filter = model.FilterAll
			}
		}

	case ItemAdded:
		if s.Filter.Match(a.Item) {
			s.Items = slices.Insert(s.Items, 0, a.Item)
		}

	case ItemUpdated:
		s.replaceItem(a.Item)

	case ItemDeleted:
		s.removeItems(a.ID)

	case SelectionToggled:
		if s.Selected[a.ID] {
			delete(s.Selected, a.ID)
		} else if _, ok := s.Find(a.ID); ok {
			s.Selected[a.ID] = true
		}

	case SelectionCleared:
		s.Selected = map[int64]bool{}

	case BulkDeleted:
		s.removeItems(a.IDs...)
		s.Selected = map[int64]bool{}

	case BulkUpdated:
		for _, item := range a.Items {
			s.replaceItem(item)
		}
		s.Selected = map[int64]bool{}

	case EditStarted:
		item := a.Item
		s.Editing = &item

	case EditCancelled:
		s.Editing = nil

	case ActionStarted:
		s.Loading = true
		s.Error = ""

	case ActionFailed:
		s.Loading = false
		s.Error = a.Message

	case ActionFinished:
		s.Loading = false

	case ErrorDismissed:
		s.Error = ""
	}

	return s
}
