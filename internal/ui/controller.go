package ui

import (
	"context"
	"strings"
	"sync"

	"github.com/erazemk/shoplist/internal/model"
)

// Facade is the API surface the controller needs. Implementations report
// failure with a nil slice, a nil pointer or false.
type Facade interface {
	Items(ctx context.Context, filter model.Filter) []model.Item
	Stats(ctx context.Context) *model.ItemStats
	CreateItem(ctx context.Context, req model.CreateItemRequest) *model.Item
	UpdateItem(ctx context.Context, id int64, req model.UpdateItemRequest) *model.Item
	DeleteItem(ctx context.Context, id int64) bool
	BulkUpdate(ctx context.Context, updates []model.BulkUpdateEntry) []model.Item
	BulkDelete(ctx context.Context, ids []int64) *model.BulkDeleteResult
}

// Controller turns user actions into facade calls and state changes.
// Methods that start a request return false without doing anything while
// another request is in flight.
type Controller struct {
	facade Facade

	mu    sync.Mutex
	state State
}

// NewController creates a controller starting from initial.
func NewController(facade Facade, initial State) *Controller {
	if initial.Selected == nil {
		initial.Selected = map[int64]bool{}
	}
	if initial.Filter == "" {
		initial.Filter = model.FilterAll
	}
	return &Controller{facade: facade, state: initial}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Dispatch applies a to the current state.
func (c *Controller) Dispatch(a Action) {
	c.mu.Lock()
	c.state = Reduce(c.state, a)
	c.mu.Unlock()
}

// begin dispatches start unless a request is already in flight.
func (c *Controller) begin(start Action) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Loading {
		return c.state, false
	}
	c.state = Reduce(c.state, start)
	return c.state, true
}

// Load reloads the list for the active filter, then the stats.
func (c *Controller) Load(ctx context.Context) bool {
	s, ok := c.begin(LoadStarted{})
	if !ok {
		return false
	}

	if items := c.facade.Items(ctx, s.Filter); items != nil {
		c.Dispatch(LoadSucceeded{Items: items})
	} else {
		c.Dispatch(LoadFailed{})
	}
	c.refreshStats(ctx)
	return true
}

// ShowStats shows or hides the stats panel. Showing it fetches the stats.
func (c *Controller) ShowStats(ctx context.Context, show bool) {
	c.Dispatch(StatsShown{Show: show})
	if show {
		c.LoadStats(ctx)
	}
}

// refreshStats reloads the stats if the panel is shown.
func (c *Controller) refreshStats(ctx context.Context) {
	if c.State().ShowStats {
		c.LoadStats(ctx)
	}
}

// LoadStats fetches stats independently of the list. On failure they are
// computed from the loaded items.
func (c *Controller) LoadStats(ctx context.Context) {
	if stats := c.facade.Stats(ctx); stats != nil {
		c.Dispatch(StatsLoaded{Stats: stats})
	} else {
		c.Dispatch(StatsFailed{})
	}
}

// SetFilter switches the filter and reloads from the server.
func (c *Controller) SetFilter(ctx context.Context, filter model.Filter) bool {
	if _, ok := model.ParseFilter(string(filter)); !ok {
		return false
	}
	if c.State().Loading {
		return false
	}
	c.Dispatch(FilterChanged{Filter: filter})
	return c.Load(ctx)
}

// AddItem creates an item. A blank name is ignored.
func (c *Controller) AddItem(ctx context.Context, req model.CreateItemRequest) bool {
	if strings.TrimSpace(req.Name) == "" {
		return false
	}
	if _, ok := c.begin(ActionStarted{}); !ok {
		return false
	}

	item := c.facade.CreateItem(ctx, req)
	if item == nil {
		c.Dispatch(ActionFailed{Message: ErrAddItem})
		return true
	}
	c.Dispatch(ItemAdded{Item: *item})
	c.Dispatch(ActionFinished{})
	c.refreshStats(ctx)
	return true
}

// UpdateItem applies a partial update to one item.
func (c *Controller) UpdateItem(ctx context.Context, id int64, req model.UpdateItemRequest) bool {
	if _, ok := c.begin(ActionStarted{}); !ok {
		return false
	}

	item := c.facade.UpdateItem(ctx, id, req)
	if item == nil {
		c.Dispatch(ActionFailed{Message: ErrUpdateItem})
		return true
	}
	c.Dispatch(ItemUpdated{Item: *item})
	c.Dispatch(ActionFinished{})
	c.refreshStats(ctx)
	return true
}

// ToggleCompleted flips the completed flag of a loaded item.
func (c *Controller) ToggleCompleted(ctx context.Context, id int64) bool {
	item, ok := c.State().Find(id)
	if !ok {
		return false
	}
	completed := !item.Completed
	return c.UpdateItem(ctx, id, model.UpdateItemRequest{Completed: &completed})
}

// DeleteItem removes one item.
func (c *Controller) DeleteItem(ctx context.Context, id int64) bool {
	if _, ok := c.begin(ActionStarted{}); !ok {
		return false
	}

	if !c.facade.DeleteItem(ctx, id) {
		c.Dispatch(ActionFailed{Message: ErrDeleteItem})
		return true
	}
	c.Dispatch(ItemDeleted{ID: id})
	c.Dispatch(ActionFinished{})
	c.refreshStats(ctx)
	return true
}

// ToggleSelection adds or removes an item from the selection.
func (c *Controller) ToggleSelection(id int64) {
	c.Dispatch(SelectionToggled{ID: id})
}

// BulkDelete removes every selected item.
func (c *Controller) BulkDelete(ctx context.Context) bool {
	ids := c.State().SelectedIDs()
	if len(ids) == 0 {
		return false
	}
	if _, ok := c.begin(ActionStarted{}); !ok {
		return false
	}

	if res := c.facade.BulkDelete(ctx, ids); res == nil {
		c.Dispatch(ActionFailed{Message: ErrDeleteItems})
		return true
	}
	c.Dispatch(BulkDeleted{IDs: ids})
	c.Dispatch(ActionFinished{})
	c.refreshStats(ctx)
	return true
}

// BulkMarkCompleted marks every selected item as completed.
func (c *Controller) BulkMarkCompleted(ctx context.Context) bool {
	ids := c.State().SelectedIDs()
	if len(ids) == 0 {
		return false
	}
	if _, ok := c.begin(ActionStarted{}); !ok {
		return false
	}

	completed := true
	updates := make([]model.BulkUpdateEntry, len(ids))
	for i, id := range ids {
		updates[i] = model.BulkUpdateEntry{
			ID:                id,
			UpdateItemRequest: model.UpdateItemRequest{Completed: &completed},
		}
	}

	items := c.facade.BulkUpdate(ctx, updates)
	if items == nil {
		c.Dispatch(ActionFailed{Message: ErrCompleteItems})
		return true
	}
	c.Dispatch(BulkUpdated{Items: items})
	c.Dispatch(ActionFinished{})
	c.refreshStats(ctx)
	return true
}

// StartEdit opens the edit form of a loaded item.
func (c *Controller) StartEdit(id int64) bool {
	item, ok := c.State().Find(id)
	if !ok {
		return false
	}
	c.Dispatch(EditStarted{Item: item})
	return true
}

// CancelEdit closes the edit form.
func (c *Controller) CancelEdit() {
	c.Dispatch(EditCancelled{})
}
