package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/shoplist/internal/model"
	"github.com/erazemk/shoplist/internal/store"
)

// ItemService implements the shopping-list operations on top of the store.
// It keeps no state between calls.
type ItemService struct {
	DB *sql.DB
}

// NewItemService creates an ItemService backed by db.
func NewItemService(db *sql.DB) *ItemService {
	return &ItemService{DB: db}
}

// List returns items newest first, restricted by filter ("completed" or
// "pending"). Any other value lists every item.
func (s *ItemService) List(ctx context.Context, filter string) ([]model.Item, error) {
	f, ok := model.ParseFilter(filter)
	if !ok {
		f = model.FilterAll
	}

	items, err := store.ListItems(ctx, s.DB, f.Completed())
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

// Get returns a single item.
func (s *ItemService) Get(ctx context.Context, id int64) (*model.Item, error) {
	if id <= 0 {
		return nil, invalidInput("Valid ID is required")
	}

	item, err := store.GetItem(ctx, s.DB, id)
	if err != nil {
		return nil, storeError(err)
	}
	if item == nil {
		return nil, notFound()
	}
	return item, nil
}

// Create validates and inserts one item.
func (s *ItemService) Create(ctx context.Context, req model.CreateItemRequest) (*model.Item, error) {
	n := req.Normalize()
	if err := n.Validate(); err != nil {
		return nil, invalidInput(err.Error())
	}

	item, err := store.CreateItem(ctx, s.DB, n)
	if err != nil {
		return nil, storeError(err)
	}
	return item, nil
}

// Update applies the supplied fields of req to the item.
func (s *ItemService) Update(ctx context.Context, id int64, req model.UpdateItemRequest) (*model.Item, error) {
	if id <= 0 {
		return nil, invalidInput("Valid ID is required")
	}

	upd := req.Normalize()
	if err := upd.Validate(); err != nil {
		return nil, invalidInput(err.Error())
	}

	item, err := store.UpdateItem(ctx, s.DB, id, upd)
	if err != nil {
		return nil, storeError(err)
	}
	if item == nil {
		return nil, notFound()
	}
	return item, nil
}

// Delete permanently removes an item.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalidInput("Valid ID is required")
	}

	deleted, err := store.DeleteItem(ctx, s.DB, id)
	if err != nil {
		return storeError(err)
	}
	if !deleted {
		return notFound()
	}
	return nil
}

// BulkCreate inserts all items or none of them.
func (s *ItemService) BulkCreate(ctx context.Context, reqs []model.CreateItemRequest) ([]model.Item, error) {
	if len(reqs) == 0 {
		return nil, invalidInput("Items array is required")
	}

	items := make([]model.NewItem, len(reqs))
	for i, req := range reqs {
		n := req.Normalize()
		if err := n.Validate(); err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) && verr.Field == "Name" {
				return nil, invalidInput("All items must have a name")
			}
			return nil, invalidInput(err.Error())
		}
		items[i] = n
	}

	created := make([]model.Item, 0, len(items))
	err := store.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, n := range items {
			item, err := store.CreateItem(ctx, tx, n)
			if err != nil {
				return err
			}
			created = append(created, *item)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return created, nil
}

// BulkUpdate validates every entry before writing anything, then applies all
// updates in one transaction. Entries whose ID matches no item are skipped;
// the returned slice holds the rows that were updated.
func (s *ItemService) BulkUpdate(ctx context.Context, entries []model.BulkUpdateEntry) ([]model.Item, error) {
	if len(entries) == 0 {
		return nil, invalidInput("Updates array is required")
	}

	updates := make([]model.BulkUpdateEntry, len(entries))
	for i, e := range entries {
		if e.ID <= 0 {
			return nil, invalidInput("All updates must have an ID")
		}
		upd := e.UpdateItemRequest.Normalize()
		if err := upd.Validate(); err != nil {
			return nil, invalidInput(fmt.Sprintf("Item %d: %s", e.ID, err.Error()))
		}
		updates[i] = model.BulkUpdateEntry{ID: e.ID, UpdateItemRequest: upd}
	}

	updated := []model.Item{}
	err := store.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, u := range updates {
			item, err := store.UpdateItem(ctx, tx, u.ID, u.UpdateItemRequest)
			if err != nil {
				return err
			}
			if item != nil {
				updated = append(updated, *item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return updated, nil
}

// BulkDelete removes every item in ids and reports how many existed.
func (s *ItemService) BulkDelete(ctx context.Context, ids []int64) (*model.BulkDeleteResult, error) {
	if len(ids) == 0 {
		return nil, invalidInput("IDs array is required")
	}

	n, err := store.DeleteItems(ctx, s.DB, ids)
	if err != nil {
		return nil, storeError(err)
	}
	return &model.BulkDeleteResult{DeletedCount: n}, nil
}

// Stats aggregates the current list.
func (s *ItemService) Stats(ctx context.Context) (*model.ItemStats, error) {
	stats, err := store.ItemStats(ctx, s.DB)
	if err != nil {
		return nil, storeError(err)
	}
	return stats, nil
}
