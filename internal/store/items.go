package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/erazemk/shoplist/internal/model"
)

const itemColumns = `id, name, quantity, category, completed, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.Item, error) {
	item := &model.Item{}
	if err := s.Scan(&item.ID, &item.Name, &item.Quantity, &item.Category, &item.Completed, &item.CreatedAt); err != nil {
		return nil, err
	}
	return item, nil
}

// CreateItem inserts a new, not yet completed item.
func CreateItem(ctx context.Context, q Querier, item model.NewItem) (*model.Item, error) {
	result, err := q.ExecContext(ctx,
		`INSERT INTO items (name, quantity, category, completed) VALUES (?, ?, ?, ?)`,
		item.Name, item.Quantity, item.Category, false,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	created, err := GetItem(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("item %d missing after insert", id)
	}
	return created, nil
}

// GetItem returns an item by ID, or nil if it doesn't exist.
func GetItem(ctx context.Context, q Querier, id int64) (*model.Item, error) {
	item, err := scanItem(q.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns items newest first. A non-nil completed restricts the
// result to items with that completion state.
func ListItems(ctx context.Context, q Querier, completed *bool) ([]model.Item, error) {
	var rows *sql.Rows
	var err error

	if completed != nil {
		rows, err = q.QueryContext(ctx,
			`SELECT `+itemColumns+` FROM items WHERE completed = ?
			 ORDER BY created_at DESC, id DESC`, *completed,
		)
	} else {
		rows, err = q.QueryContext(ctx,
			`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC, id DESC`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// UpdateItem applies the supplied fields and returns the resulting row, or nil
// if no item has that ID. An empty update only reads the row.
func UpdateItem(ctx context.Context, q Querier, id int64, upd model.UpdateItemRequest) (*model.Item, error) {
	var sets []string
	var args []any

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *upd.Quantity)
	}
	if upd.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *upd.Category)
	}
	if upd.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *upd.Completed)
	}

	if len(sets) > 0 {
		args = append(args, id)
		// RowsAffected is not used to detect a missing row: MySQL reports 0
		// for a row whose values did not change.
		_, err := q.ExecContext(ctx,
			`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...,
		)
		if err != nil {
			return nil, fmt.Errorf("updating item: %w", err)
		}
	}

	return GetItem(ctx, q, id)
}

// DeleteItem permanently removes an item. It reports whether a row was deleted.
func DeleteItem(ctx context.Context, q Querier, id int64) (bool, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return n > 0, nil
}

// DeleteItems removes all items with the given IDs in one statement and
// returns how many rows matched.
func DeleteItems(ctx context.Context, q Querier, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	result, err := q.ExecContext(ctx,
		`DELETE FROM items WHERE id IN (`+placeholders+`)`, args...,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting items: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting items: %w", err)
	}
	return n, nil
}

// ItemStats counts all items by completion state and category.
func ItemStats(ctx context.Context, q Querier) (*model.ItemStats, error) {
	rows, err := q.QueryContext(ctx, `SELECT completed, category FROM items`)
	if err != nil {
		return nil, fmt.Errorf("reading item stats: %w", err)
	}
	defer rows.Close()

	stats := model.NewItemStats()
	for rows.Next() {
		var completed bool
		var category string
		if err := rows.Scan(&completed, &category); err != nil {
			return nil, fmt.Errorf("scanning item stats: %w", err)
		}
		stats.Add(category, completed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading item stats: %w", err)
	}
	return stats, nil
}
