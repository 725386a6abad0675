package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/erazemk/shoplist/internal/db"
	"github.com/erazemk/shoplist/internal/model"
)

func newItem(name string, quantity int, category string) model.NewItem {
	return model.NewItem{Name: name, Quantity: quantity, Category: category}
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, newItem("Apples", 5, "Food"))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.ID == 0 {
		t.Error("expected store-assigned id")
	}
	if item.Name != "Apples" || item.Quantity != 5 || item.Category != "Food" {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.Completed {
		t.Error("new item should not be completed")
	}
	if item.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got == nil || got.Name != "Apples" {
		t.Errorf("expected to read back Apples, got %+v", got)
	}
}

func TestGetMissingItem(t *testing.T) {
	database := db.NewTestDB(t)

	got, err := GetItem(context.Background(), database, 42)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing item, got %+v", got)
	}
}

func TestListItemsOrderAndFilter(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, _ := CreateItem(ctx, database, newItem("Bread", 1, "Food"))
	second, _ := CreateItem(ctx, database, newItem("Milk", 2, "Drinks"))
	done := true
	UpdateItem(ctx, database, second.ID, model.UpdateItemRequest{Completed: &done})

	all, err := ListItems(ctx, database, nil)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 items, got %d", len(all))
	}
	if all[0].ID != second.ID || all[1].ID != first.ID {
		t.Errorf("expected newest first, got ids %d, %d", all[0].ID, all[1].ID)
	}

	completed, _ := ListItems(ctx, database, &done)
	if len(completed) != 1 || !completed[0].Completed {
		t.Errorf("expected only the completed item, got %+v", completed)
	}

	pending := false
	open, _ := ListItems(ctx, database, &pending)
	if len(open) != 1 || open[0].Completed {
		t.Errorf("expected only the pending item, got %+v", open)
	}
}

func TestListItemsEmpty(t *testing.T) {
	database := db.NewTestDB(t)

	items, err := ListItems(context.Background(), database, nil)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", items)
	}
}

func TestUpdateItemPartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, newItem("Eggs", 12, "Food"))

	qty := 6
	got, err := UpdateItem(ctx, database, item.ID, model.UpdateItemRequest{Quantity: &qty})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if got.Quantity != 6 {
		t.Errorf("expected quantity 6, got %d", got.Quantity)
	}
	if got.Name != "Eggs" || got.Category != "Food" {
		t.Errorf("unsupplied fields changed: %+v", got)
	}

	same, err := UpdateItem(ctx, database, item.ID, model.UpdateItemRequest{})
	if err != nil {
		t.Fatalf("empty UpdateItem: %v", err)
	}
	if same.Name != got.Name || same.Quantity != got.Quantity || same.Completed != got.Completed || !same.CreatedAt.Equal(got.CreatedAt) {
		t.Errorf("empty update changed the row: %+v vs %+v", same, got)
	}
}

func TestUpdateMissingItem(t *testing.T) {
	database := db.NewTestDB(t)

	name := "Ghost"
	got, err := UpdateItem(context.Background(), database, 999, model.UpdateItemRequest{Name: &name})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing item, got %+v", got)
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, newItem("Soap", 1, "Household"))

	deleted, err := DeleteItem(ctx, database, item.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteItem = %v, %v", deleted, err)
	}

	deleted, _ = DeleteItem(ctx, database, item.ID)
	if deleted {
		t.Error("second delete should report nothing deleted")
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got != nil {
		t.Error("deleted item is still readable")
	}
}

func TestDeleteItemsCountsMatches(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a, _ := CreateItem(ctx, database, newItem("A", 1, "Other"))
	b, _ := CreateItem(ctx, database, newItem("B", 1, "Other"))
	CreateItem(ctx, database, newItem("C", 1, "Other"))

	n, err := DeleteItems(ctx, database, []int64{a.ID, b.ID, 9999})
	if err != nil {
		t.Fatalf("DeleteItems: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}

	rest, _ := ListItems(ctx, database, nil)
	if len(rest) != 1 || rest[0].Name != "C" {
		t.Errorf("expected only C to remain, got %+v", rest)
	}
}

func TestItemStats(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a, _ := CreateItem(ctx, database, newItem("Apples", 5, "Food"))
	CreateItem(ctx, database, newItem("Bread", 1, "Food"))
	CreateItem(ctx, database, newItem("Cola", 6, "Drinks"))
	done := true
	UpdateItem(ctx, database, a.ID, model.UpdateItemRequest{Completed: &done})

	stats, err := ItemStats(ctx, database)
	if err != nil {
		t.Fatalf("ItemStats: %v", err)
	}
	if stats.Total != 3 || stats.Completed != 1 || stats.Pending != 2 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	food := stats.ByCategory["Food"]
	if food.Total != 2 || food.Completed != 1 || food.Pending != 1 {
		t.Errorf("unexpected Food bucket: %+v", food)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := WithTx(ctx, database, func(tx *sql.Tx) error {
		if _, err := CreateItem(ctx, tx, newItem("Temp", 1, "Other")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	items, _ := ListItems(ctx, database, nil)
	if len(items) != 0 {
		t.Errorf("expected rollback to discard the insert, got %d items", len(items))
	}
}
