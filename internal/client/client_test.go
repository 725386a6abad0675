package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erazemk/shoplist/internal/api"
	"github.com/erazemk/shoplist/internal/db"
	"github.com/erazemk/shoplist/internal/model"
)

func setupClient(t *testing.T) *Client {
	t.Helper()
	database := db.NewTestDB(t)
	server := httptest.NewServer(api.Wrap(api.NewRouter(database), nil))
	t.Cleanup(server.Close)
	return New(server.URL)
}

func intPtr(v int) *int { return &v }
func boolPtr(v bool) *bool { return &v }

func TestItemLifecycle(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	if items := c.Items(ctx, model.FilterAll); items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", items)
	}

	item := c.CreateItem(ctx, model.CreateItemRequest{Name: "Apples", Quantity: intPtr(5), Category: "Food"})
	if item == nil {
		t.Fatal("expected created item")
	}
	if item.Name != "Apples" || item.Quantity != 5 || item.Completed {
		t.Errorf("unexpected item: %+v", item)
	}

	got := c.Item(ctx, item.ID)
	if got == nil || got.ID != item.ID {
		t.Fatalf("expected to fetch item %d, got %+v", item.ID, got)
	}

	updated := c.UpdateItem(ctx, item.ID, model.UpdateItemRequest{Completed: boolPtr(true)})
	if updated == nil || !updated.Completed {
		t.Fatalf("expected completed item, got %+v", updated)
	}

	stats := c.Stats(ctx)
	if stats == nil || stats.Total != 1 || stats.Completed != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if completed := c.Items(ctx, model.FilterCompleted); len(completed) != 1 {
		t.Errorf("expected 1 completed item, got %d", len(completed))
	}
	if pending := c.Items(ctx, model.FilterPending); pending == nil || len(pending) != 0 {
		t.Errorf("expected empty pending list, got %#v", pending)
	}

	if !c.DeleteItem(ctx, item.ID) {
		t.Fatal("expected delete to succeed")
	}
	if c.Item(ctx, item.ID) != nil {
		t.Error("expected nil after delete")
	}
}

func TestFailuresReturnSentinels(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	if item := c.CreateItem(ctx, model.CreateItemRequest{Name: "  "}); item != nil {
		t.Errorf("expected nil for invalid create, got %+v", item)
	}
	if item := c.UpdateItem(ctx, 999999, model.UpdateItemRequest{Completed: boolPtr(true)}); item != nil {
		t.Errorf("expected nil for missing update, got %+v", item)
	}
	if c.DeleteItem(ctx, 999999) {
		t.Error("expected false for missing delete")
	}
	if items := c.BulkCreate(ctx, nil); items != nil {
		t.Errorf("expected nil for empty bulk create, got %#v", items)
	}
	if res := c.BulkDelete(ctx, nil); res != nil {
		t.Errorf("expected nil for empty bulk delete, got %+v", res)
	}
	if items := c.Items(ctx, model.Filter("bogus")); items == nil || len(items) != 0 {
		t.Errorf("expected unknown filter to list everything, got %#v", items)
	}
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := New(url)
	ctx := context.Background()

	if items := c.Items(ctx, model.FilterAll); items != nil {
		t.Errorf("expected nil items, got %#v", items)
	}
	if stats := c.Stats(ctx); stats != nil {
		t.Errorf("expected nil stats, got %+v", stats)
	}
	if c.DeleteItem(ctx, 1) {
		t.Error("expected false")
	}
}

func TestNonEnvelopeResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	t.Cleanup(server.Close)

	c := New(server.URL)
	if items := c.Items(context.Background(), model.FilterAll); items != nil {
		t.Errorf("expected nil items, got %#v", items)
	}
}

func TestRequestIDHeader(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	t.Cleanup(server.Close)

	New(server.URL).Items(context.Background(), model.FilterAll)
	if len(got) != 36 {
		t.Errorf("expected a uuid request id, got %q", got)
	}
}

func TestBulkOperations(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	created := c.BulkCreate(ctx, []model.CreateItemRequest{{Name: "A"}, {Name: "B"}, {Name: "C"}})
	if len(created) != 3 {
		t.Fatalf("expected 3 created items, got %d", len(created))
	}

	updates := make([]model.BulkUpdateEntry, 0, 2)
	for _, it := range created[:2] {
		updates = append(updates, model.BulkUpdateEntry{ID: it.ID, UpdateItemRequest: model.UpdateItemRequest{Completed: boolPtr(true)}})
	}
	updated := c.BulkUpdate(ctx, updates)
	if len(updated) != 2 {
		t.Fatalf("expected 2 updated items, got %d", len(updated))
	}
	for _, it := range updated {
		if !it.Completed {
			t.Errorf("item %d not completed", it.ID)
		}
	}

	res := c.BulkDelete(ctx, []int64{created[0].ID, created[1].ID, created[2].ID, 424242})
	if res == nil || res.DeletedCount != 3 {
		t.Errorf("expected deletedCount 3, got %+v", res)
	}
	if items := c.Items(ctx, model.FilterAll); len(items) != 0 {
		t.Errorf("expected empty list, got %d items", len(items))
	}
}
