package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/erazemk/shoplist/internal/model"
	"github.com/erazemk/shoplist/internal/service"
)

// ItemsHandler handles the shopping-list endpoints.
type ItemsHandler struct {
	Items *service.ItemService
}

// itemID parses the {id} path segment. Only positive integers are valid.
func itemID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Items.List(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, items, "")
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.Items.Create(r.Context(), req)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusCreated, item, "")
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Valid ID is required")
		return
	}

	item, err := h.Items.Get(r.Context(), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, item, "")
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Valid ID is required")
		return
	}

	// A missing body is an update with no fields.
	var req model.UpdateItemRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.Items.Update(r.Context(), id, req)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, item, "")
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "Valid ID is required")
		return
	}

	if err := h.Items.Delete(r.Context(), id); err != nil {
		serviceError(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, nil, "Item deleted successfully")
}

// Stats handles GET /api/items/stats.
func (h *ItemsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Items.Stats(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, stats, "")
}

// BulkCreate handles POST /api/items/bulk.
func (h *ItemsHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req model.BulkCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items, err := h.Items.BulkCreate(r.Context(), req.Items)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusCreated, items, "")
}

// BulkUpdate handles PUT /api/items/bulk.
func (h *ItemsHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.BulkUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items, err := h.Items.BulkUpdate(r.Context(), req.Updates)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, items, "")
}

// BulkDelete handles DELETE /api/items/bulk.
func (h *ItemsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req model.BulkDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.Items.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	jsonSuccess(w, http.StatusOK, res, fmt.Sprintf("%d items deleted successfully", res.DeletedCount))
}
