package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/erazemk/shoplist/internal/service"
)

// methods dispatches a route by request method and answers anything else
// with 405 and an Allow header.
type methods map[string]http.HandlerFunc

func (m methods) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.Method]; ok {
		h(w, r)
		return
	}

	allowed := make([]string, 0, len(m))
	for method := range m {
		allowed = append(allowed, method)
	}
	slices.Sort(allowed)

	w.Header().Set("Allow", strings.Join(allowed, ", "))
	jsonError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s Not Allowed", r.Method))
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	items := &ItemsHandler{Items: service.NewItemService(db)}

	mux.Handle("/api/items", methods{
		http.MethodGet:  items.List,
		http.MethodPost: items.Create,
	})
	mux.Handle("/api/items/stats", methods{
		http.MethodGet: items.Stats,
	})
	mux.Handle("/api/items/bulk", methods{
		http.MethodPost:   items.BulkCreate,
		http.MethodPut:    items.BulkUpdate,
		http.MethodDelete: items.BulkDelete,
	})
	mux.Handle("/api/items/{id}", methods{
		http.MethodGet:    items.Get,
		http.MethodPut:    items.Update,
		http.MethodDelete: items.Delete,
	})

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, "Not found")
	})

	return mux
}
