package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/erazemk/shoplist/internal/model"
	"github.com/erazemk/shoplist/internal/ui"
)

// listPageData is what list.html renders.
type listPageData struct {
	PageData
	State      ui.State
	Visible    []model.Item
	Filters    []model.Filter
	Categories []string
	ByCategory []CategoryRow
	Groups     []ItemGroup
}

// ListURL is the current list view.
func (d *listPageData) ListURL() string {
	return listURL(d.State.Filter, d.State.ShowStats)
}

// FilterURL switches to filter f, keeping the stats panel as it is.
func (d *listPageData) FilterURL(f model.Filter) string {
	return listURL(f, d.State.ShowStats)
}

// StatsURL shows or hides the stats panel.
func (d *listPageData) StatsURL() string {
	return listURL(d.State.Filter, !d.State.ShowStats)
}

// EditURL opens the edit form of item id.
func (d *listPageData) EditURL(id int64) string {
	q := listQuery(d.State.Filter, d.State.ShowStats)
	q.Set("edit", strconv.FormatInt(id, 10))
	return "/?" + q.Encode()
}

// requestFilter reads the filter from the query string or form. Unknown
// values fall back to all items.
func requestFilter(r *http.Request) model.Filter {
	f, ok := model.ParseFilter(r.FormValue("filter"))
	if !ok {
		return model.FilterAll
	}
	return f
}

// requestShowStats reports whether the stats panel is on ("stats=1").
func requestShowStats(r *http.Request) bool {
	show, _ := strconv.ParseBool(r.FormValue("stats"))
	return show
}

func listQuery(filter model.Filter, showStats bool) url.Values {
	q := url.Values{}
	if filter != model.FilterAll && filter != "" {
		q.Set("filter", string(filter))
	}
	if showStats {
		q.Set("stats", "1")
	}
	return q
}

func listURL(filter model.Filter, showStats bool) string {
	q := listQuery(filter, showStats)
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// load creates a controller for this request and loads the list.
func (s *Server) load(r *http.Request) *ui.Controller {
	state := ui.NewState(requestFilter(r))
	state.ShowStats = requestShowStats(r)
	c := ui.NewController(s.API, state)
	c.Load(r.Context())
	return c
}

// finish redirects back to the list, carrying any banner in the flash cookie.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, c *ui.Controller) {
	state := c.State()
	if state.Error != "" {
		slog.Warn("page action failed",
			"path", r.URL.Path,
			"error", state.Error,
			"request_id", middleware.GetReqID(r.Context()),
		)
		setFlash(w, state.Error)
	}
	http.Redirect(w, r, listURL(state.Filter, state.ShowStats), http.StatusSeeOther)
}

func formID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// formQuantity reads the quantity field. A missing field means the default;
// anything unparseable is sent as 0 so the API rejects it.
func formQuantity(r *http.Request) *int {
	raw := strings.TrimSpace(r.FormValue("quantity"))
	if raw == "" {
		return nil
	}
	q, err := strconv.Atoi(raw)
	if err != nil {
		q = 0
	}
	return &q
}

// ListPage handles GET /.
func (s *Server) ListPage(w http.ResponseWriter, r *http.Request) {
	flash := popFlash(w, r)
	c := s.load(r)

	if raw := r.URL.Query().Get("edit"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			c.StartEdit(id)
		}
	}

	state := c.State()
	banner := state.Error
	if banner == "" {
		banner = flash
	}

	s.Templates.Render(w, "list.html", &listPageData{
		PageData:   PageData{Title: "Shopping list", Error: banner},
		State:      state,
		Visible:    state.Visible(),
		Filters:    []model.Filter{model.FilterAll, model.FilterPending, model.FilterCompleted},
		Categories: model.Categories,
		ByCategory: categoryRows(state.Stats),
		Groups:     groupByCategory(state.Visible()),
	})
}

// ItemCreateSubmit handles POST /items.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	c := s.load(r)
	c.AddItem(r.Context(), model.CreateItemRequest{
		Name:     r.FormValue("name"),
		Quantity: formQuantity(r),
		Category: r.FormValue("category"),
	})
	s.finish(w, r, c)
}

// ItemUpdateSubmit handles POST /items/{id}.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	// Only fields present in the form are updated.
	var req model.UpdateItemRequest
	if _, ok := r.PostForm["name"]; ok {
		name := r.PostForm.Get("name")
		req.Name = &name
	}
	req.Quantity = formQuantity(r)
	if category := r.FormValue("category"); category != "" {
		req.Category = &category
	}

	c := s.load(r)
	c.StartEdit(id)
	c.UpdateItem(r.Context(), id, req)
	s.finish(w, r, c)
}

// ItemToggleSubmit handles POST /items/{id}/toggle.
func (s *Server) ItemToggleSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c := s.load(r)
	if !c.ToggleCompleted(r.Context(), id) {
		c.Dispatch(ui.ActionFailed{Message: ui.ErrUpdateItem})
	}
	s.finish(w, r, c)
}

// ItemDeleteSubmit handles POST /items/{id}/delete.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c := s.load(r)
	c.DeleteItem(r.Context(), id)
	s.finish(w, r, c)
}

// BulkSubmit handles POST /items/bulk. The action field is "delete" or
// "complete"; the checked rows arrive as repeated "ids" fields.
func (s *Server) BulkSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	c := s.load(r)
	for _, raw := range r.Form["ids"] {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			c.ToggleSelection(id)
		}
	}

	switch r.FormValue("action") {
	case "delete":
		c.BulkDelete(r.Context())
	case "complete":
		c.BulkMarkCompleted(r.Context())
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}
	s.finish(w, r, c)
}
