package web

import (
	"net/http"

	"github.com/erazemk/shoplist/internal/ui"
	webembed "github.com/erazemk/shoplist/web"
)

// NewRouter creates the web page router. Pages talk to the API through api.
func NewRouter(api ui.Facade) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		API:       api,
		Templates: templates,
	}

	mux := http.NewServeMux()

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	mux.Handle("GET /{$}", NoStoreMiddleware(http.HandlerFunc(s.ListPage)))
	mux.HandleFunc("POST /items", s.ItemCreateSubmit)
	mux.HandleFunc("POST /items/bulk", s.BulkSubmit)
	mux.HandleFunc("POST /items/{id}", s.ItemUpdateSubmit)
	mux.HandleFunc("POST /items/{id}/toggle", s.ItemToggleSubmit)
	mux.HandleFunc("POST /items/{id}/delete", s.ItemDeleteSubmit)

	return mux, nil
}
