package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/erazemk/shoplist/internal/model"
	"github.com/erazemk/shoplist/internal/service"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonSuccess writes a successful envelope.
func jsonSuccess(w http.ResponseWriter, status int, data any, message string) {
	resp := model.NewSuccessResponse(data)
	resp.Message = message
	jsonResponse(w, status, resp)
}

// jsonError writes a failed envelope.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, model.NewErrorResponse(message))
}

// statusFor maps a service failure kind to an HTTP status.
func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindInvalidInput:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// serviceError writes the envelope for an error returned by the item service.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := service.KindOf(err)
	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"kind", kind.String(),
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}
	jsonError(w, status, service.MessageOf(err))
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
