package web

// errors.go turns core errors into HTTP responses. The technical error is
// logged server-side with the request id; the client gets the mapped
// user message and machine-readable code, never internal detail.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/innoverse/regsvc/internal/core"
	"github.com/innoverse/regsvc/internal/logging"
)

// ErrorResponse is the JSON body for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// statusFor maps core sentinels to HTTP status codes. Anything unrecognized
// is a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidBody),
		errors.Is(err, core.ErrMissingFields),
		errors.Is(err, core.ErrInvalidAffiliationSpelling),
		errors.Is(err, core.ErrInvalidImageData),
		errors.Is(err, core.ErrInvalidImageMime):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTeamExists),
		errors.Is(err, core.ErrSlotsFilled):
		return http.StatusConflict
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response and logs the underlying cause.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", userMsg.Code,
		"error", err.Error(),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
	} else {
		logger.Warn("request rejected", attrs...)
	}

	writeJSON(w, status, ErrorResponse{
		Success: false,
		Error:   userMsg.Message,
		Code:    userMsg.Code,
	})
}

// writeJSON encodes v and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}
