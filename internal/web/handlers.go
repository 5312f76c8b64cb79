package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/innoverse/regsvc/internal/core"
	"github.com/innoverse/regsvc/internal/logging"
)

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// slotsResponse reports reserved-institution slot usage.
type slotsResponse struct {
	Success bool   `json:"success"`
	College string `json:"college"`
	Count   int    `json:"count"`
	Limit   int    `json:"limit"`
	Filled  bool   `json:"filled"`
}

// handleSlots serves GET /slots/{slug} for the configured reserved college.
func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if s.cfg.Event.ReservedCollege == "" || slug != s.cfg.Event.Slug() {
		s.respondError(w, r, fmt.Errorf("%w: no slot-limited college %q", core.ErrNotFound, slug))
		return
	}

	status, err := s.service.Slots(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, slotsResponse{
		Success: true,
		College: status.College,
		Count:   status.Count,
		Limit:   status.Limit,
		Filled:  status.Filled,
	})
}

// registerResponse wraps the stored registration.
type registerResponse struct {
	Success bool               `json:"success"`
	Data    *core.Registration `json:"data"`
}

// handleRegister serves POST /register. The body is capped because the
// payment screenshot travels inline as a data URL.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodySize)

	var in core.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Success: false,
				Error:   "Request body exceeds the upload limit",
				Code:    "REG006",
			})
			return
		}
		s.respondError(w, r, fmt.Errorf("%w: %v", core.ErrInvalidBody, err))
		return
	}

	reg, err := s.service.Register(r.Context(), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("registration admitted",
		"id", reg.ID,
		"team", reg.TeamName,
		"members", len(reg.Members),
	)

	writeJSON(w, http.StatusOK, registerResponse{Success: true, Data: reg})
}

// handlePaymentImage serves GET /payment-image/{id}: the stored screenshot
// decoded back to raw bytes with its original MIME type.
func (s *Server) handlePaymentImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	mime, data, err := s.service.PaymentImage(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.FromContext(r.Context()).Error("writing image response", "error", err)
	}
}

// handleExport serves GET /export/xls behind the admin-key middleware.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.ExportXLSX(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("export generated", "bytes", len(data))

	w.Header().Set("Content-Type", core.ExportContentType)
	w.Header().Set("Content-Disposition", `attachment; filename=`+s.cfg.Event.ExportFilename)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.FromContext(r.Context()).Error("writing export response", "error", err)
	}
}
