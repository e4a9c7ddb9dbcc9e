package handlers

import (
	"net/http"
	"strconv"

	"github.com/pemira-fti/backend/internal/middleware"
	"github.com/pemira-fti/backend/internal/service"
)

// AdminHandler serves the admin dashboard endpoints. Role enforcement
// happens in the auth middleware; these handlers assume an admin session.
type AdminHandler struct {
	svc *service.AdminService
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Voters handles GET /admin/voters.
func (h *AdminHandler) Voters(w http.ResponseWriter, r *http.Request) {
	voters, err := h.svc.Voters(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, voters)
}

// Logs handles GET /admin/logs?limit=N (default 20).
func (h *AdminHandler) Logs(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.svc.Logs(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, entries)
}

// Summary handles GET /admin/summary.
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, summary)
}
