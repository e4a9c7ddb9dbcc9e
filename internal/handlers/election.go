package handlers

import (
	"net/http"

	"github.com/pemira-fti/backend/internal/middleware"
	"github.com/pemira-fti/backend/internal/service"
)

// ElectionHandler serves login, vote casting, and results.
type ElectionHandler struct {
	svc *service.ElectionService
}

// NewElectionHandler creates an election handler.
func NewElectionHandler(svc *service.ElectionService) *ElectionHandler {
	return &ElectionHandler{svc: svc}
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	NPM      string `json:"npm"`
	Password string `json:"password"`
}

// Login handles POST /login.
func (h *ElectionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.NPM == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "npm and password are required")
		return
	}

	session, err := h.svc.Login(r.Context(), req.NPM, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, session)
}

// VoteRequest is the body of POST /vote.
type VoteRequest struct {
	Candidate string `json:"candidate"`
}

// VoteResponse is returned on a successful cast. The ballot itself is not
// echoed back; only the fact that it was recorded.
type VoteResponse struct {
	Message string `json:"message"`
}

// Vote handles POST /vote. Requires a voter session; the NPM comes from the
// token, never from the body.
func (h *ElectionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Candidate == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate is required")
		return
	}

	if _, err := h.svc.Cast(r.Context(), middleware.GetNPM(r.Context()), req.Candidate); err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, VoteResponse{Message: "ballot recorded"})
}

// Results handles GET /results.
func (h *ElectionHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.Results(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, results)
}
