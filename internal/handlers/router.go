package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pemira-fti/backend/internal/auth"
	"github.com/pemira-fti/backend/internal/middleware"
	"github.com/pemira-fti/backend/internal/service"
)

// NewRouter wires the handlers into a ServeMux with logging, metrics, and
// auth middleware.
func NewRouter(
	registration *service.RegistrationService,
	election *service.ElectionService,
	admin *service.AdminService,
	tokens *auth.JWTManager,
) *http.ServeMux {
	mux := http.NewServeMux()

	registrationHandler := NewRegistrationHandler(registration)
	electionHandler := NewElectionHandler(election)
	adminHandler := NewAdminHandler(admin)

	wrap := func(route string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithMetrics(route, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public operations
	mux.HandleFunc("POST /register", wrap("/register", registrationHandler.Register))
	mux.HandleFunc("POST /login", wrap("/login", electionHandler.Login))

	// Authenticated operations
	mux.HandleFunc("POST /vote", wrap("/vote",
		middleware.RequireAuth(tokens, auth.RoleVoter, electionHandler.Vote)))
	mux.HandleFunc("GET /results", wrap("/results",
		middleware.RequireAuth(tokens, "", electionHandler.Results)))

	// Admin dashboard
	mux.HandleFunc("GET /admin/voters", wrap("/admin/voters",
		middleware.RequireAuth(tokens, auth.RoleAdmin, adminHandler.Voters)))
	mux.HandleFunc("GET /admin/logs", wrap("/admin/logs",
		middleware.RequireAuth(tokens, auth.RoleAdmin, adminHandler.Logs)))
	mux.HandleFunc("GET /admin/summary", wrap("/admin/summary",
		middleware.RequireAuth(tokens, auth.RoleAdmin, adminHandler.Summary)))

	return mux
}
