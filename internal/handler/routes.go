package handler

import (
	"net/http"

	"github.com/anoodleReza/application-tracker/internal/metrics"
	"github.com/anoodleReza/application-tracker/internal/middleware"
	"github.com/gorilla/mux"
)

// RouterConfig controls the page guard in front of the router.
type RouterConfig struct {
	LoginPath         string
	ProtectedPrefixes []string
}

// NewRouter wires every route. The returned handler applies the route guard
// before routing so guarded prefixes redirect even when no route matches.
func NewRouter(h *Handler, m *metrics.Metrics, cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(m.Middleware, middleware.RequestLogger(h.log))

	requireAuth := middleware.AuthMiddleware(h.resolver, m, h.log)

	// Public routes
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify", h.Verify).Methods(http.MethodGet)

	// Protected routes
	r.Handle("/auth/me", requireAuth(http.HandlerFunc(h.Me))).Methods(http.MethodGet)

	apps := r.PathPrefix("/applications").Subrouter()
	apps.Use(requireAuth)
	apps.HandleFunc("", h.ListApplications).Methods(http.MethodGet)
	apps.HandleFunc("", h.CreateApplication).Methods(http.MethodPost)
	apps.HandleFunc("/export", h.ExportApplications).Methods(http.MethodGet)
	apps.HandleFunc("/{id}", h.GetApplication).Methods(http.MethodGet)
	apps.HandleFunc("/{id}", h.UpdateApplication).Methods(http.MethodPut)
	apps.HandleFunc("/{id}", h.DeleteApplication).Methods(http.MethodDelete)

	interviews := r.PathPrefix("/interviews").Subrouter()
	interviews.Use(requireAuth)
	interviews.HandleFunc("", h.CreateInterview).Methods(http.MethodPost)
	interviews.HandleFunc("/{id}", h.GetInterview).Methods(http.MethodGet)
	interviews.HandleFunc("/{id}", h.UpdateInterview).Methods(http.MethodPut)
	interviews.HandleFunc("/{id}", h.DeleteInterview).Methods(http.MethodDelete)

	dashboard := r.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(requireAuth)
	dashboard.HandleFunc("/stats", h.DashboardStats).Methods(http.MethodGet)

	return middleware.RouteGuard(cfg.ProtectedPrefixes, cfg.LoginPath)(r)
}
