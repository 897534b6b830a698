package http

import (
	"net/http"

	"github.com/hirepath/hirepath-server/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withCORS)

	router.Get("/", h.welcome)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users/register", h.register)
		r.Post("/api/users/login", h.login)
		r.Get("/api/auth/google", h.googleAuth)
		r.Get("/api/auth/google/callback", h.googleCallback)
	})

	// routes behind JWT authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/users/me", h.me)
		r.Put("/api/users/kpi-settings", h.updateKPISettings)
		r.Get("/api/users/stats", h.stats)

		r.Post("/api/applications", h.createApplication)
		r.Get("/api/applications", h.listApplications)
		r.Post("/api/applications/extension", h.ingestCapture)
		r.Get("/api/applications/{id}", h.getApplication)
		r.Put("/api/applications/{id}", h.updateApplication)
		r.Delete("/api/applications/{id}", h.deleteApplication)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) welcome(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"message": "Welcome to the HirePath API"}, http.StatusOK)
}
