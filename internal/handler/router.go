package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taskdesk/taskdesk-go/internal/middleware"
	"github.com/taskdesk/taskdesk-go/internal/service"
)

// RouterConfig carries what NewRouter needs to wire the API.
type RouterConfig struct {
	Sessions    *service.SessionService
	Tasks       *service.TaskService
	Preferences *service.PreferenceService
	JWTSecret   string
	JWTExpiry   time.Duration
	// AuthRPS and AuthBurst limit signup and login per client IP.
	AuthRPS   float64
	AuthBurst int
}

// NewRouter builds the HTTP API.
func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.Sessions, cfg.JWTSecret, cfg.JWTExpiry)
	taskHandler := NewTaskHandler(cfg.Tasks, cfg.Preferences)
	prefHandler := NewPreferenceHandler(cfg.Preferences)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.AuthRPS, cfg.AuthBurst))
		r.Post("/api/v1/auth/signup", authHandler.HandleSignup)
		r.Post("/api/v1/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(cfg.JWTSecret, cfg.Sessions))
		r.Post("/api/v1/auth/logout", authHandler.HandleLogout)
		r.Get("/api/v1/auth/me", authHandler.HandleMe)
		r.Patch("/api/v1/profile", authHandler.HandleUpdateProfile)

		r.Get("/api/v1/tasks", taskHandler.HandleList)
		r.Post("/api/v1/tasks", taskHandler.HandleCreate)
		r.Get("/api/v1/tasks/{id}", taskHandler.HandleGet)
		r.Post("/api/v1/tasks/{id}/complete", taskHandler.HandleToggleComplete)
		r.Post("/api/v1/tasks/{id}/important", taskHandler.HandleToggleImportant)
		r.Delete("/api/v1/tasks/{id}", taskHandler.HandleDelete)

		r.Get("/api/v1/preferences", prefHandler.HandleGet)
		r.Put("/api/v1/preferences/theme", prefHandler.HandleSetTheme)
		r.Put("/api/v1/preferences/filter", prefHandler.HandleSetFilter)
	})

	return r
}
