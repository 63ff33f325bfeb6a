package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
	SetUserRole(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Test(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health  HealthHandler
	Account AccountHandler

	AuthMW  func(http.Handler) http.Handler
	AdminMW func(http.Handler) http.Handler

	// Optional per-route throttles; pass-through when nil.
	RegisterLimitMW func(http.Handler) http.Handler
	LoginLimitMW    func(http.Handler) http.Handler

	// Optional global middleware (request id, CORS). Applied in order.
	Global []func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Account == nil {
		return nil, fmt.Errorf("nil Account handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.AdminMW == nil {
		return nil, fmt.Errorf("nil Admin middleware")
	}

	passthrough := func(next http.Handler) http.Handler { return next }
	if deps.RegisterLimitMW == nil {
		deps.RegisterLimitMW = passthrough
	}
	if deps.LoginLimitMW == nil {
		deps.LoginLimitMW = passthrough
	}

	r := chi.NewRouter()
	for _, mw := range deps.Global {
		r.Use(mw)
	}

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)

	r.Route("/api", func(r chi.Router) {
		// --- Public ---
		r.With(deps.RegisterLimitMW).Post("/register", deps.Account.Register)
		r.With(deps.LoginLimitMW).Post("/login", deps.Account.Login)
		r.Get("/stats", deps.Account.Stats)
		r.Get("/test", deps.Account.Test)

		// --- Authenticated ---
		r.Route("/users", func(r chi.Router) {
			r.Use(deps.AuthMW)

			r.With(deps.AdminMW).Get("/", deps.Account.ListUsers)
			r.Put("/{id}", deps.Account.UpdateUser)
			r.Delete("/{id}", deps.Account.DeleteUser)
			r.With(deps.AdminMW).Post("/{id}/role", deps.Account.SetUserRole)
		})
	})

	return r, nil
}
