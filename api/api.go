// Package api exposes the portal's REST surface: the two-step login flow
// and the administrator directory operations.
package api

import (
	_ "embed"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"

	"github.com/docsgate/docsgate/auth"
	"github.com/docsgate/docsgate/directory"
	"github.com/docsgate/docsgate/storage"
)

// API holds the dependencies needed by the REST handlers.
type API struct {
	auth    *auth.Service
	dir     *directory.Service
	codec   *auth.TokenCodec
	users   *storage.Collection[*directory.User]
	otps    *storage.Collection[*auth.OTP]
	backend string
	audit   *auditLogger
}

//go:embed openapi.yaml
var openapiSpec []byte

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger for audit events.
// If not set, a default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.audit = newAuditLogger(logger)
	}
}

// New creates a new API instance. The raw collections back the diagnostic
// database dump; backend names the configured storage strategy.
func New(authSvc *auth.Service, dir *directory.Service, users *storage.Collection[*directory.User], otps *storage.Collection[*auth.OTP], backend string, opts ...Option) *API {
	a := &API{
		auth:    authSvc,
		dir:     dir,
		codec:   authSvc.Codec(),
		users:   users,
		otps:    otps,
		backend: backend,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.audit == nil {
		a.audit = newAuditLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}
	return a
}

// Router returns a chi.Router with all API routes mounted. The session is
// resolved once per request; handlers read the caller identity from the
// request context.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(a.ResolveSession)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})

	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/api/v1/openapi.yaml",
		Path:    "api/v1/docs",
	}, nil))

	r.Post("/auth/login", a.Login)
	r.Post("/auth/verify", a.Verify)
	r.Post("/auth/logout", a.Logout)
	r.With(a.RequireAuth).Get("/auth/whoami", a.Whoami)

	r.Route("/admin", func(r chi.Router) {
		r.Use(a.RequireAdmin)
		r.Get("/users", a.ListUsers)
		r.Post("/users", a.CreateUser)
		r.Patch("/users/{userID}", a.SetUserActive)
		r.Delete("/users/{userID}", a.DeleteUser)
		r.Get("/database", a.DatabaseDump)
	})

	return r
}

func (a *API) sessionTTL() time.Duration {
	return a.codec.TTL()
}
