// Package server assembles the zlangd HTTP server: a thin REST front end
// over internal/analysis, backed by the api, ops, and dao packages.
//
//	POST   /v1/login        - authenticate the operator account, returns a JWT
//	POST   /v1/analyze      - run the analyzer against the request body
//	GET    /v1/runs         - list previously persisted runs
//	GET    /v1/runs/{id}    - get a single previously persisted run
//	GET    /v1/info         - version and auth-status info
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zlang-project/zsema/server/api"
	"github.com/zlang-project/zsema/server/middle"
	"github.com/zlang-project/zsema/server/ops"
)

// Config holds the parameters needed to assemble a zlangd server.
type Config struct {
	Backend     ops.Service
	Secret      []byte
	UnauthDelay time.Duration
}

// New builds the chi router that cmd/zlangd serves.
func New(cfg Config) http.Handler {
	a := api.API{
		Backend:     cfg.Backend,
		UnauthDelay: cfg.UnauthDelay,
		Secret:      cfg.Secret,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middle.DontPanic())

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.Post("/login", a.HTTPLogin())

		r.Group(func(r chi.Router) {
			r.Use(middle.RequireAuth(cfg.Secret, cfg.UnauthDelay))
			r.Get("/info", a.HTTPGetInfo())
			r.Post("/analyze", a.HTTPAnalyze())
			r.Get("/runs", a.HTTPListRuns())
			r.Get("/runs/{id}", a.HTTPGetRun())
		})
	})

	return r
}
