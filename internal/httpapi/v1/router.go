// Package v1 wires the HTTP surface of the trial-balance service.
// It keeps handlers thin, delegating report building to the balance service.
package v1

import (
	"log/slog"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/secure"

	"github.com/tinoosan/trialbalance/internal/service/balance"
)

// Options tunes optional middleware. The zero value disables auth and export
// rate limiting.
type Options struct {
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	// ExportRatePerMinute caps CSV/HTML renders per client IP; 0 means unlimited.
	ExportRatePerMinute int
}

// Server wires handlers and middleware using Chi.
type Server struct {
	svc         balance.Service
	src         balance.Source
	validate    *validator.Validate
	exportLimit func(http.Handler) http.Handler
	opts        Options
	log         *slog.Logger
	rt          *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by basic request/response logging and panic recovery.
func New(src balance.Source, logger *slog.Logger, opts Options) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)
	r.Use(secureHeaders(logger))

	s := &Server{
		svc:      balance.New(src, logger),
		src:      src,
		validate: validator.New(),
		opts:     opts,
		rt:       r,
		log:      logger,
	}
	if opts.ExportRatePerMinute > 0 {
		s.exportLimit = httprate.Limit(opts.ExportRatePerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	// Health and metrics (unversioned, unauthenticated)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Handle("/metrics", metricsHandler())

	s.rt.Group(func(r chi.Router) {
		if auth := authJWT(s.opts); auth != nil {
			r.Use(auth)
		}
		r.Get("/v1/accounts", s.listAccounts)
		r.With(s.validateBalance(), s.limitExports).Get("/v1/balance", s.getBalance)
	})
}

func secureHeaders(l *slog.Logger) func(http.Handler) http.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
	})
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sm.Process(w, r); err != nil {
				l.Warn("secure headers blocked request", "req_id", chimw.GetReqID(r.Context()), "err", err)
				writeErr(w, http.StatusBadRequest, "blocked", "blocked")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
