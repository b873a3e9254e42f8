// Package server provides the catalog HTTP server.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"git.cscs.ch/openchami/chamicore-catalog/internal/audit"
	"git.cscs.ch/openchami/chamicore-catalog/internal/config"
	"git.cscs.ch/openchami/chamicore-catalog/internal/metrics"
	"git.cscs.ch/openchami/chamicore-catalog/internal/store"
	"git.cscs.ch/openchami/chamicore-catalog/internal/web"
)

const (
	serviceName = "chamicore-catalog"
	apiPrefix   = "/api"
	apiVersion  = "catalog/v1"
)

// Server wraps HTTP routes and dependencies.
type Server struct {
	catalog     *store.Catalog
	cfg         config.Config
	version     string
	commit      string
	buildDate   string
	openapiSpec []byte
	audit       *audit.Logger
	web         *web.Handler
	router      chi.Router
}

// Option configures server construction.
type Option func(*Server)

// WithOpenAPISpec sets the embedded OpenAPI bytes.
func WithOpenAPISpec(spec []byte) Option {
	return func(s *Server) {
		s.openapiSpec = spec
	}
}

// WithAuditLogger records every mutation through l.
func WithAuditLogger(l *audit.Logger) Option {
	return func(s *Server) {
		s.audit = l
	}
}

// WithWeb mounts the HTML presentation endpoints.
func WithWeb(h *web.Handler) Option {
	return func(s *Server) {
		s.web = h
	}
}

// New constructs a catalog API server. Only the services enabled in cfg are
// mounted.
func New(cat *store.Catalog, cfg config.Config, version, commit, buildDate string, opts ...Option) *Server {
	s := &Server{
		catalog:   cat,
		cfg:       cfg,
		version:   version,
		commit:    commit,
		buildDate: buildDate,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(requestIDField)
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.Recoverer)
	r.Use(secureHeaders)
	if s.cfg.MetricsEnabled {
		metrics.Register()
		r.Use(metrics.Middleware)
	}
	r.Use(middleware.SetHeader("X-API-Version", apiVersion))
	r.Use(middleware.NoCache)
	if s.cfg.BodyLimit > 0 {
		r.Use(middleware.RequestSize(s.cfg.BodyLimit))
	}

	r.Group(func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/readiness", s.handleReadiness)
		r.Get("/version", s.handleVersion)
		if s.cfg.MetricsEnabled {
			r.Method(http.MethodGet, "/metrics", metrics.Handler())
		}
		if s.web != nil {
			s.web.RegisterRoutes(r)
		}
	})

	r.Route(apiPrefix, func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Get("/openapi.yaml", s.handleOpenAPI)

		mounts := map[string]func(chi.Router){
			store.ResourceBooks:    s.mountBooks,
			store.ResourceStudents: s.mountStudents,
			store.ResourceMenu:     s.mountMenu,
			store.ResourceProducts: s.mountProducts,
			store.ResourceTasks:    s.mountTasks,
			store.ResourceUsers:    s.mountUsers,
		}
		for _, name := range store.Resources {
			if s.cfg.Enabled(name) {
				mounts[name](r)
			}
		}
	})

	return r
}

// ---------------------------------------------------------------------------
// Middleware
// ---------------------------------------------------------------------------

// requestIDField adds the chi request ID to the request-scoped logger.
func requestIDField(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("request_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request completed")
}

// secureHeaders sets the standard hardening headers on every response.
func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// ---------------------------------------------------------------------------
// Infrastructure handlers
// ---------------------------------------------------------------------------

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadiness reports ready once every enabled store exists.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		respondJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{
		"service":   serviceName,
		"version":   s.version,
		"commit":    s.commit,
		"buildDate": s.buildDate,
	})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	if len(s.openapiSpec) == 0 {
		respondEmpty(w, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(s.openapiSpec)
}
