// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"eshoppers/internal/core/version"
	"eshoppers/internal/modkit/httpkit"
	"eshoppers/internal/platform/store"
	"eshoppers/internal/platform/store/schema"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// DB is the primary backend, nil skips the readiness check
	DB store.TxRunner
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	// mount routes
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/backend", h.backend)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok fail skipped unknown
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

// BackendResponse reports the sql backend the shop runs on
type BackendResponse struct {
	Dialect string            `json:"dialect"`
	Tables  []string          `json:"tables"`
	Build   version.BuildInfo `json:"build"`
}

// GET /meta/health, health check
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// GET /meta/ready, readiness probe with dependency checks
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	db := ReadyCheck{Name: "db", Status: "skipped"}
	if h.deps.DB != nil {
		db.Name = store.DialectOf(h.deps.DB).Name()
		db.Status = "unknown"
		if p, ok := h.deps.DB.(store.Pinger); ok {
			db.Status = "ok"
			if err := p.Ping(ctx); err != nil {
				db.Status, db.Error = "fail", err.Error()
			}
		}
	}

	overall := "ok"
	switch db.Status {
	case "fail":
		overall = "fail"
	case "ok":
	default:
		overall = "degraded"
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{db},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// GET /meta/version, build and version info
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// GET /meta/service, service info and uptime
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// GET /meta/backend, the SQL backend and the tables it serves
func (h *handlers) backend(_ *http.Request) (any, error) {
	out := BackendResponse{Dialect: "none", Tables: []string{}, Build: version.Info()}
	if h.deps.DB != nil {
		out.Dialect = store.DialectOf(h.deps.DB).Name()
		out.Tables = schema.Tables
	}
	return out, nil
}
