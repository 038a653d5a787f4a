// Package middleware holds the shop's http middleware, chi's where it has one
package middleware

import (
	"net/http"
	"time"

	"github.com/samber/lo"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the net/http decorator shape
type Middleware = func(http.Handler) http.Handler

// RequestID takes X-Request-Id from the caller or mints one
func RequestID() Middleware { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP for RemoteAddr
func RealIP() Middleware { return chimw.RealIP }

// NoCache marks every answer uncacheable
func NoCache() Middleware { return chimw.NoCache }

// StripSlashes routes /products/ as /products
func StripSlashes() Middleware { return chimw.StripSlashes }

// Timeout cancels the request context after d and answers 504 if nothing was written
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// Heartbeat answers GET path with a bare 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// Compress gzips or deflates text and json answers at level
func Compress(level int) Middleware { return chimw.Compress(level) }

// CORSOptions is the part of go-chi/cors the shop configures
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	corsMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"}
)

// CORS applies o, unset method and header lists fall back to what the API uses
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   lo.Ternary(len(o.AllowedMethods) > 0, o.AllowedMethods, corsMethods),
		AllowedHeaders:   lo.Ternary(len(o.AllowedHeaders) > 0, o.AllowedHeaders, corsHeaders),
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
