package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "eshoppers/internal/platform/net/http"
	"eshoppers/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Origins []string      // CORS origins, none allowed when empty
	Slow    time.Duration // access log warns from here on
	Timeout time.Duration // 30s when zero
}

// CommonStack is the middleware every versioned API route runs behind
// RequestID comes first so the access log and error envelopes carry it
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.Recover(phttp.WriteError),
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.Origins, AllowCredentials: len(o.Origins) > 0}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// Auth rejects unresolved callers with the standard error envelope
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.WriteError)
}

// Protected registers fn's routes behind Auth(p)
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(g Router) {
		g.Use(Auth(p))
		fn(g)
	})
}

// MountAPI scopes mount under /api/{version} behind mw
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+trimSlash(version), func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}

func trimSlash(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	return s
}
