package middleware

import (
	"net/http"
	"strings"
)

// SecurityContext reports whether a request belongs to a logged in user
type SecurityContext interface {
	IsAuthenticated(r *http.Request) bool
}

// DefaultLoginPath is where unauthenticated requests are sent
const DefaultLoginPath = "/login"

// PublicMarkers are the path fragments reachable without a login
var PublicMarkers = []string{".css", ".js", ".jpg", "home", "login", "signup"}

// LoginGateOptions configures LoginGate
type LoginGateOptions struct {
	// LoginPath is the redirect target, DefaultLoginPath when empty
	LoginPath string
	// Allow adds path fragments to PublicMarkers
	Allow []string
}

// LoginGate lets a request through when its path is exactly "/", contains a public
// marker, or sc authenticates it. Everything else gets a 302 to the login page
// a nil sc authenticates nobody
func LoginGate(sc SecurityContext, opts LoginGateOptions) func(http.Handler) http.Handler {
	target := opts.LoginPath
	if target == "" {
		target = DefaultLoginPath
	}
	markers := append(append([]string(nil), PublicMarkers...), opts.Allow...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public(r.URL.Path, markers) || (sc != nil && sc.IsAuthenticated(r)) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Location", target)
			w.WriteHeader(http.StatusFound)
		})
	}
}

func public(path string, markers []string) bool {
	if path == "/" {
		return true
	}
	for _, m := range markers {
		if m != "" && strings.Contains(path, m) {
			return true
		}
	}
	return false
}
