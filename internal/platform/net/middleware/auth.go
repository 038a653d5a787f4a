package middleware

import (
	"net/http"

	"eshoppers/internal/platform/logger"
	pnet "eshoppers/internal/platform/net"
)

// AuthPort resolves the caller of a request
type AuthPort interface {
	// Parse returns the user id and the session token, or an error for anonymous requests
	Parse(r *http.Request) (userID string, sessionID string, err error)
}

// Auth answers unresolved requests with fail and puts the caller on the context otherwise
// a nil port lets everything through
func Auth(p AuthPort, fail ErrorWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, sid, err := p.Parse(r)
			if err != nil {
				fail(w, r, err)
				return
			}
			ctx := pnet.WithCaller(r.Context(), uid, sid)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
