package middleware

import (
	"net/http"
	"runtime/debug"

	perr "eshoppers/internal/platform/errors"
	"eshoppers/internal/platform/logger"
)

// ErrorWriter answers a request with err
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Recover turns a panic into a logged stack and a 500 written by fail
// http.ErrAbortHandler is re-raised so net/http can drop the connection
func Recover(fail ErrorWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger.C(r.Context()).Error().
					Interface("panic", v).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				fail(w, r, perr.PanicErrf("internal error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
