// Package security holds the shop's session based security context
package security

import "net/http"

// CookieName is the cookie carrying the session token
const CookieName = "ESHOP_SESSION"

// SecurityContext reports whether a request belongs to a logged in user
type SecurityContext interface {
	IsAuthenticated(r *http.Request) bool
}

// Anonymous is a SecurityContext that never authenticates anyone
type Anonymous struct{}

// IsAuthenticated implements SecurityContext
func (Anonymous) IsAuthenticated(*http.Request) bool { return false }

var (
	_ SecurityContext = Anonymous{}
	_ SecurityContext = (*Sessions)(nil)
)
