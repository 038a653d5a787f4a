package httpkit

import (
	"net/http"
	"strings"

	perr "eshoppers/internal/platform/errors"
)

// TokenFunc resolves a session token to its user
type TokenFunc func(token string) (userID string, err error)

// Port is a middleware.AuthPort over a session cookie with a bearer header fallback
type Port struct {
	cookie  string
	resolve TokenFunc
}

// NewPortFunc reads the named cookie, "" for bearer only, and resolves tokens with fn
func NewPortFunc(cookie string, fn TokenFunc) *Port {
	return &Port{cookie: cookie, resolve: fn}
}

// Parse returns the caller and the token that proved it
func (p *Port) Parse(r *http.Request) (string, string, error) {
	tok := p.token(r)
	if tok == "" {
		return "", "", perr.Unauthorizedf("missing session")
	}
	if p.resolve == nil {
		return "", "", perr.Unauthorizedf("invalid session")
	}
	uid, err := p.resolve(tok)
	if err != nil || uid == "" {
		return "", "", perr.Unauthorizedf("invalid session")
	}
	return uid, tok, nil
}

func (p *Port) token(r *http.Request) string {
	if p.cookie != "" {
		if c, err := r.Cookie(p.cookie); err == nil {
			if v := strings.TrimSpace(c.Value); v != "" {
				return v
			}
		}
	}
	scheme, tok, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}
