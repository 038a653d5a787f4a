// Package module mounts login, logout and me under /auth and owns the session table
package module

import (
	modkit "eshoppers/internal/modkit"
	"eshoppers/internal/modkit/httpkit"
	"eshoppers/internal/security"
	authhttp "eshoppers/internal/services/auth/http"
	authsvc "eshoppers/internal/services/auth/service"
)

// Module exposes Ports to the rest of the API
type Module struct {
	modkit.Base
	svc      authsvc.Service
	sessions *security.Sessions
}

// New reads the account and the session ttl from deps.Cfg
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWithOptions(deps, FromConfig(deps.Cfg), opts...)
}

// NewWithOptions is New with the account spelled out
func NewWithOptions(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	creds, err := security.NewCredentials(o.User, o.Hash)
	if err != nil {
		// logins fail, existing sessions still resolve
		deps.Named("auth").Warn().Err(err).Msg("login account not configured")
	}
	m := &Module{sessions: security.NewSessions(o.TTL, security.WithSecureCookie(o.SecureCookie))}
	m.svc = authsvc.New(creds, m.sessions)

	port := httpkit.NewPortFunc(security.CookieName, m.svc.Resolve)
	m.Base = modkit.NewBase("auth", "/auth", func(r httpkit.Router) {
		authhttp.Register(r, m.svc, m.sessions, port)
	}, Ports{Auth: adaptAuthPort{svc: m.svc}, Sessions: m.sessions}, opts...)
	return m
}
