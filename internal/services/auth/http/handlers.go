// Package http provides http transport for login and logout
package http

import (
	stdhttp "net/http"

	"eshoppers/internal/modkit/httpkit"
	"eshoppers/internal/platform/net/http/bind"
	"eshoppers/internal/platform/net/middleware"
	"eshoppers/internal/security"
	"eshoppers/internal/services/auth/domain"
	svc "eshoppers/internal/services/auth/service"
)

// Register mounts login, logout and me
// the session cookie is set and cleared here, the service only deals in tokens
func Register(r httpkit.Router, s svc.Service, sessions *security.Sessions, port middleware.AuthPort) {
	h := &handlers{svc: s, sessions: sessions}
	r.Post("/login", httpkit.Handle(h.login))
	r.Post("/logout", httpkit.Handle(h.logout))
	httpkit.Protected(r, port, func(pr httpkit.Router) {
		httpkit.Get(pr, "/me", h.me)
	})
}

type handlers struct {
	svc      svc.Service
	sessions *security.Sessions
}

// POST /auth/login, log in and receive the session cookie
func (h *handlers) login(r *stdhttp.Request) httpkit.Response {
	in, err := bind.ParseJSON[domain.LoginInput](r)
	if err != nil {
		return httpkit.Error(err)
	}
	res, err := h.svc.Login(r.Context(), in)
	if err != nil {
		return httpkit.Error(err)
	}
	resp := httpkit.OK(res)
	resp.Header = stdhttp.Header{}
	resp.Header.Add("Set-Cookie", h.sessions.Cookie(security.Session{
		Token:   res.Token,
		User:    res.User,
		Expires: res.Expires,
	}).String())
	return resp
}

// POST /auth/logout, log out and clear the session cookie
func (h *handlers) logout(r *stdhttp.Request) httpkit.Response {
	h.svc.Logout(r.Context(), security.Token(r))
	resp := httpkit.NoContent()
	resp.Header = stdhttp.Header{}
	resp.Header.Add("Set-Cookie", h.sessions.ClearCookie().String())
	return resp
}

// GET /auth/me, who is logged in
func (h *handlers) me(r *stdhttp.Request) (any, error) {
	u, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return domain.Me{User: u}, nil
}
