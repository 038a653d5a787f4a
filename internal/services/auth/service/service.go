// Package service contains login workflows
package service

import (
	"context"

	"eshoppers/internal/platform/logger"
	"eshoppers/internal/security"
	"eshoppers/internal/services/auth/domain"
)

// Service defines the service contract for auth
type Service interface{ domain.ServicePort }

// Svc implements the Service interface over a session table and the shop account
type Svc struct {
	creds    security.Credentials
	sessions *security.Sessions
}

// New creates a new auth service
func New(creds security.Credentials, sessions *security.Sessions) *Svc {
	if sessions == nil {
		panic("auth.Service requires a non nil session table")
	}
	return &Svc{creds: creds, sessions: sessions}
}

// Login checks the credentials and issues a session
func (s *Svc) Login(ctx context.Context, in domain.LoginInput) (domain.LoginResult, error) {
	if err := s.creds.Check(in.User, in.Password); err != nil {
		logger.C(ctx).Warn().Str("user", in.User).Msg("login rejected")
		return domain.LoginResult{}, err
	}
	ss, err := s.sessions.Issue(in.User)
	if err != nil {
		return domain.LoginResult{}, err
	}
	return domain.LoginResult{User: ss.User, Token: ss.Token, Expires: ss.Expires}, nil
}

// Logout ends the session behind token
func (s *Svc) Logout(_ context.Context, token string) {
	if token != "" {
		s.sessions.Revoke(token)
	}
}

// Resolve returns the user behind a live token
func (s *Svc) Resolve(token string) (string, error) { return s.sessions.Resolve(token) }
