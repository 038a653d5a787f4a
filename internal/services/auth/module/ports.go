package module

import (
	"context"

	"eshoppers/internal/security"
	authdom "eshoppers/internal/services/auth/domain"
	authsvc "eshoppers/internal/services/auth/service"
)

// Ports holds the ports exposed by the auth module
type Ports struct {
	Auth     authdom.ServicePort
	Sessions *security.Sessions
}

// adaptAuthPort adapts the auth service to the domain port interface
type adaptAuthPort struct{ svc authsvc.Service }

// Login implements the domain ServicePort interface
func (a adaptAuthPort) Login(ctx context.Context, in authdom.LoginInput) (authdom.LoginResult, error) {
	return a.svc.Login(ctx, in)
}

// Logout implements the domain ServicePort interface
func (a adaptAuthPort) Logout(ctx context.Context, token string) { a.svc.Logout(ctx, token) }

// Resolve implements the domain ServicePort interface
func (a adaptAuthPort) Resolve(token string) (string, error) { return a.svc.Resolve(token) }
