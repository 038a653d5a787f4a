// Package domain holds login DTOs and the auth service contract
package domain

import (
	"context"
	"time"
)

// LoginInput is the login form
type LoginInput struct {
	User     string `json:"user" validate:"notblank,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginResult describes an issued session
type LoginResult struct {
	User    string    `json:"user"`
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Me describes the caller of a request
type Me struct {
	User string `json:"user"`
}

// ServicePort defines the auth service contract
type ServicePort interface {
	Login(ctx context.Context, in LoginInput) (LoginResult, error)
	Logout(ctx context.Context, token string)
	Resolve(token string) (string, error)
}
