// Package net carries request scoped identity on the context
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey uint8

const (
	keySessionID ctxKey = iota + 1
	keyUserID
)

// WithRequestID stores id where chi's RequestID middleware would
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, id)
}

// WithCaller stores the resolved user and the session token that proved it
// empty values are not stored
func WithCaller(ctx context.Context, userID, sessionID string) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	if sessionID != "" {
		ctx = context.WithValue(ctx, keySessionID, sessionID)
	}
	return ctx
}

// RequestID is the id chi assigned or the caller sent, "" when absent
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// SessionID is the caller's session token, "" for anonymous requests
func SessionID(ctx context.Context) string {
	s, _ := ctx.Value(keySessionID).(string)
	return s
}

// UserID is the caller's login, "" for anonymous requests
func UserID(ctx context.Context) string {
	s, _ := ctx.Value(keyUserID).(string)
	return s
}
