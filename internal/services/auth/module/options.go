package module

import (
	"time"

	"eshoppers/internal/platform/config"
	"eshoppers/internal/security"
)

// Options controls the shop account and its sessions
type Options struct {
	TTL          time.Duration
	User         string
	Hash         string
	SecureCookie bool
}

// FromConfig reads with AUTH_ prefix, LOGIN_HASH holds a bcrypt hash
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("AUTH_")
	return Options{
		TTL:          c.MayDuration("SESSION_TTL", security.DefaultTTL),
		User:         c.MayString("LOGIN_USER", "admin"),
		Hash:         c.MayString("LOGIN_HASH", ""),
		SecureCookie: c.MayBool("SECURE_COOKIE", false),
	}
}
