package security

import (
	"crypto/subtle"
	"strings"

	perr "eshoppers/internal/platform/errors"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single configured shop account
type Credentials struct {
	user string
	hash []byte
}

// NewCredentials builds credentials from a user name and a bcrypt hash
func NewCredentials(user, hash string) (Credentials, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return Credentials{}, perr.InvalidArgf("login user is required")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return Credentials{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "login hash is not a bcrypt hash")
	}
	return Credentials{user: user, hash: []byte(hash)}, nil
}

// HashPassword returns the bcrypt hash of pw at the default cost
func HashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeInvalidArgument, "hash password")
	}
	return string(h), nil
}

// Check verifies user and pw, every mismatch reads the same to the caller
func (c Credentials) Check(user, pw string) error {
	if len(c.hash) == 0 {
		return perr.Unauthorizedf("invalid credentials")
	}
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(user)), []byte(c.user)) == 1
	pwErr := bcrypt.CompareHashAndPassword(c.hash, []byte(pw))
	if !userOK || pwErr != nil {
		return perr.Unauthorizedf("invalid credentials")
	}
	return nil
}

// User returns the configured user name
func (c Credentials) User() string { return c.user }
