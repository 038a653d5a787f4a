package security

import (
	"net/http"
	"strings"
	"sync"
	"time"

	perr "eshoppers/internal/platform/errors"
	"eshoppers/internal/platform/logger"

	"github.com/google/uuid"
)

// DefaultTTL is used when a session table is built without a ttl
const DefaultTTL = 12 * time.Hour

// Session is one issued login
type Session struct {
	Token   string
	User    string
	Expires time.Time
}

// Sessions is an in memory session table keyed by random tokens
// safe for concurrent use
type Sessions struct {
	mu     sync.Mutex
	ttl    time.Duration
	secure bool
	now    func() time.Time
	newID  func() string
	byTok  map[string]Session
	log    logger.Logger
}

// SessionOption tweaks a session table
type SessionOption func(*Sessions)

// WithSecureCookie marks issued cookies Secure
func WithSecureCookie(on bool) SessionOption { return func(s *Sessions) { s.secure = on } }

// WithClock replaces the clock used for expiry
func WithClock(now func() time.Time) SessionOption { return func(s *Sessions) { s.now = now } }

// NewSessions builds an empty session table, ttl <= 0 means DefaultTTL
func NewSessions(ttl time.Duration, opts ...SessionOption) *Sessions {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Sessions{
		ttl:   ttl,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
		byTok: map[string]Session{},
		log:   *logger.Named("security"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Issue starts a session for user
func (s *Sessions) Issue(user string) (Session, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return Session{}, perr.InvalidArgf("user is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ss := Session{Token: s.newID(), User: user, Expires: s.now().Add(s.ttl)}
	s.byTok[ss.Token] = ss
	return ss, nil
}

// Resolve returns the user a live token was issued for
// expired tokens are dropped on the way
func (s *Sessions) Resolve(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss, ok := s.byTok[token]
	if !ok {
		return "", perr.Unauthorizedf("unknown session")
	}
	if !s.now().Before(ss.Expires) {
		delete(s.byTok, token)
		return "", perr.Unauthorizedf("session expired")
	}
	return ss.User, nil
}

// Revoke ends the session behind token, unknown tokens are ignored
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	delete(s.byTok, token)
	s.mu.Unlock()
}

// Sweep drops every expired session and returns how many went
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for tok, ss := range s.byTok {
		if !now.Before(ss.Expires) {
			delete(s.byTok, tok)
			n++
		}
	}
	return n
}

// Len returns the number of tracked sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byTok)
}

// Cookie returns the cookie carrying ss
func (s *Sessions) Cookie(ss Session) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    ss.Token,
		Path:     "/",
		Expires:  ss.Expires,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie returns a cookie that removes the session cookie from the client
func (s *Sessions) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Login issues a session for user and sets the session cookie on w
func (s *Sessions) Login(w http.ResponseWriter, user string) (Session, error) {
	ss, err := s.Issue(user)
	if err != nil {
		return Session{}, err
	}
	http.SetCookie(w, s.Cookie(ss))
	s.log.Info().Str("user", ss.User).Time("expires", ss.Expires).Msg("login")
	return ss, nil
}

// Logout revokes the request's session, if any, and clears the cookie
func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) {
	if tok := Token(r); tok != "" {
		s.Revoke(tok)
	}
	http.SetCookie(w, s.ClearCookie())
}

// User returns the logged in user of r
func (s *Sessions) User(r *http.Request) (string, bool) {
	tok := Token(r)
	if tok == "" {
		return "", false
	}
	u, err := s.Resolve(tok)
	return u, err == nil
}

// IsAuthenticated implements SecurityContext
func (s *Sessions) IsAuthenticated(r *http.Request) bool {
	if s == nil {
		return false
	}
	_, ok := s.User(r)
	return ok
}

// Token returns the session token carried by r, "" when there is none
// the cookie wins over an Authorization bearer header
func Token(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if v := strings.TrimSpace(c.Value); v != "" {
			return v
		}
	}
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
