package module

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	modkit "eshoppers/internal/modkit"
	phttp "eshoppers/internal/platform/net/http"
	"eshoppers/internal/security"
	"eshoppers/internal/services/auth/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newServer(t *testing.T) (http.Handler, Ports) {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	m := NewWithOptions(modkit.Deps{}, Options{User: "admin", Hash: string(h)})
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	return r.Mux(), m.Ports().(Ports)
}

func send(h http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == security.CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in %v", security.CookieName, rec.Header())
	return nil
}

func TestModule_Defaults(t *testing.T) {
	t.Parallel()
	m := NewWithOptions(modkit.Deps{}, Options{}).(*Module)
	assert.Equal(t, "auth", m.Name())
	assert.Equal(t, "/auth", m.Prefix())
	p, ok := m.Ports().(Ports)
	require.True(t, ok)
	assert.NotNil(t, p.Sessions)
	assert.NotNil(t, p.Auth)
}

func TestModule_LoginMeLogout(t *testing.T) {
	t.Parallel()
	h, ports := newServer(t)

	rec := send(h, http.MethodPost, "/auth/login", `{"user":"admin","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	c := sessionCookie(t, rec)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, 1, ports.Sessions.Len())

	var env struct {
		Data domain.LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "admin", env.Data.User)
	assert.Equal(t, c.Value, env.Data.Token)

	rec = send(h, http.MethodGet, "/auth/me", "", c)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"user":"admin"`)

	rec = send(h, http.MethodPost, "/auth/logout", "", c)
	require.Equal(t, http.StatusNoContent, rec.Code)
	cleared := sessionCookie(t, rec)
	assert.Negative(t, cleared.MaxAge)
	assert.Equal(t, 0, ports.Sessions.Len())

	rec = send(h, http.MethodGet, "/auth/me", "", c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestModule_BearerToken(t *testing.T) {
	t.Parallel()
	h, ports := newServer(t)
	ss, err := ports.Sessions.Issue("admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+ss.Token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestModule_LoginRejects(t *testing.T) {
	t.Parallel()
	h, ports := newServer(t)

	rec := send(h, http.MethodPost, "/auth/login", `{"user":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	rec = send(h, http.MethodPost, "/auth/login", `{"user":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(h, http.MethodGet, "/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, ports.Sessions.Len())
}

func TestModule_UnconfiguredAccountRejectsLogin(t *testing.T) {
	t.Parallel()
	m := NewWithOptions(modkit.Deps{}, Options{User: "admin"})
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	rec := send(r.Mux(), http.MethodPost, "/auth/login", `{"user":"admin","password":"anything"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
