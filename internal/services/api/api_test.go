package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eshoppers/internal/platform/config"
	phttp "eshoppers/internal/platform/net/http"
	"eshoppers/internal/platform/store"
	"eshoppers/internal/platform/store/schema/schematest"
	"eshoppers/internal/security"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAPI(t *testing.T) http.Handler {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	t.Setenv("ESHOP_TEST_AUTH_LOGIN_USER", "admin")
	t.Setenv("ESHOP_TEST_AUTH_LOGIN_HASH", string(h))

	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{
		Config: config.New().Prefix("ESHOP_TEST_"),
		Store:  &store.Store{Lite: schematest.Open(t)},
	})
	return r.Mux()
}

func call(h http.Handler, method, path, body string, c *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if c != nil {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMount_GateRedirectsAnonymous(t *testing.T) {
	h := newAPI(t)

	for _, p := range []string{"/api/v1/products", "/api/v1/shipping-addresses/1"} {
		rec := call(h, http.MethodGet, p, "", nil)
		assert.Equal(t, http.StatusFound, rec.Code, p)
		assert.Equal(t, "/login", rec.Header().Get("Location"), p)
	}

	rec := call(h, http.MethodGet, "/login", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/auth/login")

	rec = call(h, http.MethodGet, "/api/v1/meta/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMount_LoginOpensTheShop(t *testing.T) {
	h := newAPI(t)

	rec := call(h, http.MethodPost, "/api/v1/auth/login", `{"user":"admin","password":"s3cret"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == security.CookieName {
			session = c
		}
	}
	require.NotNil(t, session)

	rec = call(h, http.MethodPost, "/api/v1/products", `{"name":"Lamp","price":"19.99"}`, session)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(h, http.MethodGet, "/api/v1/products", "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Lamp"`)

	rec = call(h, http.MethodPost, "/api/v1/shipping-addresses", `{"address":"1 Main St","country":"US"}`, session)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(h, http.MethodPost, "/api/v1/auth/logout", "", session)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(h, http.MethodGet, "/api/v1/products", "", session)
	assert.Equal(t, http.StatusFound, rec.Code)
}
