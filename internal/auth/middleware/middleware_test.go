package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	// minimum cost keeps the test fast
	h, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService("test-hmac", "admin", string(h))
}

func TestCheckPassword(t *testing.T) {
	a := newTestService(t)
	assert.NoError(t, a.CheckPassword("admin", "s3cret"))
	assert.ErrorIs(t, a.CheckPassword("admin", "wrong"), ErrBadCredentials)
	assert.ErrorIs(t, a.CheckPassword("root", "s3cret"), ErrBadCredentials)

	noHash := NewAuthService("x", "admin", "")
	assert.ErrorIs(t, noHash.CheckPassword("admin", ""), ErrBadCredentials)
}

func TestHashPasswordRoundTrip(t *testing.T) {
	h, err := HashPassword("clave")
	require.NoError(t, err)
	assert.NoError(t, NewAuthService("x", "admin", h).CheckPassword("admin", "clave"))
}

func TestIssueAndParse(t *testing.T) {
	a := newTestService(t)
	tok, err := a.IssueJWT("admin", "admin")
	require.NoError(t, err)

	c, err := a.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", c.Sub)
	assert.Equal(t, "admin", c.Role)

	_, err = NewAuthService("other", "admin", "").Parse(tok)
	assert.Error(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Sub: "admin"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = a.Parse(none)
	assert.Error(t, err)
}

func TestLoginHandler(t *testing.T) {
	a := newTestService(t)
	h := LoginHandler(a)

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"s3cret"}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"access_token"`)

	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"nope"}`)))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestJWTMiddleware(t *testing.T) {
	a := newTestService(t)
	var seen string
	h := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SubjectFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	tok, err := a.IssueJWT("admin", "admin")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "admin", seen)
}
