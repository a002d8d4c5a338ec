package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel_hub/internal/api/middleware"
	"hotel_hub/internal/common/security"
	"hotel_hub/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func newTokenManager(t *testing.T) *security.TokenManager {
	t.Helper()
	tm, err := security.NewTokenManager([]byte(testSecret), time.Hour)
	require.NoError(t, err)
	return tm
}

// protectedHandler records the identity the gate admitted.
func protectedHandler(t *testing.T, wantID, wantEmail, wantRole string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantID, id)

		email, ok := middleware.GetUserEmailFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantEmail, email)

		role, ok := middleware.GetUserRoleFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantRole, role)

		w.WriteHeader(http.StatusOK)
	})
}

func serveChain(authMw *middleware.AuthMiddleware, inner http.Handler, req *http.Request, extra ...func(http.Handler) http.Handler) *httptest.ResponseRecorder {
	handler := inner
	for i := len(extra) - 1; i >= 0; i-- {
		handler = extra[i](handler)
	}
	handler = authMw.Verifier(authMw.Authenticator(handler))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestAuthenticatorNoToken(t *testing.T) {
	authMw := middleware.NewAuthMiddleware(newTokenManager(t))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	res := serveChain(authMw, protectedHandler(t, "", "", ""), req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAuthenticatorValidCookieToken(t *testing.T) {
	tm := newTokenManager(t)
	authMw := middleware.NewAuthMiddleware(tm)

	token, err := tm.GenerateToken("user-1", "a@x.com", model.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: security.TokenCookie, Value: token})

	res := serveChain(authMw, protectedHandler(t, "user-1", "a@x.com", model.RoleUser), req)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestAuthenticatorValidBearerToken(t *testing.T) {
	tm := newTokenManager(t)
	authMw := middleware.NewAuthMiddleware(tm)

	token, err := tm.GenerateToken("user-2", "b@x.com", model.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res := serveChain(authMw, protectedHandler(t, "user-2", "b@x.com", model.RoleAdmin), req)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestAuthenticatorTamperedToken(t *testing.T) {
	tm := newTokenManager(t)
	authMw := middleware.NewAuthMiddleware(tm)

	token, err := tm.GenerateToken("user-1", "a@x.com", model.RoleUser)
	require.NoError(t, err)
	tampered := token[:len(token)-2] + "xx"

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: security.TokenCookie, Value: tampered})

	res := serveChain(authMw, protectedHandler(t, "", "", ""), req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAuthenticatorExpiredToken(t *testing.T) {
	tm := newTokenManager(t)
	authMw := middleware.NewAuthMiddleware(tm)

	ja := jwtauth.New("HS256", []byte(testSecret), nil)
	_, expired, err := ja.Encode(jwt.MapClaims{
		"user_id": "user-1",
		"email":   "a@x.com",
		"role":    model.RoleUser,
		"exp":     time.Now().Add(-time.Minute).Unix(),
		"iat":     time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: security.TokenCookie, Value: expired})

	res := serveChain(authMw, protectedHandler(t, "", "", ""), req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "expired")
}

func TestAuthenticatorMissingRoleClaim(t *testing.T) {
	tm := newTokenManager(t)
	authMw := middleware.NewAuthMiddleware(tm)

	ja := jwtauth.New("HS256", []byte(testSecret), nil)
	_, token, err := ja.Encode(jwt.MapClaims{
		"user_id": "user-1",
		"email":   "a@x.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: security.TokenCookie, Value: token})

	res := serveChain(authMw, protectedHandler(t, "", "", ""), req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRequireRole(t *testing.T) {
	tm := newTokenManager(t)
	authMw := middleware.NewAuthMiddleware(tm)

	userToken, err := tm.GenerateToken("user-1", "a@x.com", model.RoleUser)
	require.NoError(t, err)
	adminToken, err := tm.GenerateToken("admin-1", "admin@x.com", model.RoleAdmin)
	require.NoError(t, err)

	t.Run("role mismatch is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: security.TokenCookie, Value: userToken})

		res := serveChain(authMw, protectedHandler(t, "user-1", "a@x.com", model.RoleUser), req, middleware.RequireRole(model.RoleAdmin))
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("matching role is admitted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: security.TokenCookie, Value: adminToken})

		res := serveChain(authMw, protectedHandler(t, "admin-1", "admin@x.com", model.RoleAdmin), req, middleware.RequireRole(model.RoleAdmin))
		assert.Equal(t, http.StatusOK, res.Code)
	})
}

func TestVerifierMisconfigured(t *testing.T) {
	authMw := middleware.NewAuthMiddleware(nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	res := httptest.NewRecorder()
	authMw.Verifier(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run when the secret is unconfigured")
	})).ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
}

func TestCookieTakesPrecedenceOverHeader(t *testing.T) {
	tm := newTokenManager(t)
	authMw := middleware.NewAuthMiddleware(tm)

	cookieToken, err := tm.GenerateToken("cookie-user", "cookie@x.com", model.RoleUser)
	require.NoError(t, err)
	headerToken, err := tm.GenerateToken("header-user", "header@x.com", model.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: security.TokenCookie, Value: cookieToken})
	req.Header.Set("Authorization", "Bearer "+headerToken)

	res := serveChain(authMw, protectedHandler(t, "cookie-user", "cookie@x.com", model.RoleUser), req)
	assert.Equal(t, http.StatusOK, res.Code)
}
