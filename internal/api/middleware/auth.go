package middleware

import (
	"context"
	"errors"
	"net/http"

	"hotel_hub/internal/common"
	"hotel_hub/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey    contextKey = "userID"
	UserEmailCtxKey contextKey = "userEmail"
	UserRoleCtxKey  contextKey = "userRole"
)

// AuthMiddleware holds the token manager the verification chain runs
// against.
type AuthMiddleware struct {
	tokens *security.TokenManager
}

func NewAuthMiddleware(tokens *security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// TokenFromCookie extracts the credential from the auth cookie. Checked
// before the Authorization header.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(security.TokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Verifier decodes whatever credential the request carries (cookie first,
// bearer header as fallback) and stores the outcome in the context. It never
// rejects on its own; Authenticator does that for protected routes.
func (m *AuthMiddleware) Verifier(next http.Handler) http.Handler {
	if m.tokens == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			common.RespondWithError(w, http.StatusInternalServerError, "Server misconfigured: signing secret not set")
		})
	}
	return jwtauth.Verify(m.tokens.JWTAuth(), TokenFromCookie, jwtauth.TokenFromHeader)(next)
}

// Authenticator turns the verification outcome into admit-or-reject.
func (m *AuthMiddleware) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Misconfiguration is checked before any verification result is
		// consulted.
		if m.tokens == nil {
			common.RespondWithError(w, http.StatusInternalServerError, "Server misconfigured: signing secret not set")
			return
		}

		token, claims, err := jwtauth.FromContext(r.Context())
		switch {
		case errors.Is(err, jwtauth.ErrNoTokenFound):
			common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			return
		case errors.Is(err, jwtauth.ErrExpired):
			common.RespondWithError(w, http.StatusUnauthorized, "Token expired")
			return
		case errors.Is(err, jwtauth.ErrUnauthorized),
			errors.Is(err, jwtauth.ErrAlgoInvalid),
			errors.Is(err, jwtauth.ErrNBFInvalid),
			errors.Is(err, jwtauth.ErrIATInvalid):
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		case err != nil:
			common.RespondWithError(w, http.StatusInternalServerError, "Token verification failed")
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}
		userEmail, err := security.GetUserEmailFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}
		userRole, err := security.GetUserRoleFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, UserEmailCtxKey, userEmail)
		ctx = context.WithValue(ctx, UserRoleCtxKey, userRole)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route on the role claim. Runs after Authenticator.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, ok := r.Context().Value(UserRoleCtxKey).(string)
			if !ok || current != role {
				common.RespondWithError(w, http.StatusForbidden, "Insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// Helper to get user email from context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	userEmail, ok := ctx.Value(UserEmailCtxKey).(string)
	return userEmail, ok
}

// Helper to get user role from context
func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	userRole, ok := ctx.Value(UserRoleCtxKey).(string)
	return userRole, ok
}
