package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenCookie is the cookie the login endpoint sets and the verifier reads.
const TokenCookie = "token"

// TokenManager signs and verifies the HS256 bearer tokens issued at login.
// It is constructed once at startup and injected wherever tokens are needed;
// construction fails rather than ever signing with an empty key.
type TokenManager struct {
	auth *jwtauth.JWTAuth
	exp  time.Duration
}

func NewTokenManager(secret []byte, exp time.Duration) (*TokenManager, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt signing secret must not be empty")
	}
	if exp <= 0 {
		return nil, errors.New("jwt expiration must be positive")
	}
	return &TokenManager{
		auth: jwtauth.New("HS256", secret, nil),
		exp:  exp,
	}, nil
}

func (tm *TokenManager) GenerateToken(userID, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     now.Add(tm.exp).Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := tm.auth.Encode(claims)
	return tokenString, err
}

// JWTAuth exposes the underlying verifier for the router middleware.
func (tm *TokenManager) JWTAuth() *jwtauth.JWTAuth {
	return tm.auth
}

// Expiry is the validity window of issued tokens; the login cookie max-age
// mirrors it.
func (tm *TokenManager) Expiry() time.Duration {
	return tm.exp
}

// Helper functions to extract claims, used by middleware after verification.
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUserEmailFromClaims(claims jwt.MapClaims) (string, error) {
	email, ok := claims["email"].(string)
	if !ok {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}

func GetUserRoleFromClaims(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}
