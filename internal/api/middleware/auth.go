package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/dom/account-service/internal/domain"
	"github.com/dom/account-service/internal/service"
)

type contextKey string

const (
	userKey  contextKey = "user"
	tokenKey contextKey = "token"
)

// CookieName is the cookie carrying the auth token.
const CookieName = "user_token"

// Auth guards protected routes. The credential is taken from the user_token
// cookie first, then from an Authorization bearer header. The resolved user
// and the raw token are attached to the request context; the token itself is
// never mutated and session lifetime is not extended on access.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respondError(w, http.StatusUnauthorized, "You are not logged in, please provide a token")
				return
			}

			user, err := authService.Validate(r.Context(), token)
			if err != nil {
				// Credential failures are 401; anything else is a store or
				// configuration problem and must not masquerade as one.
				if isCredentialError(err) {
					log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
					respondError(w, http.StatusUnauthorized, "Invalid token")
					return
				}
				log.Printf("ERROR [middleware.Auth] resolving token: %v", err)
				respondError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func isCredentialError(err error) bool {
	return errors.Is(err, domain.ErrInvalidToken) ||
		errors.Is(err, domain.ErrExpiredToken) ||
		errors.Is(err, domain.ErrSessionNotFound) ||
		errors.Is(err, domain.ErrUnauthenticated)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "error",
		"message": message,
	})
}

// GetUser returns the authenticated user attached by Auth.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

// GetToken returns the raw credential the request authenticated with.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
