package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/auth"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	userNameKey contextKey = "user_name"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type Authenticator struct {
	Tokens TokenParser
	Users  entity.UserRepository
}

func NewAuthenticator(tokens TokenParser, users entity.UserRepository) *Authenticator {
	return &Authenticator{Tokens: tokens, Users: users}
}

// Authenticate extracts the identity from the bearer token. Missing or
// invalid token stops the request right here with a 401.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			unauthorized(w, "authentication required")
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(w, "invalid authorization format")
			return
		}

		claims, err := a.Tokens.Parse(parts[1])
		if err != nil {
			unauthorized(w, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, userNameKey, claims.Name)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin loads the caller's stored role and only lets the admin role
// through. The role lives in the database, not in the token, so a demotion
// takes effect immediately.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.Users.FindByID(r.Context(), UserID(r.Context()))
		if err != nil || !user.IsAdmin() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "access denied"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

func UserName(ctx context.Context) string {
	name, _ := ctx.Value(userNameKey).(string)
	return name
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
