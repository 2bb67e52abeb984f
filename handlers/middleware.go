package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fintrack-app/fintrack/derived"
)

// Response is the standard JSON envelope for all API responses.
type Response struct {
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

// DB is the shared database connection used by all handlers.
var DB *sql.DB

// Events receives a change notification after every successful mutation.
var Events *derived.Bus

// Dashboards caches the per-user dashboard snapshot between mutations.
var Dashboards *derived.Cache

type contextKey string

const userIDKey contextKey = "userID"

// localUser is the fallback identity when no JWT secret is configured.
const localUser = "local"

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Data: data})
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Error: msg})
}

// userID returns the authenticated user for the request. Every query in
// this package is scoped by it; aggregates never mix users.
func userID(r *http.Request) string {
	if id, ok := r.Context().Value(userIDKey).(string); ok && id != "" {
		return id
	}
	return localUser
}

// notifyChange tells derived-view subscribers that one of the user's
// entities changed. Called after every successful mutation.
func notifyChange(r *http.Request, entity string) {
	if Events != nil {
		Events.Publish(derived.Change{UserID: userID(r), Entity: entity})
	}
}

// Auth is middleware that verifies a bearer JWT issued by the identity
// provider and stores its subject as the request's user. If no secret is
// configured, requests run as a fixed local user.
func Auth(secret string) func(http.Handler) http.Handler {
	if secret == "" {
		slog.Warn("AUTH_JWT_SECRET not set, API runs as a single local user")
	}
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := context.WithValue(r.Context(), userIDKey, localUser)
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				writeError(w, http.StatusUnauthorized, "missing or invalid token")
				return
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if claims.Subject == "" {
				writeError(w, http.StatusUnauthorized, "token has no subject")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
