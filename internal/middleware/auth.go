package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskdesk/taskdesk-go/internal/model"
	"github.com/taskdesk/taskdesk-go/internal/service"
	"github.com/taskdesk/taskdesk-go/internal/token"
)

type contextKey string

// SessionChecker exposes the live session a token must belong to.
type SessionChecker interface {
	Current(ctx context.Context) (model.User, error)
	LastLogin(ctx context.Context) (string, error)
}

// SessionAuth returns middleware that requires a valid Bearer token issued
// for the stored user's current login. Logging out, logging in again or
// replacing the user invalidates every earlier token.
func SessionAuth(secret string, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			raw, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || raw == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := token.ValidateToken(raw, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			user, err := sessions.Current(r.Context())
			if errors.Is(err, service.ErrNotLoggedIn) {
				writeJSONError(w, http.StatusUnauthorized, "not logged in")
				return
			}
			if err != nil {
				slog.Error("loading session failed", "error", err)
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			lastLogin, err := sessions.LastLogin(r.Context())
			if err != nil {
				slog.Error("loading session failed", "error", err)
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if err := claims.CheckSession(user.Email, lastLogin); err != nil {
				slog.Info("rejected token for a stale session", "token_email", claims.Email)
				writeJSONError(w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
