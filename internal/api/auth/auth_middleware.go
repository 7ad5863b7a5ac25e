package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nerdbug/user-service/internal/api"
	"github.com/nerdbug/user-service/internal/types"
)

// Define typed context keys
type contextKey string

const UserIDKey contextKey = "userID"
const UserEmailKey contextKey = "userEmail"

// Authenticate is the bearer-token gate for protected routes. It verifies
// the token, resolves the identity against the user store, and attaches it
// to the request context. Every failure on this path is a 401; an
// authentication failure is never reported as a server error.
func Authenticate(logger *slog.Logger, tokens TokenService, repo AuthRepo) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				l.WarnContext(ctx, "Missing Authorization header")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "There is no token attached to header")
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				l.WarnContext(ctx, "Invalid Authorization header format")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}
			tokenString := headerParts[1]

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				l.WarnContext(ctx, "Token verification failed", slog.Any("error", err))
				errMsg := "Invalid or expired token"
				if errors.Is(err, types.ErrTokenExpired) {
					errMsg = "Token has expired"
				} else if errors.Is(err, types.ErrInvalidSignature) {
					errMsg = "Invalid token signature"
				}
				api.ErrorResponse(w, r, http.StatusUnauthorized, errMsg)
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				l.WarnContext(ctx, "Token carries malformed user id", slog.Any("error", err))
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}

			// The token is stateless, so the account may have been deleted
			// since issuance. Resolve the identity on every request.
			user, err := repo.GetUserByID(ctx, userID)
			if err != nil {
				l.WarnContext(ctx, "Token identity could not be resolved", slog.String("userID", claims.UserID), slog.Any("error", err))
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Not authorized. Please login and try again.")
				return
			}

			ctx = context.WithValue(ctx, UserIDKey, user.ID.String())
			ctx = context.WithValue(ctx, UserEmailKey, user.Email)
			l.DebugContext(ctx, "Authentication successful", slog.String("userID", user.ID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper functions to get claims from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}
