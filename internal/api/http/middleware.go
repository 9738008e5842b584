package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/logger"
	"thoonsheet-backend/internal/policy"
	"thoonsheet-backend/internal/repository"
	"thoonsheet-backend/internal/security"
)

type contextKey string

const actorContextKey contextKey = "actor"

// actorFrom returns the authenticated actor placed in the context by
// AuthMiddleware. Handlers behind the middleware can rely on it being set.
func actorFrom(ctx context.Context) policy.Actor {
	actor, _ := ctx.Value(actorContextKey).(policy.Actor)
	return actor
}

type AuthMiddleware struct {
	tokens security.TokenManager
	users  repository.UserRepository
	log    *slog.Logger
}

func NewAuthMiddleware(tokens security.TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
		log:    logger.WithService("auth_middleware"),
	}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
			return
		}

		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
				return
			}
			writeError(w, err)
			return
		}

		// A password change bumps the stored version, cutting off every
		// token minted before it.
		if user.TokenVersion != claims.TokenVersion {
			m.log.Warn("stale token rejected", "user_id", user.ID)
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
			return
		}

		ctx := context.WithValue(r.Context(), actorContextKey, policy.ActorFor(user))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger records method, path, status and latency for every request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Get().Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
