package middleware

import (
	"context"
	"net/http"
	"strings"

	"user-api/internal/data/entity"
	"user-api/internal/usecase"
	"user-api/pkg/apperror"
	"user-api/pkg/utils"

	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// Authenticator resolves a bearer token to the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.Identity, error)
}

// Authenticate requires a valid "Bearer <token>" header and binds the
// resolved identity to the request context.
func Authenticate(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				utils.ResponseUnauthorized(w, "No token provided")
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			if token == "" {
				utils.ResponseUnauthorized(w, "No token provided")
				return
			}

			identity, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if apperror.KindOf(err) == apperror.KindInternal {
					logger.Error("Failed to authenticate request", zap.Error(err), zap.String("path", r.URL.Path))
				} else {
					logger.Debug("Authentication rejected", zap.Error(err), zap.String("path", r.URL.Path))
				}
				utils.ResponseError(w, err, false)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetIdentity(r.Context(), identity)))
		})
	}
}

// Authorize admits only identities holding one of roles. It must run after
// Authenticate.
func Authorize(logger *zap.Logger, roles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := utils.GetIdentity(r.Context())

			if err := usecase.Authorize(identity, roles...); err != nil {
				if identity != nil {
					logger.Warn("Insufficient role",
						zap.String("user_id", identity.ID.String()),
						zap.String("role", identity.Role.String()),
						zap.String("path", r.URL.Path))
				}
				utils.ResponseError(w, err, false)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
