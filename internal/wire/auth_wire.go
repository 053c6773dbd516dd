package wire

import (
	"net/http"

	"user-api/internal/adaptor"
	"user-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	authenticate func(http.Handler) http.Handler,
	config *utils.Config,
	log *zap.Logger,
) {
	limiter := httprate.Limit(
		config.Security.AuthRateLimit,
		config.Security.AuthRateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			log.Warn("Auth rate limit exceeded", zap.String("ip", r.RemoteAddr), zap.String("path", r.URL.Path))
			utils.ResponseTooManyRequests(w, "Too many authentication attempts, please try again later.")
		}),
	)

	r.Route("/api/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.With(limiter).Post("/login", authHandler.Login)
		r.With(limiter).Post("/register", authHandler.Register)

		// ==================== PROTECTED ROUTES ====================
		r.With(authenticate).Post("/refresh", authHandler.Refresh)
		r.With(authenticate).Post("/logout", authHandler.Logout)
	})
}
