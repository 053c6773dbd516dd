package wire

import (
	"net/http"

	"user-api/internal/adaptor"
	"user-api/internal/data/entity"
	"user-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user management routes with role-based access control
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	authenticate func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(authenticate)

		// ==================== SELF-SERVICE ROUTES ====================
		r.Get("/profile", userHandler.GetProfile)
		r.Put("/profile", userHandler.UpdateProfile)
		r.Post("/change-password", userHandler.ChangePassword)
		r.Post("/verify-email", userHandler.VerifyEmail)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(log, entity.RoleAdmin))

			r.Get("/", userHandler.GetAllUsers)
			r.Post("/", userHandler.CreateUser)
			r.Get("/{id}", userHandler.GetUserByID)
			r.Put("/{id}", userHandler.UpdateUser)
			r.Delete("/{id}", userHandler.DeleteUser)
			r.Post("/{id}/deactivate", userHandler.DeactivateUser)
			r.Post("/{id}/activate", userHandler.ActivateUser)
		})
	})
}
