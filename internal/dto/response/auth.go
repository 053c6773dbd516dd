package response

import (
	"time"

	"user-api/internal/data/entity"
)

type UserSummary struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      entity.Role `json:"role"`
}

type AuthResponse struct {
	User      UserSummary `json:"user"`
	Token     string      `json:"token"`
	ExpiresIn string      `json:"expires_in"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresIn string    `json:"expires_in"`
	ExpiresAt time.Time `json:"expires_at"`
}

func UserToSummary(user *entity.User) UserSummary {
	return UserSummary{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}
}
