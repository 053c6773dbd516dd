package request

import "user-api/internal/data/entity"

type CreateUserRequest struct {
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=8"`
	FirstName string      `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string      `json:"last_name" validate:"required,min=1,max=50"`
	Role      entity.Role `json:"role" validate:"omitempty,oneof=admin user"`
}

// UpdateUserRequest is a partial update; omitted fields stay unchanged.
type UpdateUserRequest struct {
	Email     *string      `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string      `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
	LastName  *string      `json:"last_name,omitempty" validate:"omitempty,min=1,max=50"`
	Role      *entity.Role `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
	IsActive  *bool        `json:"is_active,omitempty"`
}

func (r UpdateUserRequest) ToEntity() entity.UserUpdate {
	return entity.UserUpdate{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      r.Role,
		IsActive:  r.IsActive,
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
