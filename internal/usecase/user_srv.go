package usecase

import (
	"context"
	"fmt"

	"user-api/internal/data/entity"
	"user-api/internal/data/repository"
	"user-api/internal/dto/request"
	"user-api/internal/dto/response"
	"user-api/pkg/apperror"
	"user-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetAllUsers(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, actor *utils.Identity, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, actor *utils.Identity, id uuid.UUID) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error
	VerifyEmail(ctx context.Context, userID uuid.UUID) error
	DeactivateUser(ctx context.Context, actor *utils.Identity, id uuid.UUID) (*response.UserResponse, error)
	ActivateUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error)
	EnsureAdmin(ctx context.Context, admin utils.AdminConfig) error
}

type userService struct {
	userRepo  repository.UserRepository
	passwords *PasswordPolicy
	log       *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, passwords *PasswordPolicy, log *zap.Logger) UserService {
	return &userService{
		userRepo:  userRepo,
		passwords: passwords,
		log:       log.With(zap.String("service", "user")),
	}
}

func validateRequest(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperror.ValidationFields("Validation failed", errs)
	}
	return nil
}

func (us *userService) GetAllUsers(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if !req.Valid() {
		return nil, apperror.Validation("Invalid pagination parameters")
	}

	users, total, err := us.userRepo.ListPage(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}

	page := response.NewPaginatedResponse(response.UsersToResponse(users), req.Page, req.Limit, total)

	us.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("limit", req.Limit),
		zap.Int("total_pages", page.Pagination.TotalPages),
	)

	return page, nil
}

func (us *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	user, err := us.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := us.passwords.ValidateStrength(req.Password); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = entity.RoleUser
	}

	hash, err := us.passwords.Hash(req.Password)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperror.Internal("Failed to process password", err)
	}

	user, err := us.userRepo.Create(ctx, &entity.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
	})
	if err != nil {
		if apperror.Is(err, apperror.KindConflict) {
			us.log.Warn("Email already registered", zap.String("email", entity.NormalizeEmail(req.Email)))
		}
		return nil, err
	}

	us.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", user.Role.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateUser(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := us.userRepo.Update(ctx, id, req.ToEntity())
	if err != nil {
		return nil, err
	}

	us.log.Info("User updated", zap.String("user_id", id.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateProfile lets a user edit their own names and email, never their role
// or active flag.
func (us *userService) UpdateProfile(ctx context.Context, actor *utils.Identity, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}
	if req.Role != nil || req.IsActive != nil {
		return nil, apperror.Forbidden("Cannot modify role or active status")
	}
	return us.UpdateUser(ctx, actor.ID, req)
}

func (us *userService) DeleteUser(ctx context.Context, actor *utils.Identity, id uuid.UUID) error {
	if actor != nil && actor.ID == id {
		return apperror.Forbidden("Cannot delete your own account")
	}

	if err := us.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	fields := []zap.Field{zap.String("user_id", id.String())}
	if actor != nil {
		fields = append(fields, zap.String("deleted_by", actor.ID.String()))
	}
	us.log.Info("User deleted", fields...)
	return nil
}

func (us *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	user, err := us.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if !us.passwords.Verify(req.CurrentPassword, user.PasswordHash) {
		us.log.Warn("Change password with wrong current password", zap.String("user_id", userID.String()))
		return apperror.Unauthorized("Current password is incorrect")
	}

	if req.NewPassword == req.CurrentPassword {
		return apperror.Validation("New password must be different from current password")
	}

	if err := us.passwords.ValidateStrength(req.NewPassword); err != nil {
		return err
	}

	hash, err := us.passwords.Hash(req.NewPassword)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return apperror.Internal("Failed to process password", err)
	}

	if err := us.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	us.log.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

func (us *userService) VerifyEmail(ctx context.Context, userID uuid.UUID) error {
	user, err := us.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if user.EmailVerified {
		return apperror.Validation("Email is already verified")
	}

	if err := us.userRepo.VerifyEmail(ctx, userID); err != nil {
		return err
	}

	us.log.Info("Email verified", zap.String("user_id", userID.String()), zap.String("email", user.Email))
	return nil
}

func (us *userService) DeactivateUser(ctx context.Context, actor *utils.Identity, id uuid.UUID) (*response.UserResponse, error) {
	if actor != nil && actor.ID == id {
		return nil, apperror.Forbidden("Cannot deactivate your own account")
	}
	return us.setActive(ctx, id, false)
}

func (us *userService) ActivateUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	return us.setActive(ctx, id, true)
}

func (us *userService) setActive(ctx context.Context, id uuid.UUID, active bool) (*response.UserResponse, error) {
	user, err := us.userRepo.Update(ctx, id, entity.UserUpdate{IsActive: &active})
	if err != nil {
		return nil, err
	}

	us.log.Info("User active flag changed", zap.String("user_id", id.String()), zap.Bool("active", active))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// EnsureAdmin creates the bootstrap admin, or promotes and reactivates an
// existing account with that email. Disabled when the config is empty.
func (us *userService) EnsureAdmin(ctx context.Context, admin utils.AdminConfig) error {
	if !admin.Enabled() {
		return nil
	}

	existing, err := us.userRepo.FindByEmail(ctx, admin.Email)
	if err != nil {
		return err
	}

	if existing == nil {
		_, err := us.CreateUser(ctx, &request.CreateUserRequest{
			Email:     admin.Email,
			Password:  admin.Password,
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			Role:      entity.RoleAdmin,
		})
		if err != nil {
			return fmt.Errorf("create bootstrap admin: %w", err)
		}
		return nil
	}

	if existing.Role == entity.RoleAdmin && existing.IsActive {
		return nil
	}

	role, active := entity.RoleAdmin, true
	if _, err := us.userRepo.Update(ctx, existing.ID, entity.UserUpdate{Role: &role, IsActive: &active}); err != nil {
		return fmt.Errorf("promote bootstrap admin: %w", err)
	}

	us.log.Info("Bootstrap admin promoted", zap.String("user_id", existing.ID.String()))
	return nil
}

func (us *userService) findUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}
