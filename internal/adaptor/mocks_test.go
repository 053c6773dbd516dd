package adaptor

import (
	"context"

	"user-api/internal/dto/request"
	"user-api/internal/dto/response"
	"user-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, userID uuid.UUID) (*response.TokenResponse, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).(*response.TokenResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, identity *utils.Identity) error {
	return m.Called(ctx, identity).Error(0)
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*utils.Identity, error) {
	args := m.Called(ctx, token)
	identity, _ := args.Get(0).(*utils.Identity)
	return identity, args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetAllUsers(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.PaginatedResponse[response.UserResponse])
	return resp, args.Error(1)
}

func (m *mockUserService) GetUserByID(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, actor *utils.Identity, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	args := m.Called(ctx, actor, req)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, actor *utils.Identity, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockUserService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func (m *mockUserService) VerifyEmail(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUserService) DeactivateUser(ctx context.Context, actor *utils.Identity, id uuid.UUID) (*response.UserResponse, error) {
	args := m.Called(ctx, actor, id)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) ActivateUser(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) EnsureAdmin(ctx context.Context, admin utils.AdminConfig) error {
	return m.Called(ctx, admin).Error(0)
}
