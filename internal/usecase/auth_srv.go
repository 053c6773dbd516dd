package usecase

import (
	"context"

	"user-api/internal/data/entity"
	"user-api/internal/data/repository"
	"user-api/internal/dto/request"
	"user-api/internal/dto/response"
	"user-api/pkg/apperror"
	"user-api/pkg/metrics"
	"user-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgAccountDeactivated = "Account is deactivated"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Refresh(ctx context.Context, userID uuid.UUID) (*response.TokenResponse, error)
	Logout(ctx context.Context, identity *utils.Identity) error
	Authenticate(ctx context.Context, token string) (*utils.Identity, error)
}

type authService struct {
	userRepo  repository.UserRepository
	users     UserService
	passwords *PasswordPolicy
	tokens    *TokenIssuer
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	users UserService,
	passwords *PasswordPolicy,
	tokens *TokenIssuer,
	m *metrics.Metrics,
	log *zap.Logger,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		metrics:   m,
		log:       log.With(zap.String("service", "auth")),
	}
}

// Register always creates an unprivileged account and logs it straight in.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.Role != nil && *req.Role != entity.RoleUser {
		s.log.Warn("Ignoring requested role on registration",
			zap.String("email", entity.NormalizeEmail(req.Email)),
			zap.String("role", req.Role.String()))
	}

	created, err := s.users.CreateUser(ctx, &request.CreateUserRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      entity.RoleUser,
	})
	if err != nil {
		s.metrics.AuthEvent("register", apperror.KindOf(err).String())
		return nil, err
	}
	s.metrics.AuthEvent("register", "success")

	s.log.Info("User registered", zap.String("user_id", created.ID), zap.String("email", created.Email))

	return s.Login(ctx, &request.LoginRequest{Email: req.Email, Password: req.Password})
}

// Login reports unknown email and wrong password identically; a deactivated
// account gets its own message only after the password checked out.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		s.log.Warn("Login for unknown email", zap.String("email", entity.NormalizeEmail(req.Email)))
		s.metrics.AuthEvent("login", "invalid_credentials")
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	if !s.passwords.Verify(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		s.metrics.AuthEvent("login", "invalid_credentials")
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		s.metrics.AuthEvent("login", "inactive")
		return nil, apperror.Unauthorized(msgAccountDeactivated)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperror.Internal("Failed to issue token", err)
	}

	s.metrics.AuthEvent("login", "success")
	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response.AuthResponse{
		User:      response.UserToSummary(user),
		Token:     token,
		ExpiresIn: s.tokens.ExpiresIn(),
		ExpiresAt: expiresAt,
	}, nil
}

// Refresh re-issues a token without a password check. Callers reach it only
// through Authenticate, so they already hold a valid token.
func (s *authService) Refresh(ctx context.Context, userID uuid.UUID) (*response.TokenResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.metrics.AuthEvent("refresh", "not_found")
		return nil, apperror.NotFound("User not found")
	}
	if !user.IsActive {
		s.metrics.AuthEvent("refresh", "inactive")
		return nil, apperror.Unauthorized(msgAccountDeactivated)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperror.Internal("Failed to issue token", err)
	}

	s.metrics.AuthEvent("refresh", "success")

	return &response.TokenResponse{
		Token:     token,
		ExpiresIn: s.tokens.ExpiresIn(),
		ExpiresAt: expiresAt,
	}, nil
}

// Logout keeps no server-side state; the client discards its token, which
// stays valid until it expires.
func (s *authService) Logout(ctx context.Context, identity *utils.Identity) error {
	if identity == nil {
		return apperror.Unauthorized("Authentication required")
	}

	s.metrics.AuthEvent("logout", "success")
	s.log.Info("User logged out", zap.String("user_id", identity.ID.String()))
	return nil
}

// Authenticate resolves a bearer token to the caller's current identity. The
// account must still exist and be active, whatever the token says.
func (s *authService) Authenticate(ctx context.Context, token string) (*utils.Identity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.metrics.AuthEvent("authenticate", "invalid_token")
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		s.metrics.AuthEvent("authenticate", "invalid_token")
		return nil, apperror.Unauthorized(msgInvalidToken)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.metrics.AuthEvent("authenticate", "unknown_user")
		return nil, apperror.Unauthorized("User no longer exists")
	}
	if !user.IsActive {
		s.metrics.AuthEvent("authenticate", "inactive")
		return nil, apperror.Unauthorized(msgAccountDeactivated)
	}

	return &utils.Identity{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// Authorize allows identity through when its role is one of roles.
func Authorize(identity *utils.Identity, roles ...entity.Role) error {
	if identity == nil {
		return apperror.Unauthorized("Authentication required")
	}
	for _, role := range roles {
		if identity.Role == role {
			return nil
		}
	}
	return apperror.Forbidden("Insufficient permissions")
}
