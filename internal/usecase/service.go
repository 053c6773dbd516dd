package usecase

import (
	"fmt"

	"user-api/internal/data/repository"
	"user-api/pkg/metrics"
	"user-api/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth AuthService
	User UserService
}

func NewService(repo *repository.Repository, config *utils.Config, m *metrics.Metrics, log *zap.Logger) (*Service, error) {
	passwords, err := NewPasswordPolicy(config.Security.BcryptRounds)
	if err != nil {
		return nil, fmt.Errorf("password policy: %w", err)
	}

	tokens, err := NewTokenIssuer(config.JWT)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	users := NewUserService(repo.User, passwords, log)

	return &Service{
		Auth: NewAuthService(repo.User, users, passwords, tokens, m, log),
		User: users,
	}, nil
}
