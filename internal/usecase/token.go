package usecase

import (
	"errors"
	"fmt"
	"time"

	"user-api/internal/data/entity"
	"user-api/pkg/apperror"
	"user-api/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenIssuerName = "user-api"
	TokenAudience   = "user-app"

	minSecretLength = 32
	msgInvalidToken = "Invalid or expired token"
)

type TokenClaims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256 bearer tokens. It never consults the
// store; whether the account is still usable is decided by Authenticate.
type TokenIssuer struct {
	secret    []byte
	ttl       time.Duration
	expiresIn string
	now       func() time.Time
}

func NewTokenIssuer(config utils.JWTConfig) (*TokenIssuer, error) {
	if len(config.Secret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}
	if config.TTL <= 0 {
		return nil, fmt.Errorf("jwt lifetime must be positive, got %q", config.ExpiresIn)
	}

	return &TokenIssuer{
		secret:    []byte(config.Secret),
		ttl:       config.TTL,
		expiresIn: config.ExpiresIn,
		now:       time.Now,
	}, nil
}

// ExpiresIn is the configured lifetime as written in the configuration.
func (t *TokenIssuer) ExpiresIn() string {
	return t.expiresIn
}

func (t *TokenIssuer) Issue(userID uuid.UUID, email string, role entity.Role) (string, time.Time, error) {
	if !role.Valid() {
		return "", time.Time{}, fmt.Errorf("issue token: invalid role %q", role)
	}

	now := t.now()
	claims := TokenClaims{
		UserID: userID.String(),
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuerName,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{TokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, claims.ExpiresAt.Time, nil
}

// Verify checks signature, algorithm, expiry, issuer and audience. Every
// failure is reported as the same Unauthorized error.
func (t *TokenIssuer) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuerName),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, &apperror.Error{Kind: apperror.KindUnauthorized, Message: msgInvalidToken, Err: err}
	}
	if !token.Valid {
		return nil, apperror.Unauthorized(msgInvalidToken)
	}

	if _, err := uuid.Parse(claims.UserID); err != nil || !claims.Role.Valid() {
		return nil, &apperror.Error{Kind: apperror.KindUnauthorized, Message: msgInvalidToken, Err: errors.New("malformed claims")}
	}

	return claims, nil
}
