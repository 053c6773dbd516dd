package usecase

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"user-api/pkg/apperror"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
	passwordSymbols  = `!@#$%^&*(),.?":{}|<>`
)

// PasswordPolicy checks password strength and derives/verifies bcrypt hashes.
type PasswordPolicy struct {
	cost int
}

func NewPasswordPolicy(cost int) (*PasswordPolicy, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &PasswordPolicy{cost: cost}, nil
}

// ValidateStrength requires at least 8 characters with an uppercase letter,
// a lowercase letter, a digit and one of passwordSymbols.
func (p *PasswordPolicy) ValidateStrength(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return apperror.Validation("Password must be at least 8 characters long")
	}
	if len(password) > maxPasswordBytes {
		return apperror.Validation("Password must be at most 72 bytes long")
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	if !upper || !lower || !digit || !symbol {
		return apperror.Validation("Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character")
	}
	return nil
}

func (p *PasswordPolicy) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (p *PasswordPolicy) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
