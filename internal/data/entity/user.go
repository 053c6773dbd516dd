package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Role is the privilege tier of an account. Only the constants below are valid.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole returns the Role named by s, or an error for anything outside the enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(strings.TrimSpace(s)) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

// Scan implements sql.Scanner so a role column can never load an unknown value.
func (r *Role) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("scan role: unsupported type %T", src)
	}

	role, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Value implements driver.Valuer.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %q", string(r))
	}
	return string(r), nil
}

// UnmarshalText rejects unknown roles when decoding request bodies.
func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

type User struct {
	Base
	Email         string     `db:"email"`
	PasswordHash  string     `db:"password"`
	FirstName     string     `db:"first_name"`
	LastName      string     `db:"last_name"`
	Role          Role       `db:"role"`
	IsActive      bool       `db:"is_active"`
	EmailVerified bool       `db:"email_verified"`
	LastLoginAt   *time.Time `db:"last_login_at"`
}

// UserUpdate carries a partial change; nil fields are left untouched.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *Role
	IsActive  *bool
}

// IsEmpty reports whether the update would change nothing but updated_at.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.FirstName == nil && u.LastName == nil && u.Role == nil && u.IsActive == nil
}

// NormalizeEmail lowercases and trims an address. Every lookup and write goes through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
