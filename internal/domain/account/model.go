// Package account provides user accounts and authentication.
package account

import (
	"context"
	"strings"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
)

// Roles. The shop owner administers everything; sellers record transactions.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// User represents one account.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	FullName     string `db:"full_name" json:"fullName"`
	Role         string `db:"role" json:"role"`
}

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// Credentials carries a login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewUser creates a user with a normalized email.
func NewUser(email, passwordHash string) *User {
	return &User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Role:         RoleSeller,
	}
}

// Validate checks user invariants before persisting.
func (u *User) Validate(ctx context.Context) error {
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return apperror.NewValidation("a valid email is required").
			WithDetail("field", "email")
	}
	if u.Role != RoleAdmin && u.Role != RoleSeller {
		return apperror.NewValidation("role must be admin or seller").
			WithDetail("field", "role").
			WithDetail("value", u.Role)
	}
	return nil
}
