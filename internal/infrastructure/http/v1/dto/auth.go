package dto

import (
	"time"

	"github.com/PnBafon/viten-backend/internal/domain/account"
)

// RegisterRequest is the request body for creating an account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// ToDomain converts the DTO to a domain request.
func (r *RegisterRequest) ToDomain() account.RegisterRequest {
	return account.RegisterRequest{
		Email:    r.Email,
		Password: r.Password,
		FullName: r.FullName,
		Role:     r.Role,
	}
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse carries the public fields of an account.
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// FromUser converts a domain user.
func FromUser(u *account.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	TokenType   string       `json:"tokenType"`
	User        UserResponse `json:"user"`
}
