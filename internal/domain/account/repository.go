package account

import (
	"context"
)

// Repository defines persistence operations for user accounts.
type Repository interface {
	// Create inserts a new user and fills in the generated ID.
	Create(ctx context.Context, u *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Exists reports whether a user with the email exists.
	Exists(ctx context.Context, email string) (bool, error)

	// Update modifies an existing user.
	Update(ctx context.Context, u *User) error

	// Count returns the number of registered users.
	Count(ctx context.Context) (int64, error)
}
