package shop

import (
	"context"
)

// Repository defines persistence operations for the shop profile.
type Repository interface {
	// Get retrieves the profile. NOT_FOUND before the first save.
	Get(ctx context.Context) (*Profile, error)

	// Save upserts the singleton profile row.
	Save(ctx context.Context, p *Profile) error
}
