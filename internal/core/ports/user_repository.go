package ports

import (
	"context"

	"github.com/tagblog/tagblog/internal/core/domain"
)

// UserRepository defines the persistence boundary for user rows.
type UserRepository interface {
	// Create inserts a new row and returns it with the assigned id.
	// A uniqueness violation on (username, discriminator) surfaces as
	// domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByID returns the row with the given id or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	// FindByTag returns the exact (username, discriminator) row or
	// domain.ErrUserNotFound.
	FindByTag(ctx context.Context, username string, discriminator int) (*domain.User, error)

	// FindAllByUsername returns every row sharing the bare username.
	FindAllByUsername(ctx context.Context, username string) ([]*domain.User, error)

	// UsedDiscriminators returns the discriminators currently taken for the
	// username, in no particular order.
	UsedDiscriminators(ctx context.Context, username string) ([]int, error)
}
