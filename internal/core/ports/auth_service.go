package ports

import (
	"context"

	"github.com/tagblog/tagblog/internal/core/domain"
)

// AuthService implements registration, login and per-request identity loading.
type AuthService interface {
	// Register creates an account with a freshly allocated discriminator and
	// returns the new row. Reserved or malformed usernames, tag exhaustion
	// and insert races surface as domain errors.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// Login authenticates a combined login string. Three paths:
	// the reserved admin name (no tag), the full name#dddd format, and the
	// bare-name convenience path that only succeeds on an unambiguous match.
	Login(ctx context.Context, login, password string) (*domain.User, error)

	// Token mints a signed API token for the user.
	Token(user *domain.User) (string, error)

	// CurrentUser resolves a session user id to a row. Any failure resolves
	// to (nil, nil): a stale session is anonymous, never an error.
	CurrentUser(ctx context.Context, id int64) (*domain.User, error)
}
