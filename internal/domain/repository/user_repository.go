package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-admin-panel/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row matches the lookup or mutation.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert or update violates the
	// unique email constraint.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// List returns all users ordered by name ascending, without password hashes.
	List(ctx context.Context) ([]entity.User, error)
	// GetByID returns a user without its password hash.
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByEmail returns a user including its password hash. It exists solely
	// for credential verification.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Create inserts a new user and fills in ID and timestamps.
	Create(ctx context.Context, u *entity.User) error
	// Update changes name and email only.
	Update(ctx context.Context, id int64, name, email string) error
	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	// Delete removes a user. ErrNotFound when nothing was deleted.
	Delete(ctx context.Context, id int64) error
}
