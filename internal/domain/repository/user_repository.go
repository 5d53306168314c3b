package repository

import (
	"context"

	"github.com/receipegram/backend/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetByLogin resolves a user by username or email, used for login.
	GetByLogin(ctx context.Context, login string) (*entity.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int64, fullName, bio string) error
	// Search matches username or full name by substring, capped at limit.
	Search(ctx context.Context, query string, limit int) ([]entity.UserSummary, error)
	Stats(ctx context.Context, userID int64) (*entity.UserStats, error)
}
