package repository

import (
	"context"

	"github.com/receipegram/backend/internal/domain/entity"
)

// FollowRepository manages the directed follower graph.
type FollowRepository interface {
	Exists(ctx context.Context, followerID, followingID int64) (bool, error)
	Insert(ctx context.Context, followerID, followingID int64) error
	Delete(ctx context.Context, followerID, followingID int64) error
	// Followers lists users following userID, newest edge first.
	Followers(ctx context.Context, userID int64) ([]entity.UserSummary, error)
	// Following lists users userID follows, newest edge first.
	Following(ctx context.Context, userID int64) ([]entity.UserSummary, error)
}
