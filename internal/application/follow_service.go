package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/receipegram/backend/internal/domain/entity"
	"github.com/receipegram/backend/internal/domain/repository"
)

var ErrSelfFollow = errors.New("cannot follow yourself")

// FollowService manages the directed follower graph.
type FollowService struct {
	Follows repository.FollowRepository
	Logger  *logrus.Logger
}

func NewFollowService(follows repository.FollowRepository, logger *logrus.Logger) *FollowService {
	return &FollowService{Follows: follows, Logger: logger}
}

// Toggle follows or unfollows and reports the resulting state. Like the
// like toggle, this is a check-then-act pair; a racing duplicate insert
// fails on the unique pair constraint and surfaces as a storage error.
func (s *FollowService) Toggle(ctx context.Context, followerID, followingID int64) (bool, error) {
	if followerID == followingID {
		return false, ErrSelfFollow
	}
	exists, err := s.Follows.Exists(ctx, followerID, followingID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.Follows.Delete(ctx, followerID, followingID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.Follows.Insert(ctx, followerID, followingID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	return s.Follows.Exists(ctx, followerID, followingID)
}

func (s *FollowService) Followers(ctx context.Context, userID int64) ([]entity.UserSummary, error) {
	return s.Follows.Followers(ctx, userID)
}

func (s *FollowService) Following(ctx context.Context, userID int64) ([]entity.UserSummary, error) {
	return s.Follows.Following(ctx, userID)
}
