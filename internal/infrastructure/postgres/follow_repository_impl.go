package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/receipegram/backend/internal/domain/entity"
	"github.com/receipegram/backend/internal/domain/repository"
)

type FollowRepository struct {
	pool *pgxpool.Pool
}

func NewFollowRepository(pool *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{pool: pool}
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)
	`, followerID, followingID).Scan(&exists)
	return exists, err
}

func (r *FollowRepository) Insert(ctx context.Context, followerID, followingID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)
	`, followerID, followingID)
	return err
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID int64) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM follows WHERE follower_id = $1 AND following_id = $2
	`, followerID, followingID)
	return err
}

func (r *FollowRepository) Followers(ctx context.Context, userID int64) ([]entity.UserSummary, error) {
	return r.listEdge(ctx, `
		SELECT u.id, u.username, u.full_name, u.profile_image
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
	`, userID)
}

func (r *FollowRepository) Following(ctx context.Context, userID int64) ([]entity.UserSummary, error) {
	return r.listEdge(ctx, `
		SELECT u.id, u.username, u.full_name, u.profile_image
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`, userID)
}

func (r *FollowRepository) listEdge(ctx context.Context, sql string, userID int64) ([]entity.UserSummary, error) {
	rows, err := r.pool.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.UserSummary, 0)
	for rows.Next() {
		var u entity.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.ProfileImage); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

var _ repository.FollowRepository = (*FollowRepository)(nil)
