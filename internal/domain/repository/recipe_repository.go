package repository

import (
	"context"

	"github.com/receipegram/backend/internal/domain/entity"
)

// RecipeListFilter carries pagination, optional filters, and the optional
// viewer identity for the feed list query. ViewerID zero means anonymous.
type RecipeListFilter struct {
	Page       int
	Limit      int
	Search     string
	Tags       string
	Difficulty string
	UserID     int64
	Following  bool
	ViewerID   int64
}

// RecipeRepository defines recipe storage plus the engagement edges
// (likes, comments) that hang off a recipe.
type RecipeRepository interface {
	Create(ctx context.Context, r *entity.Recipe) error
	// GetOwned fetches a raw recipe row only when owned by userID.
	GetOwned(ctx context.Context, id, userID int64) (*entity.Recipe, error)
	Update(ctx context.Context, r *entity.Recipe) error
	Delete(ctx context.Context, id int64) error

	// List runs the visibility-scoped, filtered, paginated feed query.
	// Returned items carry aggregate counts but IsLiked is left false;
	// the caller annotates it from LikedSet.
	List(ctx context.Context, f RecipeListFilter) ([]entity.FeedItem, error)
	// GetDetail fetches one recipe joined with author and aggregates.
	// No visibility filter is applied on direct id fetch.
	GetDetail(ctx context.Context, id int64) (*entity.FeedItem, error)

	// LikedSet returns which of recipeIDs the user has liked, in one query.
	LikedSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
	IsLiked(ctx context.Context, userID, recipeID int64) (bool, error)
	InsertLike(ctx context.Context, userID, recipeID int64) error
	DeleteLike(ctx context.Context, userID, recipeID int64) error

	InsertComment(ctx context.Context, userID, recipeID int64, content string) (int64, error)
	GetComment(ctx context.Context, id int64) (*entity.Comment, error)
	ListComments(ctx context.Context, recipeID int64) ([]entity.Comment, error)
}
