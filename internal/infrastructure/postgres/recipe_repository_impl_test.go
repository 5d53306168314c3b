package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receipegram/backend/internal/domain/repository"
)

func TestBuildFeedQuery_AnonymousViewer(t *testing.T) {
	sql, args := buildFeedQuery(repository.RecipeListFilter{Page: 1, Limit: 10})

	assert.Contains(t, sql, "r.visibility = $1")
	assert.NotContains(t, sql, "JOIN follows f")
	assert.NotContains(t, sql, "EXISTS")
	assert.Equal(t, []any{"public", 10, 0}, args)
}

func TestBuildFeedQuery_FollowingFeed(t *testing.T) {
	sql, args := buildFeedQuery(repository.RecipeListFilter{Page: 1, Limit: 10, ViewerID: 7, Following: true})

	assert.Contains(t, sql, "JOIN follows f ON f.following_id = r.user_id")
	assert.Contains(t, sql, "f.follower_id = $1")
	// following grants access to friends-only posts, so no visibility filter
	assert.NotContains(t, sql, "r.visibility =")
	assert.Equal(t, []any{int64(7), 10, 0}, args)
}

func TestBuildFeedQuery_AuthenticatedViewer(t *testing.T) {
	sql, args := buildFeedQuery(repository.RecipeListFilter{Page: 1, Limit: 10, ViewerID: 7})

	assert.Contains(t, sql, "r.visibility = $1")
	assert.Contains(t, sql, "r.visibility = $2 AND EXISTS")
	assert.Contains(t, sql, "OR r.user_id = $4")
	assert.Equal(t, []any{"public", "friends", int64(7), int64(7), 10, 0}, args)
}

func TestBuildFeedQuery_Filters(t *testing.T) {
	sql, args := buildFeedQuery(repository.RecipeListFilter{
		Page:       3,
		Limit:      5,
		Search:     "noodle",
		Tags:       "asian",
		Difficulty: "easy",
		UserID:     42,
	})

	assert.Contains(t, sql, "r.title ILIKE $2 OR r.description ILIKE $2 OR r.ingredients ILIKE $2 OR r.tags ILIKE $2")
	assert.Contains(t, sql, "r.tags ILIKE $3")
	assert.Contains(t, sql, "r.difficulty = $4")
	assert.Contains(t, sql, "r.user_id = $5")
	assert.Equal(t, []any{"public", "%noodle%", "%asian%", "easy", int64(42), 5, 10}, args)
}

func TestBuildFeedQuery_FiltersAreConjuncts(t *testing.T) {
	sql, _ := buildFeedQuery(repository.RecipeListFilter{
		Page: 1, Limit: 10, ViewerID: 7, Search: "soup", Difficulty: "hard",
	})

	where := sql[strings.Index(sql, "WHERE"):strings.Index(sql, "GROUP BY")]

	// filters narrow the visibility scope, never widen it
	assert.Contains(t, where, ") AND (r.title ILIKE $5")
	assert.Contains(t, where, ") AND r.difficulty = $6")
}

func TestBuildFeedQuery_OrderingAndPagination(t *testing.T) {
	sql, args := buildFeedQuery(repository.RecipeListFilter{Page: 4, Limit: 25})

	assert.Contains(t, sql, "ORDER BY r.created_at DESC, r.id ASC")
	assert.Contains(t, sql, "GROUP BY r.id, u.id")
	require.Len(t, args, 3)
	assert.Equal(t, 25, args[1])
	assert.Equal(t, 75, args[2])
}
