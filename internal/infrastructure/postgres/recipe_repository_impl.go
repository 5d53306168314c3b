package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/receipegram/backend/internal/domain/entity"
	"github.com/receipegram/backend/internal/domain/repository"
)

type RecipeRepository struct {
	pool *pgxpool.Pool
}

func NewRecipeRepository(pool *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{pool: pool}
}

// feedSelect joins a recipe with its author and derives engagement counts by
// aggregation. DISTINCT is required because the two LEFT JOINs multiply rows.
const feedSelect = `
SELECT r.id, r.user_id, r.title, r.description, r.ingredients, r.instructions,
       r.video_path, r.image_path, r.cooking_time, r.servings, r.difficulty,
       r.visibility, r.tags, r.created_at,
       u.username, u.full_name, u.profile_image,
       COUNT(DISTINCT l.id) AS like_count,
       COUNT(DISTINCT c.id) AS comment_count
FROM recipes r
JOIN users u ON u.id = r.user_id
LEFT JOIN likes l ON l.recipe_id = r.id
LEFT JOIN comments c ON c.recipe_id = r.id`

// buildFeedQuery composes the feed list statement. Visibility scoping:
//   - anonymous viewer: public recipes only
//   - viewer with Following set: recipes authored by followed users, with no
//     further visibility filter (following grants access to friends-only posts)
//   - viewer otherwise: public ∪ friends-of-followed-authors ∪ own recipes
//
// Remaining filters are AND-conjuncts; page/limit must be normalized by the
// caller.
func buildFeedQuery(f repository.RecipeListFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(feedSelect)

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var conds []string
	switch {
	case f.ViewerID == 0:
		conds = append(conds, "r.visibility = "+arg(entity.VisibilityPublic))
	case f.Following:
		b.WriteString("\nJOIN follows f ON f.following_id = r.user_id")
		conds = append(conds, "f.follower_id = "+arg(f.ViewerID))
	default:
		pub := arg(entity.VisibilityPublic)
		friends := arg(entity.VisibilityFriends)
		viewer := arg(f.ViewerID)
		conds = append(conds, fmt.Sprintf(
			"(r.visibility = %s OR (r.visibility = %s AND EXISTS (SELECT 1 FROM follows WHERE follower_id = %s AND following_id = r.user_id)) OR r.user_id = %s)",
			pub, friends, viewer, viewer))
	}

	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conds = append(conds, fmt.Sprintf(
			"(r.title ILIKE %[1]s OR r.description ILIKE %[1]s OR r.ingredients ILIKE %[1]s OR r.tags ILIKE %[1]s)", p))
	}
	if f.Tags != "" {
		conds = append(conds, "r.tags ILIKE "+arg("%"+f.Tags+"%"))
	}
	if f.Difficulty != "" {
		conds = append(conds, "r.difficulty = "+arg(f.Difficulty))
	}
	if f.UserID != 0 {
		conds = append(conds, "r.user_id = "+arg(f.UserID))
	}

	b.WriteString("\nWHERE " + strings.Join(conds, " AND "))
	b.WriteString("\nGROUP BY r.id, u.id")
	b.WriteString("\nORDER BY r.created_at DESC, r.id ASC")
	b.WriteString("\nLIMIT " + arg(f.Limit) + " OFFSET " + arg((f.Page-1)*f.Limit))

	return b.String(), args
}

func scanFeedItem(row pgx.Row) (*entity.FeedItem, error) {
	it := &entity.FeedItem{}
	err := row.Scan(&it.ID, &it.UserID, &it.Title, &it.Description, &it.Ingredients,
		&it.Instructions, &it.VideoPath, &it.ImagePath, &it.CookingTime, &it.Servings,
		&it.Difficulty, &it.Visibility, &it.Tags, &it.CreatedAt,
		&it.Username, &it.FullName, &it.ProfileImage,
		&it.LikeCount, &it.CommentCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (r *RecipeRepository) List(ctx context.Context, f repository.RecipeListFilter) ([]entity.FeedItem, error) {
	sql, args := buildFeedQuery(f)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.FeedItem, 0)
	for rows.Next() {
		it, err := scanFeedItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *RecipeRepository) GetDetail(ctx context.Context, id int64) (*entity.FeedItem, error) {
	return scanFeedItem(r.pool.QueryRow(ctx, feedSelect+`
WHERE r.id = $1
GROUP BY r.id, u.id`, id))
}

func (r *RecipeRepository) Create(ctx context.Context, rec *entity.Recipe) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO recipes (user_id, title, description, ingredients, instructions,
			video_path, image_path, cooking_time, servings, difficulty, visibility, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`, rec.UserID, rec.Title, rec.Description, rec.Ingredients, rec.Instructions,
		rec.VideoPath, rec.ImagePath, rec.CookingTime, rec.Servings,
		rec.Difficulty, rec.Visibility, rec.Tags)

	return row.Scan(&rec.ID, &rec.CreatedAt)
}

func (r *RecipeRepository) GetOwned(ctx context.Context, id, userID int64) (*entity.Recipe, error) {
	rec := &entity.Recipe{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, title, description, ingredients, instructions,
		       video_path, image_path, cooking_time, servings, difficulty,
		       visibility, tags, created_at
		FROM recipes
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Description,
		&rec.Ingredients, &rec.Instructions, &rec.VideoPath, &rec.ImagePath,
		&rec.CookingTime, &rec.Servings, &rec.Difficulty, &rec.Visibility,
		&rec.Tags, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *RecipeRepository) Update(ctx context.Context, rec *entity.Recipe) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE recipes SET
			title = $1, description = $2, ingredients = $3, instructions = $4,
			video_path = $5, image_path = $6, cooking_time = $7, servings = $8,
			difficulty = $9, visibility = $10, tags = $11
		WHERE id = $12
	`, rec.Title, rec.Description, rec.Ingredients, rec.Instructions,
		rec.VideoPath, rec.ImagePath, rec.CookingTime, rec.Servings,
		rec.Difficulty, rec.Visibility, rec.Tags, rec.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) LikedSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return liked, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT recipe_id FROM likes WHERE user_id = $1 AND recipe_id = ANY($2)
	`, userID, recipeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		liked[id] = true
	}
	return liked, rows.Err()
}

func (r *RecipeRepository) IsLiked(ctx context.Context, userID, recipeID int64) (bool, error) {
	var liked bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND recipe_id = $2)
	`, userID, recipeID).Scan(&liked)
	return liked, err
}

func (r *RecipeRepository) InsertLike(ctx context.Context, userID, recipeID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO likes (user_id, recipe_id) VALUES ($1, $2)
	`, userID, recipeID)
	return err
}

func (r *RecipeRepository) DeleteLike(ctx context.Context, userID, recipeID int64) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM likes WHERE user_id = $1 AND recipe_id = $2
	`, userID, recipeID)
	return err
}

func (r *RecipeRepository) InsertComment(ctx context.Context, userID, recipeID int64, content string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (user_id, recipe_id, content) VALUES ($1, $2, $3)
		RETURNING id
	`, userID, recipeID, content).Scan(&id)
	return id, err
}

func (r *RecipeRepository) GetComment(ctx context.Context, id int64) (*entity.Comment, error) {
	c := &entity.Comment{}
	err := r.pool.QueryRow(ctx, `
		SELECT c.id, c.user_id, c.recipe_id, c.content, c.created_at,
		       u.username, u.full_name, u.profile_image
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`, id).Scan(&c.ID, &c.UserID, &c.RecipeID, &c.Content, &c.CreatedAt,
		&c.Username, &c.FullName, &c.ProfileImage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *RecipeRepository) ListComments(ctx context.Context, recipeID int64) ([]entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.user_id, c.recipe_id, c.content, c.created_at,
		       u.username, u.full_name, u.profile_image
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.recipe_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Comment, 0)
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.RecipeID, &c.Content, &c.CreatedAt,
			&c.Username, &c.FullName, &c.ProfileImage); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)
