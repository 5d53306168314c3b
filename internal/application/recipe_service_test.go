package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receipegram/backend/internal/domain/entity"
	"github.com/receipegram/backend/internal/domain/repository"
)

// fakeRecipeRepo is an in-memory RecipeRepository. List applies only
// pagination; the SQL composition itself is covered in the postgres package.
type fakeRecipeRepo struct {
	nextID    int64
	recipes   map[int64]*entity.Recipe
	likes     map[[2]int64]bool
	comments  map[int64]*entity.Comment
	commentID int64
	lastList  repository.RecipeListFilter
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{
		recipes:  map[int64]*entity.Recipe{},
		likes:    map[[2]int64]bool{},
		comments: map[int64]*entity.Comment{},
	}
}

func (f *fakeRecipeRepo) Create(_ context.Context, r *entity.Recipe) error {
	f.nextID++
	r.ID = f.nextID
	cp := *r
	f.recipes[r.ID] = &cp
	return nil
}

func (f *fakeRecipeRepo) GetOwned(_ context.Context, id, userID int64) (*entity.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok || r.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRecipeRepo) Update(_ context.Context, r *entity.Recipe) error {
	if _, ok := f.recipes[r.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *r
	f.recipes[r.ID] = &cp
	return nil
}

func (f *fakeRecipeRepo) Delete(_ context.Context, id int64) error {
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) List(_ context.Context, filter repository.RecipeListFilter) ([]entity.FeedItem, error) {
	f.lastList = filter
	var out []entity.FeedItem
	for id := int64(1); id <= f.nextID; id++ {
		if r, ok := f.recipes[id]; ok {
			out = append(out, entity.FeedItem{Recipe: *r})
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) GetDetail(_ context.Context, id int64) (*entity.FeedItem, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entity.FeedItem{Recipe: *r}, nil
}

func (f *fakeRecipeRepo) LikedSet(_ context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	for _, id := range recipeIDs {
		if f.likes[[2]int64{userID, id}] {
			out[id] = true
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) IsLiked(_ context.Context, userID, recipeID int64) (bool, error) {
	return f.likes[[2]int64{userID, recipeID}], nil
}

func (f *fakeRecipeRepo) InsertLike(_ context.Context, userID, recipeID int64) error {
	f.likes[[2]int64{userID, recipeID}] = true
	return nil
}

func (f *fakeRecipeRepo) DeleteLike(_ context.Context, userID, recipeID int64) error {
	delete(f.likes, [2]int64{userID, recipeID})
	return nil
}

func (f *fakeRecipeRepo) InsertComment(_ context.Context, userID, recipeID int64, content string) (int64, error) {
	f.commentID++
	f.comments[f.commentID] = &entity.Comment{
		ID: f.commentID, UserID: userID, RecipeID: recipeID, Content: content,
	}
	return f.commentID, nil
}

func (f *fakeRecipeRepo) GetComment(_ context.Context, id int64) (*entity.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRecipeRepo) ListComments(_ context.Context, recipeID int64) ([]entity.Comment, error) {
	var out []entity.Comment
	for id := int64(1); id <= f.commentID; id++ {
		if c, ok := f.comments[id]; ok && c.RecipeID == recipeID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func seedRecipe(t *testing.T, repo *fakeRecipeRepo, userID int64, title string) *entity.Recipe {
	t.Helper()
	r := &entity.Recipe{
		UserID:       userID,
		Title:        title,
		Ingredients:  "x",
		Instructions: "y",
		Difficulty:   entity.DefaultDifficulty,
		Visibility:   entity.VisibilityPublic,
	}
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func TestFeed_NormalizesPagination(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, nil)

	_, err := svc.Feed(context.Background(), FeedInput{Page: -3, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastList.Page)
	assert.Equal(t, 10, repo.lastList.Limit)
}

func TestFeed_AnnotatesIsLikedForViewer(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, nil)
	ctx := context.Background()

	a := seedRecipe(t, repo, 1, "a")
	seedRecipe(t, repo, 1, "b")
	require.NoError(t, repo.InsertLike(ctx, 7, a.ID))

	items, err := svc.Feed(ctx, FeedInput{Page: 1, Limit: 10, ViewerID: 7})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].IsLiked)
	assert.False(t, items[1].IsLiked)
}

func TestFeed_AnonymousViewerSkipsLikeLookup(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, nil)
	ctx := context.Background()

	a := seedRecipe(t, repo, 1, "a")
	require.NoError(t, repo.InsertLike(ctx, 7, a.ID))

	items, err := svc.Feed(ctx, FeedInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsLiked)
}

func TestCreate_RequiresCoreFields(t *testing.T) {
	svc := NewRecipeService(newFakeRecipeRepo(), nil, nil)

	_, err := svc.Create(context.Background(), CreateRecipeInput{
		UserID: 1, Title: "t", Ingredients: "", Instructions: "i",
	})
	assert.ErrorIs(t, err, ErrMissingRequired)
}

func TestCreate_AppliesDefaults(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, nil)

	item, err := svc.Create(context.Background(), CreateRecipeInput{
		UserID: 1, Title: "t", Ingredients: "x", Instructions: "y",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultDifficulty, item.Difficulty)
	assert.Equal(t, entity.VisibilityPublic, item.Visibility)
}

func TestUpdate_MergesOnlyProvidedFields(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, nil)
	ctx := context.Background()

	r := seedRecipe(t, repo, 1, "original")
	r.Description = "keep me"
	require.NoError(t, repo.Update(ctx, r))

	newTags := "fast"
	item, err := svc.Update(ctx, 1, r.ID, UpdateRecipeInput{Title: "renamed", Tags: &newTags})
	require.NoError(t, err)
	assert.Equal(t, "renamed", item.Title)
	assert.Equal(t, "keep me", item.Description)
	assert.Equal(t, "fast", item.Tags)
	assert.Equal(t, "x", item.Ingredients)
}

func TestUpdate_RejectsForeignRecipe(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, nil)

	r := seedRecipe(t, repo, 1, "mine")
	_, err := svc.Update(context.Background(), 2, r.ID, UpdateRecipeInput{Title: "stolen"})
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestDelete_RejectsForeignRecipe(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, nil)

	r := seedRecipe(t, repo, 1, "mine")
	err := svc.Delete(context.Background(), 2, r.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	_, err = repo.GetDetail(context.Background(), r.ID)
	assert.NoError(t, err)
}

func TestToggleLike_RoundTrip(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, nil)
	ctx := context.Background()

	r := seedRecipe(t, repo, 1, "t")

	liked, err := svc.ToggleLike(ctx, 7, r.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.ToggleLike(ctx, 7, r.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = svc.ToggleLike(ctx, 7, r.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestAddComment_RejectsWhitespaceOnly(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, nil)
	r := seedRecipe(t, repo, 1, "t")

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := svc.AddComment(context.Background(), 7, r.ID, content)
		assert.ErrorIs(t, err, ErrEmptyComment)
	}
	assert.Empty(t, repo.comments)
}

func TestAddComment_TrimsAndStores(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, nil)
	r := seedRecipe(t, repo, 1, "t")

	c, err := svc.AddComment(context.Background(), 7, r.ID, "  looks great  ")
	require.NoError(t, err)
	assert.Equal(t, "looks great", c.Content)
	assert.Equal(t, int64(7), c.UserID)
}

func TestDetail_NotFound(t *testing.T) {
	svc := NewRecipeService(newFakeRecipeRepo(), nil, nil)
	_, err := svc.Detail(context.Background(), 99, 0)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestDetail_ResolvesIsLiked(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(repo, nil, nil)
	ctx := context.Background()

	r := seedRecipe(t, repo, 1, "t")
	require.NoError(t, repo.InsertLike(ctx, 7, r.ID))

	item, err := svc.Detail(ctx, r.ID, 7)
	require.NoError(t, err)
	assert.True(t, item.IsLiked)

	item, err = svc.Detail(ctx, r.ID, 0)
	require.NoError(t, err)
	assert.False(t, item.IsLiked)
}
