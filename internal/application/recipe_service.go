package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/receipegram/backend/internal/domain/entity"
	"github.com/receipegram/backend/internal/domain/repository"
	"github.com/receipegram/backend/pkg/media"
)

var (
	ErrRecipeNotFound  = errors.New("recipe not found or access denied")
	ErrMissingRequired = errors.New("title, ingredients, and instructions are required")
	ErrEmptyComment    = errors.New("comment content is required")
)

// RecipeService is the feed query engine plus recipe CRUD and engagement.
type RecipeService struct {
	Recipes repository.RecipeRepository
	Media   media.Store
	Logger  *logrus.Logger
}

func NewRecipeService(recipes repository.RecipeRepository, store media.Store, logger *logrus.Logger) *RecipeService {
	return &RecipeService{Recipes: recipes, Media: store, Logger: logger}
}

// FeedInput mirrors the list endpoint's query parameters. ViewerID zero
// means anonymous; token verification failures upstream degrade to zero.
type FeedInput struct {
	Page       int
	Limit      int
	Search     string
	Tags       string
	Difficulty string
	UserID     int64
	Following  bool
	ViewerID   int64
}

// Feed returns one page of the visibility-scoped feed, newest first. When
// the viewer is authenticated, the page's isLiked flags are resolved with a
// single batched lookup keyed on the returned ids — never per row.
func (s *RecipeService) Feed(ctx context.Context, in FeedInput) ([]entity.FeedItem, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = 10
	}
	items, err := s.Recipes.List(ctx, repository.RecipeListFilter{
		Page:       in.Page,
		Limit:      in.Limit,
		Search:     in.Search,
		Tags:       in.Tags,
		Difficulty: in.Difficulty,
		UserID:     in.UserID,
		Following:  in.Following,
		ViewerID:   in.ViewerID,
	})
	if err != nil {
		return nil, err
	}
	if in.ViewerID != 0 && len(items) > 0 {
		ids := make([]int64, len(items))
		for i := range items {
			ids[i] = items[i].ID
		}
		liked, err := s.Recipes.LikedSet(ctx, in.ViewerID, ids)
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].IsLiked = liked[items[i].ID]
		}
	}
	return items, nil
}

// Detail fetches a recipe by id with author and aggregates. Any visibility
// is fetchable by direct id; viewers only affect the isLiked flag.
func (s *RecipeService) Detail(ctx context.Context, id, viewerID int64) (*entity.FeedItem, error) {
	item, err := s.Recipes.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if viewerID != 0 {
		liked, err := s.Recipes.IsLiked(ctx, viewerID, id)
		if err != nil {
			return nil, err
		}
		item.IsLiked = liked
	}
	return item, nil
}

type CreateRecipeInput struct {
	UserID       int64
	Title        string
	Description  string
	Ingredients  string
	Instructions string
	VideoPath    *string
	ImagePath    *string
	CookingTime  *int
	Servings     *int
	Difficulty   string
	Visibility   string
	Tags         string
}

func (s *RecipeService) Create(ctx context.Context, in CreateRecipeInput) (*entity.FeedItem, error) {
	if in.Title == "" || in.Ingredients == "" || in.Instructions == "" {
		return nil, ErrMissingRequired
	}
	if in.Difficulty == "" {
		in.Difficulty = entity.DefaultDifficulty
	}
	if in.Visibility == "" {
		in.Visibility = entity.VisibilityPublic
	}
	rec := &entity.Recipe{
		UserID:       in.UserID,
		Title:        in.Title,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		VideoPath:    in.VideoPath,
		ImagePath:    in.ImagePath,
		CookingTime:  in.CookingTime,
		Servings:     in.Servings,
		Difficulty:   in.Difficulty,
		Visibility:   in.Visibility,
		Tags:         in.Tags,
	}
	if err := s.Recipes.Create(ctx, rec); err != nil {
		return nil, err
	}
	return s.Recipes.GetDetail(ctx, rec.ID)
}

// UpdateRecipeInput carries only the fields present in the request. Nil
// pointers keep the stored value; for Title/Ingredients/Instructions/
// Difficulty/Visibility an empty string also keeps it.
type UpdateRecipeInput struct {
	Title        string
	Description  *string
	Ingredients  string
	Instructions string
	VideoPath    *string
	ImagePath    *string
	CookingTime  *int
	Servings     *int
	Difficulty   string
	Visibility   string
	Tags         *string
}

func (s *RecipeService) Update(ctx context.Context, userID, id int64, in UpdateRecipeInput) (*entity.FeedItem, error) {
	rec, err := s.Recipes.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if in.Title != "" {
		rec.Title = in.Title
	}
	if in.Description != nil {
		rec.Description = *in.Description
	}
	if in.Ingredients != "" {
		rec.Ingredients = in.Ingredients
	}
	if in.Instructions != "" {
		rec.Instructions = in.Instructions
	}
	if in.VideoPath != nil {
		rec.VideoPath = in.VideoPath
	}
	if in.ImagePath != nil {
		rec.ImagePath = in.ImagePath
	}
	if in.CookingTime != nil {
		rec.CookingTime = in.CookingTime
	}
	if in.Servings != nil {
		rec.Servings = in.Servings
	}
	if in.Difficulty != "" {
		rec.Difficulty = in.Difficulty
	}
	if in.Visibility != "" {
		rec.Visibility = in.Visibility
	}
	if in.Tags != nil {
		rec.Tags = *in.Tags
	}

	if err := s.Recipes.Update(ctx, rec); err != nil {
		return nil, err
	}
	return s.Recipes.GetDetail(ctx, rec.ID)
}

// Delete removes an owned recipe row, then removes its media files
// best-effort: a failed file removal is logged, never surfaced.
func (s *RecipeService) Delete(ctx context.Context, userID, id int64) error {
	rec, err := s.Recipes.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	if err := s.Recipes.Delete(ctx, id); err != nil {
		return err
	}
	s.removeMedia(ctx, rec.VideoPath)
	s.removeMedia(ctx, rec.ImagePath)
	return nil
}

func (s *RecipeService) removeMedia(ctx context.Context, ref *string) {
	if ref == nil || *ref == "" || s.Media == nil {
		return
	}
	if err := s.Media.Remove(ctx, *ref); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("media", *ref).Warn("media removal failed")
	}
}

// ToggleLike flips the like edge for (user, recipe). The check and the
// write are two statements; a concurrent duplicate insert surfaces the
// unique-constraint error to the caller.
func (s *RecipeService) ToggleLike(ctx context.Context, userID, recipeID int64) (bool, error) {
	liked, err := s.Recipes.IsLiked(ctx, userID, recipeID)
	if err != nil {
		return false, err
	}
	if liked {
		if err := s.Recipes.DeleteLike(ctx, userID, recipeID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.Recipes.InsertLike(ctx, userID, recipeID); err != nil {
		return false, err
	}
	return true, nil
}

// AddComment rejects empty or whitespace-only content before any write,
// then returns the stored row joined with its author.
func (s *RecipeService) AddComment(ctx context.Context, userID, recipeID int64, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	id, err := s.Recipes.InsertComment(ctx, userID, recipeID, content)
	if err != nil {
		return nil, err
	}
	return s.Recipes.GetComment(ctx, id)
}

func (s *RecipeService) Comments(ctx context.Context, recipeID int64) ([]entity.Comment, error) {
	return s.Recipes.ListComments(ctx, recipeID)
}
