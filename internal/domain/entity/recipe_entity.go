package entity

import (
	"time"
)

// Recipe visibility scopes.
const (
	VisibilityPublic  = "public"
	VisibilityFriends = "friends"
)

// DefaultDifficulty is the only enforced difficulty value; anything else is
// accepted as free text.
const DefaultDifficulty = "medium"

// Recipe is a stored recipe row. Media paths are filenames under the media
// store, nil when no file was uploaded. Engagement counts are never stored
// here; they are derived at query time.
type Recipe struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Ingredients  string    `json:"ingredients"`
	Instructions string    `json:"instructions"`
	VideoPath    *string   `json:"videoPath"`
	ImagePath    *string   `json:"imagePath"`
	CookingTime  *int      `json:"cookingTime"`
	Servings     *int      `json:"servings"`
	Difficulty   string    `json:"difficulty"`
	Visibility   string    `json:"visibility"`
	Tags         string    `json:"tags"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FeedItem is a recipe joined with its author and annotated with live
// engagement aggregates plus the viewer-specific isLiked flag.
type FeedItem struct {
	Recipe
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	ProfileImage string `json:"profileImage"`
	LikeCount    int64  `json:"likeCount"`
	CommentCount int64  `json:"commentCount"`
	IsLiked      bool   `json:"isLiked"`
}

// Comment is an append-only comment row joined with its author.
type Comment struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	RecipeID     int64     `json:"recipeId"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullName"`
	ProfileImage string    `json:"profileImage"`
}
