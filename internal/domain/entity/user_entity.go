package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash, never plaintext.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	FullName     string    `json:"fullName"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserSummary is the compact user projection used in follower lists,
// comment authors, and search results.
type UserSummary struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	ProfileImage string `json:"profileImage"`
	Bio          string `json:"bio,omitempty"`
}

// UserStats carries the derived counters shown on a public profile.
type UserStats struct {
	RecipeCount    int64 `json:"recipeCount"`
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
}
