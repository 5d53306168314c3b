package entity

import "time"

// Follow is a directed edge meaning follower sees the followed user's
// friends-visibility recipes. Unique per (follower, following) pair.
type Follow struct {
	ID          int64     `json:"id"`
	FollowerID  int64     `json:"followerId"`
	FollowingID int64     `json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}
