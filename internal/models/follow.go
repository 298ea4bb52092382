package models

import "time"

// Follow is a directed edge of the social graph: follower -> following.
// The composite unique index gives the edge set semantics; followers are
// the reverse view of the same relation.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
