package models

import "time"

// Profile is the social identity attached 1:1 to a User (PostgreSQL).
// Following/followers are views over the follows edge table, not stored here.
type Profile struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"uniqueIndex"`
	Avatar    string     `json:"avatar,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	Gender    string     `json:"gender,omitempty" gorm:"size:10"` // "M" or "F"
	BirthDay  *time.Time `json:"birth_day,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// UpdateProfileRequest defines the request body for editing one's own profile
type UpdateProfileRequest struct {
	Avatar   string     `json:"avatar,omitempty" validate:"omitempty,url"`
	Bio      string     `json:"bio,omitempty" validate:"omitempty,max=500"`
	Gender   string     `json:"gender,omitempty" validate:"omitempty,oneof=M F"`
	BirthDay *time.Time `json:"birth_day,omitempty"`
}

// ProfileView is a profile enriched with its user and graph counts
type ProfileView struct {
	Profile
	User           UserCompact `json:"user"`
	FollowersCount int64       `json:"followers_count"`
	FollowingCount int64       `json:"following_count"`
}
