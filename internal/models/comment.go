package models

import "time"

// Comment represents a comment on a post (PostgreSQL). ParentID threads a
// reply under another comment of the same post; the chain is unbounded,
// default queries surface only top-level comments.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index"` // MongoDB ObjectID as string
	UserID    uint      `json:"user_id" gorm:"index"`
	ParentID  *uint     `json:"parent_id,omitempty" gorm:"index"`
	Content   string    `json:"content" validate:"required,min=1,max=500"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// CommentView is a comment enriched with its author and reply count
type CommentView struct {
	Comment
	Author       UserCompact `json:"author"`
	RepliesCount int64       `json:"replies_count"`
}
