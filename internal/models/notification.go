package models

import "time"

// Notification types. "mention" is reserved in the enumeration; no mutation
// currently produces it.
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
	NotificationTypeMention = "mention"
)

// Notification represents a user notification (PostgreSQL). Rows are created
// only by the dispatcher in reaction to a mutation and mutated only to flip
// IsRead. SenderID is nullable for system-generated notifications.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:20;index"`
	SenderID    *uint     `json:"sender_id,omitempty" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	PostID      *string   `json:"post_id,omitempty"`
	CommentID   *uint     `json:"comment_id,omitempty"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
