package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a post document stored in MongoDB. AuthorID is immutable
// after creation. IsHidden is the admin visibility flag; hidden posts stay
// in storage but are excluded from public listings and feeds.
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID      uint               `json:"author_id" bson:"author_id"`
	Caption       string             `json:"caption" bson:"caption"`
	ImageURL      string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	LikesCount    int                `json:"likes_count" bson:"likes_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	IsHidden      bool               `json:"is_hidden" bson:"is_hidden"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Caption  string `json:"caption" validate:"required,min=1,max=2200"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Caption  string `json:"caption,omitempty" validate:"omitempty,min=1,max=2200"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}
