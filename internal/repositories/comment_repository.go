package repositories

import (
	"github.com/mini-instagram/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetTopLevelByPostID(postID string) ([]models.Comment, error)
	GetReplies(parentID uint) ([]models.Comment, error)
	GetRepliesCount(parentID uint) (int64, error)
	GetAllComments() ([]models.Comment, error)
	UpdateComment(comment *models.Comment) error
	DeleteWithReplies(id uint) ([]uint, error)
	DeleteByPostID(postID string) ([]uint, error)
	DeleteByUserID(userID uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetTopLevelByPostID retrieves the top-level comments of a post, oldest first
func (r *PostgresCommentRepository) GetTopLevelByPostID(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ? AND parent_id IS NULL", postID).Order("created_at").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetReplies retrieves the direct replies to a comment, oldest first
func (r *PostgresCommentRepository) GetReplies(parentID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("parent_id = ?", parentID).Order("created_at").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetRepliesCount retrieves the number of direct replies to a comment
func (r *PostgresCommentRepository) GetRepliesCount(parentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}

// GetAllComments retrieves every comment, newest first
func (r *PostgresCommentRepository) GetAllComments() ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateComment updates an existing comment in PostgreSQL
func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// collectSubtree walks the reply tree breadth-first. Reply chains are
// unbounded, so the walk must not assume a fixed depth.
func (r *PostgresCommentRepository) collectSubtree(rootIDs []uint) ([]uint, error) {
	all := append([]uint{}, rootIDs...)
	frontier := rootIDs
	for len(frontier) > 0 {
		var children []uint
		if err := r.db.Model(&models.Comment{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
			return nil, err
		}
		all = append(all, children...)
		frontier = children
	}
	return all, nil
}

// DeleteWithReplies deletes a comment and its entire reply subtree,
// returning the IDs of every deleted comment.
func (r *PostgresCommentRepository) DeleteWithReplies(id uint) ([]uint, error) {
	ids, err := r.collectSubtree([]uint{id})
	if err != nil {
		return nil, err
	}
	if err := r.db.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteByPostID deletes every comment on a post, returning their IDs
func (r *PostgresCommentRepository) DeleteByPostID(postID string) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if err := r.db.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteByUserID deletes every comment authored by a user
func (r *PostgresCommentRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Comment{}).Error
}
