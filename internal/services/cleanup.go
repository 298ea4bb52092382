package services

import (
	"context"
	"log"

	"github.com/mini-instagram/backend/internal/models"
	"github.com/mini-instagram/backend/internal/repositories"
)

// Cleaner orchestrates the cascade deletes that cross the Postgres/Mongo
// boundary: deleting a user removes their profile, edges, content and
// notifications; deleting a post removes its comments, likes and
// notifications; deleting a comment removes its reply subtree.
type Cleaner struct {
	userRepository         repositories.UserRepository
	profileRepository      repositories.ProfileRepository
	followRepository       repositories.FollowRepository
	postRepository         repositories.PostRepository
	commentRepository      repositories.CommentRepository
	likeRepository         repositories.LikeRepository
	notificationRepository repositories.NotificationRepository
}

// NewCleaner creates a new Cleaner
func NewCleaner(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	followRepo repositories.FollowRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository,
	notifRepo repositories.NotificationRepository,
) *Cleaner {
	return &Cleaner{
		userRepository:         userRepo,
		profileRepository:      profileRepo,
		followRepository:       followRepo,
		postRepository:         postRepo,
		commentRepository:      commentRepo,
		likeRepository:         likeRepo,
		notificationRepository: notifRepo,
	}
}

// DeletePost removes a post and everything that references it
func (c *Cleaner) DeletePost(ctx context.Context, postID string) error {
	commentIDs, err := c.commentRepository.DeleteByPostID(postID)
	if err != nil {
		return err
	}
	if err := c.likeRepository.DeleteByPostID(postID); err != nil {
		return err
	}
	if err := c.notificationRepository.DeleteByPostID(postID); err != nil {
		return err
	}
	if err := c.notificationRepository.DeleteByCommentIDs(commentIDs); err != nil {
		return err
	}
	return c.postRepository.DeletePost(ctx, postID)
}

// DeleteComment removes a comment, its reply subtree, and the notifications
// referencing any of them. The comment counter on the post drops only by
// the number of removed comments that still exist.
func (c *Cleaner) DeleteComment(ctx context.Context, comment *models.Comment) error {
	ids, err := c.commentRepository.DeleteWithReplies(comment.ID)
	if err != nil {
		return err
	}
	if err := c.notificationRepository.DeleteByCommentIDs(ids); err != nil {
		return err
	}
	if err := c.postRepository.IncrementCommentsCount(ctx, comment.PostID, -len(ids)); err != nil {
		// Counter drift is tolerable; the post may already be gone.
		log.Printf("cleanup: failed to adjust comment counter on post %s: %v", comment.PostID, err)
	}
	return nil
}

// DeleteUser removes an account and everything it owns: profile, follow
// edges in both directions, authored posts with their dependents, comments,
// likes, and notifications sent or received.
func (c *Cleaner) DeleteUser(ctx context.Context, userID uint) error {
	postIDs, err := c.postRepository.DeleteByAuthorID(ctx, userID)
	if err != nil {
		return err
	}
	for _, postID := range postIDs {
		commentIDs, err := c.commentRepository.DeleteByPostID(postID)
		if err != nil {
			return err
		}
		if err := c.notificationRepository.DeleteByCommentIDs(commentIDs); err != nil {
			return err
		}
		if err := c.likeRepository.DeleteByPostID(postID); err != nil {
			return err
		}
		if err := c.notificationRepository.DeleteByPostID(postID); err != nil {
			return err
		}
	}

	if err := c.commentRepository.DeleteByUserID(userID); err != nil {
		return err
	}
	if err := c.likeRepository.DeleteByUserID(userID); err != nil {
		return err
	}
	if err := c.followRepository.DeleteByUserID(userID); err != nil {
		return err
	}
	if err := c.notificationRepository.DeleteByRecipientID(userID); err != nil {
		return err
	}
	if err := c.notificationRepository.DeleteBySenderID(userID); err != nil {
		return err
	}
	if err := c.profileRepository.DeleteByUserID(userID); err != nil {
		return err
	}
	return c.userRepository.DeleteUser(userID)
}
