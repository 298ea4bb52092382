package services

import (
	"fmt"
	"log"

	"github.com/mini-instagram/backend/internal/models"
	"github.com/mini-instagram/backend/internal/repositories"
)

// Dispatcher turns graph and content mutations into persisted notifications.
// Handlers call it explicitly at the end of each mutating operation; it is
// never driven by a client request directly. Every Notify method suppresses
// self-notification and swallows storage errors so the triggering mutation
// still succeeds.
type Dispatcher struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *Dispatcher {
	return &Dispatcher{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

// NotifyLike records a "like" notification for the post's author
func (d *Dispatcher) NotifyLike(senderID uint, post *models.Post) {
	if senderID == post.AuthorID {
		return
	}
	postID := post.ID.Hex()
	d.create(&models.Notification{
		Type:        models.NotificationTypeLike,
		SenderID:    &senderID,
		RecipientID: post.AuthorID,
		Message:     fmt.Sprintf("%s liked your post", d.senderName(senderID)),
		PostID:      &postID,
	})
}

// NotifyComment records a "comment" notification for the post's author
func (d *Dispatcher) NotifyComment(senderID uint, post *models.Post, comment *models.Comment) {
	if senderID == post.AuthorID {
		return
	}
	postID := post.ID.Hex()
	d.create(&models.Notification{
		Type:        models.NotificationTypeComment,
		SenderID:    &senderID,
		RecipientID: post.AuthorID,
		Message:     fmt.Sprintf("%s commented on your post", d.senderName(senderID)),
		PostID:      &postID,
		CommentID:   &comment.ID,
	})
}

// NotifyFollow records a "follow" notification for the followed user.
// The self-follow guard upstream makes sender == recipient structurally
// impossible here, but it is checked anyway.
func (d *Dispatcher) NotifyFollow(senderID, recipientID uint) {
	if senderID == recipientID {
		return
	}
	d.create(&models.Notification{
		Type:        models.NotificationTypeFollow,
		SenderID:    &senderID,
		RecipientID: recipientID,
		Message:     fmt.Sprintf("%s started following you", d.senderName(senderID)),
	})
}

func (d *Dispatcher) senderName(senderID uint) string {
	user, err := d.userRepository.GetUserByID(senderID)
	if err != nil {
		return "Someone"
	}
	return user.Username
}

func (d *Dispatcher) create(notification *models.Notification) {
	if err := d.notificationRepository.CreateNotification(notification); err != nil {
		log.Printf("dispatcher: failed to create %s notification for user %d: %v",
			notification.Type, notification.RecipientID, err)
	}
}
