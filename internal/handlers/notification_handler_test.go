package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/mini-instagram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotification(t *testing.T, env *testEnv, senderID *uint, recipientID uint, message string) *models.Notification {
	t.Helper()
	n := &models.Notification{
		Type:        models.NotificationTypeFollow,
		SenderID:    senderID,
		RecipientID: recipientID,
		Message:     message,
	}
	require.NoError(t, env.notifRepo.CreateNotification(n))
	return n
}

func TestGetNotificationsIncludesSenderWhenPresent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	seedNotification(t, env, &alice.ID, bob.ID, "alice started following you")
	seedNotification(t, env, nil, bob.ID, "Welcome!")

	c, rec := env.request(http.MethodGet, "/notifications", "", bob.ID)
	require.NoError(t, env.notifications.GetNotifications(c))

	var payload []EnrichedNotification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload, 2)

	// Newest first, and the system notification carries no sender.
	assert.Equal(t, "Welcome!", payload[0].Message)
	assert.Nil(t, payload[0].Sender)
	assert.Equal(t, "alice started following you", payload[1].Message)
	require.NotNil(t, payload[1].Sender)
	assert.Equal(t, "alice", payload[1].Sender.Username)
}

func TestUnreadCountReflectsReadFlag(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	first := seedNotification(t, env, &alice.ID, bob.ID, "one")
	seedNotification(t, env, &alice.ID, bob.ID, "two")

	c, rec := env.request(http.MethodGet, "/notifications/unread-count", "", bob.ID)
	require.NoError(t, env.notifications.GetUnreadCount(c))
	var payload map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.EqualValues(t, 2, payload["unread_count"])

	require.NoError(t, env.notifRepo.MarkAsRead(first.ID, bob.ID))

	c, rec = env.request(http.MethodGet, "/notifications/unread-count", "", bob.ID)
	require.NoError(t, env.notifications.GetUnreadCount(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.EqualValues(t, 1, payload["unread_count"])
}

func TestMarkAsReadForeignNotificationIs404(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	mallory := env.createUser(t, "mallory")
	n := seedNotification(t, env, &alice.ID, bob.ID, "for bob")

	c, _ := env.request(http.MethodPatch, "/notifications/"+strconv.Itoa(int(n.ID))+"/read", "", mallory.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(n.ID)))
	err := env.notifications.MarkAsRead(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(err))

	// The flag must be untouched.
	var stored models.Notification
	require.NoError(t, env.db.First(&stored, n.ID).Error)
	assert.False(t, stored.IsRead)
}

func TestMarkAllAsReadReportsAffectedRows(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	seedNotification(t, env, &alice.ID, bob.ID, "one")
	seedNotification(t, env, &alice.ID, bob.ID, "two")

	c, rec := env.request(http.MethodPost, "/notifications/mark-all-read", "", bob.ID)
	require.NoError(t, env.notifications.MarkAllAsRead(c))
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.EqualValues(t, 2, payload["affected"])

	// Re-running affects nothing.
	c, rec = env.request(http.MethodPost, "/notifications/mark-all-read", "", bob.ID)
	require.NoError(t, env.notifications.MarkAllAsRead(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.EqualValues(t, 0, payload["affected"])
}

func TestDeleteNotificationIsRecipientScoped(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	mallory := env.createUser(t, "mallory")
	n := seedNotification(t, env, &alice.ID, bob.ID, "for bob")
	id := strconv.Itoa(int(n.ID))

	c, _ := env.request(http.MethodDelete, "/notifications/"+id, "", mallory.ID)
	c.SetParamNames("id")
	c.SetParamValues(id)
	err := env.notifications.DeleteNotification(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(err))

	c, rec := env.request(http.MethodDelete, "/notifications/"+id, "", bob.ID)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, env.notifications.DeleteNotification(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	remaining, err := env.notifRepo.GetByRecipientID(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
