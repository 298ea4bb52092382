package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/mini-instagram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) toggleLike(t *testing.T, callerID uint, postID string) (map[string]interface{}, error) {
	t.Helper()
	c, rec := env.request(http.MethodPost, "/posts/"+postID+"/like", "", callerID)
	c.SetParamNames("id")
	c.SetParamValues(postID)
	if err := env.likes.ToggleLike(c); err != nil {
		return nil, err
	}
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload, nil
}

func TestToggleLikeAdjustsCounterBothWays(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	liker := env.createUser(t, "liker")
	post := env.posts.add(author.ID, "sunset", 0, time.Now())
	postID := post.ID.Hex()

	payload, err := env.toggleLike(t, liker.ID, postID)
	require.NoError(t, err)
	assert.Equal(t, "Post liked", payload["message"])
	assert.Equal(t, true, payload["is_liked"])

	stored, err := env.posts.GetPostByID(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.LikesCount)

	payload, err = env.toggleLike(t, liker.ID, postID)
	require.NoError(t, err)
	assert.Equal(t, "Post unliked", payload["message"])
	assert.Equal(t, false, payload["is_liked"])

	stored, err = env.posts.GetPostByID(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.LikesCount)

	liked, err := env.likeRepo.HasUserLikedPost(postID, liker.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestToggleLikeNotifiesAuthorOnLikeOnly(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	liker := env.createUser(t, "liker")
	post := env.posts.add(author.ID, "sunset", 0, time.Now())

	_, err := env.toggleLike(t, liker.ID, post.ID.Hex())
	require.NoError(t, err)

	notifications, err := env.notifRepo.GetByRecipientID(author.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeLike, notifications[0].Type)

	// Unliking does not retract the notification or add a new one.
	_, err = env.toggleLike(t, liker.ID, post.ID.Hex())
	require.NoError(t, err)
	notifications, err = env.notifRepo.GetByRecipientID(author.ID)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestToggleLikeOwnPostCreatesNoNotification(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	post := env.posts.add(author.ID, "sunset", 0, time.Now())

	payload, err := env.toggleLike(t, author.ID, post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, true, payload["is_liked"])

	notifications, err := env.notifRepo.GetByRecipientID(author.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestToggleLikeHiddenPostIs404(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	liker := env.createUser(t, "liker")
	post := env.posts.add(author.ID, "hidden", 0, time.Now())
	require.NoError(t, env.posts.SetHidden(context.Background(), post.ID.Hex(), true))

	_, err := env.toggleLike(t, liker.ID, post.ID.Hex())
	assert.Equal(t, http.StatusNotFound, httpStatus(err))
}

func TestToggleLikeUnknownPostIs404(t *testing.T) {
	env := newTestEnv(t)
	liker := env.createUser(t, "liker")

	_, err := env.toggleLike(t, liker.ID, "64f0c2b7a1b2c3d4e5f60718")
	assert.Equal(t, http.StatusNotFound, httpStatus(err))
}

func TestGetLikesCountHiddenPostIs404(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	liker := env.createUser(t, "liker")
	post := env.posts.add(author.ID, "sunset", 0, time.Now())
	postID := post.ID.Hex()

	_, err := env.toggleLike(t, liker.ID, postID)
	require.NoError(t, err)
	require.NoError(t, env.posts.SetHidden(context.Background(), postID, true))

	c, _ := env.request(http.MethodGet, "/posts/"+postID+"/likes/count", "", 0)
	c.SetParamNames("id")
	c.SetParamValues(postID)
	err = env.likes.GetLikesCount(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(err))
}

func TestGetLikesCount(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	post := env.posts.add(author.ID, "sunset", 0, time.Now())
	postID := post.ID.Hex()

	for _, name := range []string{"u1", "u2", "u3"} {
		u := env.createUser(t, name)
		_, err := env.toggleLike(t, u.ID, postID)
		require.NoError(t, err)
	}

	c, rec := env.request(http.MethodGet, "/posts/"+postID+"/likes/count", "", 0)
	c.SetParamNames("id")
	c.SetParamValues(postID)
	require.NoError(t, env.likes.GetLikesCount(c))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.EqualValues(t, 3, payload["likes_count"])
	assert.Equal(t, postID, payload["post_id"])
}
