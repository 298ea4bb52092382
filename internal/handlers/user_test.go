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

func TestUpdateMyProfilePartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t, "alice")

	body := `{"bio":"photographer","gender":"F"}`
	c, rec := env.request(http.MethodPut, "/users/me/profile", body, id)
	require.NoError(t, env.users.UpdateMyProfile(c))

	var profile models.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "photographer", profile.Bio)
	assert.Equal(t, "F", profile.Gender)

	// Omitted fields survive the next update.
	c, rec = env.request(http.MethodPut, "/users/me/profile", `{"avatar":"https://img.example.com/a.png"}`, id)
	require.NoError(t, env.users.UpdateMyProfile(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "photographer", profile.Bio)
	assert.Equal(t, "https://img.example.com/a.png", profile.Avatar)
}

func TestGetUserProfileIncludesFollowCounts(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")
	bobID := env.register(t, "bob")
	carolID := env.register(t, "carol")

	_, err := env.toggleFollow(t, bobID, "alice")
	require.NoError(t, err)
	_, err = env.toggleFollow(t, carolID, "alice")
	require.NoError(t, err)
	_, err = env.toggleFollow(t, bobID, "carol")
	require.NoError(t, err)

	c, rec := env.request(http.MethodGet, "/users/alice", "", 0)
	c.SetParamNames("username")
	c.SetParamValues("alice")
	require.NoError(t, env.users.GetUserProfile(c))

	var view models.ProfileView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "alice", view.User.Username)
	assert.EqualValues(t, 2, view.FollowersCount)
	assert.EqualValues(t, 0, view.FollowingCount)
}

func TestGetUserProfileUnknownIs404(t *testing.T) {
	env := newTestEnv(t)
	c, _ := env.request(http.MethodGet, "/users/ghost", "", 0)
	c.SetParamNames("username")
	c.SetParamValues("ghost")
	err := env.users.GetUserProfile(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(err))
}

func TestGetUserPostsOmitsHiddenOnes(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	env.posts.add(alice.ID, "public", 0, time.Now())
	hidden := env.posts.add(alice.ID, "moderated", 0, time.Now())
	require.NoError(t, env.posts.SetHidden(context.Background(), hidden.ID.Hex(), true))

	c, rec := env.request(http.MethodGet, "/users/alice/posts", "", 0)
	c.SetParamNames("username")
	c.SetParamValues("alice")
	require.NoError(t, env.users.GetUserPosts(c))

	var posts []models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "public", posts[0].Caption)
}

func TestGetMyStatsAggregatesCounts(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.register(t, "alice")
	bobID := env.register(t, "bob")
	carolID := env.register(t, "carol")

	postID := env.createPost(t, aliceID, "one")
	env.createPost(t, aliceID, "two")
	_, err := env.toggleLike(t, bobID, postID)
	require.NoError(t, err)
	_, err = env.toggleLike(t, carolID, postID)
	require.NoError(t, err)
	_, err = env.toggleFollow(t, bobID, "alice")
	require.NoError(t, err)
	_, err = env.toggleFollow(t, aliceID, "carol")
	require.NoError(t, err)

	c, rec := env.request(http.MethodGet, "/users/me/stats", "", aliceID)
	require.NoError(t, env.users.GetMyStats(c))

	var stats map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats["posts_count"])
	assert.Equal(t, 1, stats["followers_count"])
	assert.Equal(t, 1, stats["following_count"])
	assert.Equal(t, 2, stats["likes_received"])
}

func TestSearchUsersMatchesSubstring(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")
	env.createUser(t, "alicia")
	env.createUser(t, "bob")

	c, rec := env.request(http.MethodGet, "/users/search?q=ali", "", 0)
	require.NoError(t, env.users.SearchUsers(c))

	var results []models.UserCompact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	names := []string{}
	for _, r := range results {
		names = append(names, r.Username)
	}
	assert.ElementsMatch(t, []string{"alice", "alicia"}, names)

	c, _ = env.request(http.MethodGet, "/users/search", "", 0)
	err := env.users.SearchUsers(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(err))
}
