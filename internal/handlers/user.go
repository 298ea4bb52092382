package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mini-instagram/backend/internal/models"
	"github.com/mini-instagram/backend/internal/repositories"
	"gorm.io/gorm"
)

// UserHandler handles profile and user lookup HTTP requests
type UserHandler struct {
	userRepository    repositories.UserRepository
	profileRepository repositories.ProfileRepository
	followRepository  repositories.FollowRepository
	postRepository    repositories.PostRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository, followRepo repositories.FollowRepository, postRepo repositories.PostRepository) *UserHandler {
	return &UserHandler{
		userRepository:    userRepo,
		profileRepository: profileRepo,
		followRepository:  followRepo,
		postRepository:    postRepo,
	}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/me/profile", h.GetMyProfile)
	g.PUT("/users/me/profile", h.UpdateMyProfile)
	g.GET("/users/me/stats", h.GetMyStats)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:username", h.GetUserProfile)
	g.GET("/users/:username/posts", h.GetUserPosts)
}

func (h *UserHandler) profileView(user *models.User) (*models.ProfileView, error) {
	profile, err := h.profileRepository.GetProfileByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	followersCount, err := h.followRepository.GetFollowersCount(user.ID)
	if err != nil {
		return nil, err
	}
	followingCount, err := h.followRepository.GetFollowingCount(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.ProfileView{
		Profile:        *profile,
		User:           user.ToCompact(),
		FollowersCount: followersCount,
		FollowingCount: followingCount,
	}, nil
}

// GetMyProfile retrieves the authenticated user's profile
func (h *UserHandler) GetMyProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
	}
	view, err := h.profileView(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateMyProfile updates the authenticated user's profile
func (h *UserHandler) UpdateMyProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileRepository.GetProfileByUserID(currentUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Avatar != "" {
		profile.Avatar = req.Avatar
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.BirthDay != nil {
		profile.BirthDay = req.BirthDay
	}

	if err := h.profileRepository.UpdateProfile(profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}

// GetUserProfile retrieves another user's profile by username
func (h *UserHandler) GetUserProfile(c echo.Context) error {
	username := c.Param("username")

	user, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	view, err := h.profileView(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// GetUserPosts retrieves the visible posts authored by a user
func (h *UserHandler) GetUserPosts(c echo.Context) error {
	username := c.Param("username")

	user, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts, err := h.postRepository.GetPostsByAuthorID(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// GetMyStats returns aggregate counts for the authenticated user
func (h *UserHandler) GetMyStats(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	posts, err := h.postRepository.GetPostsByAuthorID(c.Request().Context(), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	likesReceived := 0
	for _, p := range posts {
		likesReceived += p.LikesCount
	}

	followersCount, err := h.followRepository.GetFollowersCount(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	followingCount, err := h.followRepository.GetFollowingCount(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts_count":     len(posts),
		"followers_count": followersCount,
		"following_count": followingCount,
		"likes_received":  likesReceived,
	})
}

// SearchUsers finds users by username or email substring
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.UserCompact, len(users))
	for i, u := range users {
		results[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, results)
}
