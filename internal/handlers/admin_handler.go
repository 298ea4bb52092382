package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mini-instagram/backend/internal/repositories"
	"gorm.io/gorm"
)

// AdminHandler handles staff-only moderation requests
type AdminHandler struct {
	userRepository    repositories.UserRepository
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *AdminHandler {
	return &AdminHandler{
		userRepository:    userRepo,
		postRepository:    postRepo,
		commentRepository: commentRepo,
	}
}

// RegisterAdminRoutes registers the staff-gated moderation routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.POST("/users/:id/ban", h.BanUser)
	g.POST("/users/:id/unban", h.UnbanUser)
	g.GET("/posts", h.ListPosts)
	g.POST("/posts/:id/hide", h.ToggleHidePost)
	g.GET("/comments", h.ListComments)
}

// ListUsers returns every account, banned included
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// BanUser deactivates an account
func (h *AdminHandler) BanUser(c echo.Context) error {
	return h.setActive(c, false, "User banned")
}

// UnbanUser reactivates an account
func (h *AdminHandler) UnbanUser(c echo.Context) error {
	return h.setActive(c, true, "User unbanned")
}

func (h *AdminHandler) setActive(c echo.Context, active bool, message string) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.userRepository.SetActive(uint(userID), active); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message})
}

// ListPosts returns every post, hidden included
func (h *AdminHandler) ListPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// ToggleHidePost flips the visibility flag on a post. The post is kept in
// storage; hiding only removes it from public listings and feeds.
func (h *AdminHandler) ToggleHidePost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	hidden := !post.IsHidden
	if err := h.postRepository.SetHidden(c.Request().Context(), post.ID.Hex(), hidden); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	message := "Post hidden"
	if !hidden {
		message = "Post unhidden"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message, "is_hidden": hidden})
}

// ListComments returns every comment, newest first
func (h *AdminHandler) ListComments(c echo.Context) error {
	comments, err := h.commentRepository.GetAllComments()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, comments)
}
