package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mini-instagram/backend/internal/models"
	"github.com/mini-instagram/backend/internal/repositories"
	"github.com/mini-instagram/backend/internal/services"
)

// PostHandler handles post CRUD HTTP requests
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	cleaner        *services.Cleaner
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, cleaner *services.Cleaner) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		cleaner:        cleaner,
	}
}

// RegisterPostRoutes registers the authenticated post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// RegisterPublicPostRoutes registers the read-only post routes
func (h *PostHandler) RegisterPublicPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/search", h.SearchPosts)
	g.GET("/posts/:id", h.GetPost)
}

// EnrichedPost is a post with its author's compact representation
type EnrichedPost struct {
	models.Post
	Author models.UserCompact `json:"author"`
}

func (h *PostHandler) enrichPosts(posts []models.Post) []EnrichedPost {
	enriched := make([]EnrichedPost, len(posts))
	userCache := make(map[uint]models.UserCompact)
	for i, p := range posts {
		enriched[i] = EnrichedPost{Post: p}
		if author, ok := userCache[p.AuthorID]; ok {
			enriched[i].Author = author
		} else if user, err := h.userRepository.GetUserByID(p.AuthorID); err == nil {
			compact := user.ToCompact()
			userCache[p.AuthorID] = compact
			enriched[i].Author = compact
		}
	}
	return enriched
}

// CreatePost creates a new post authored by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		AuthorID: currentUserID,
		Caption:  req.Caption,
		ImageURL: req.ImageURL,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPosts lists visible posts, newest first, or by like count with ?sort=popular
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postRepository.GetVisiblePosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if c.QueryParam("sort") == "popular" {
		services.SortByPopularity(posts)
	}
	return c.JSON(http.StatusOK, h.enrichPosts(posts))
}

// GetPost retrieves a single post
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.IsHidden {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	enriched := h.enrichPosts([]models.Post{*post})
	return c.JSON(http.StatusOK, enriched[0])
}

// SearchPosts finds visible posts by caption substring
func (h *PostHandler) SearchPosts(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}

	posts, err := h.postRepository.SearchPosts(c.Request().Context(), query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrichPosts(posts))
}

// UpdatePost edits a post; only the author may do so
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this post")
	}

	if req.Caption != "" {
		post.Caption = req.Caption
	}
	if req.ImageURL != "" {
		post.ImageURL = req.ImageURL
	}

	if err := h.postRepository.UpdatePost(c.Request().Context(), post.ID.Hex(), post); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost removes a post and cascades to its comments, likes and
// notifications; only the author may do so
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	if err := h.cleaner.DeletePost(c.Request().Context(), post.ID.Hex()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
