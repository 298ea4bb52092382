package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mini-instagram/backend/internal/models"
	"github.com/mini-instagram/backend/internal/repositories"
	"github.com/mini-instagram/backend/internal/services"
)

// FeedHandler handles feed and trending HTTP requests
type FeedHandler struct {
	feedService    *services.FeedService
	userRepository repositories.UserRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService, userRepo repositories.UserRepository) *FeedHandler {
	return &FeedHandler{
		feedService:    feedService,
		userRepository: userRepo,
	}
}

// RegisterFeedRoutes registers the authenticated feed route
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// RegisterPublicFeedRoutes registers the unauthenticated trending route
func (h *FeedHandler) RegisterPublicFeedRoutes(g *echo.Group) {
	g.GET("/posts/trending", h.GetTrending)
}

func (h *FeedHandler) enrichPosts(posts []models.Post) []EnrichedPost {
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

// GetFeed returns the posts of everyone the caller follows, newest first.
// Following nobody yields an empty feed, not an error.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	posts, err := h.feedService.BuildFeed(c.Request().Context(), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrichPosts(posts))
}

// GetTrending returns every visible post ranked by like count, recency as
// the tie-break. Open to unauthenticated callers.
func (h *FeedHandler) GetTrending(c echo.Context) error {
	posts, err := h.feedService.Trending(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.enrichPosts(posts))
}
