package services

import (
	"context"
	"sort"

	"github.com/mini-instagram/backend/internal/models"
	"github.com/mini-instagram/backend/internal/repositories"
)

// FeedService assembles read-only post listings from the follow graph and
// the post store. It performs no precomputation; every call queries at
// request time.
type FeedService struct {
	followRepository repositories.FollowRepository
	postRepository   repositories.PostRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(followRepo repositories.FollowRepository, postRepo repositories.PostRepository) *FeedService {
	return &FeedService{
		followRepository: followRepo,
		postRepository:   postRepo,
	}
}

// BuildFeed returns the posts authored by everyone the user follows,
// newest first. An empty following set yields an empty feed, not an error.
func (s *FeedService) BuildFeed(ctx context.Context, userID uint) ([]models.Post, error) {
	followingIDs, err := s.followRepository.GetFollowingIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.postRepository.GetPostsByAuthorIDs(ctx, followingIDs)
}

// Trending returns every visible post ranked by like count, most recent
// first among ties. The follow graph is ignored entirely.
func (s *FeedService) Trending(ctx context.Context) ([]models.Post, error) {
	posts, err := s.postRepository.GetVisiblePosts(ctx)
	if err != nil {
		return nil, err
	}
	SortByPopularity(posts)
	return posts, nil
}

// SortByPopularity orders posts in place by like count descending, breaking
// ties by creation time descending.
func SortByPopularity(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].LikesCount != posts[j].LikesCount {
			return posts[i].LikesCount > posts[j].LikesCount
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
