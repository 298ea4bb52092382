package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mini-instagram/backend/internal/models"
	"github.com/mini-instagram/backend/internal/repositories"
	"github.com/mini-instagram/backend/internal/services"
	"github.com/mini-instagram/backend/pkg/validators"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-signing-secret"

// testEnv wires every handler against an in-memory SQLite database and an
// in-memory post store, mirroring the construction in router.SetupRoutes.
type testEnv struct {
	db    *gorm.DB
	echo  *echo.Echo
	posts *memPostRepo

	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
	notifRepo  repositories.NotificationRepository
	likeRepo   repositories.LikeRepository

	auth          *AuthHandler
	follows       *FollowHandler
	postHandler   *PostHandler
	likes         *LikeHandler
	comments      *CommentHandler
	notifications *NotificationHandler
	feed          *FeedHandler
	users         *UserHandler
	admin         *AdminHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Follow{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
	))

	env := &testEnv{db: db, echo: echo.New(), posts: &memPostRepo{}}
	env.echo.Validator = validators.NewValidator()

	env.userRepo = repositories.NewPostgresUserRepository(db)
	profileRepo := repositories.NewPostgresProfileRepository(db)
	env.followRepo = repositories.NewPostgresFollowRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	env.likeRepo = repositories.NewPostgresLikeRepository(db)
	env.notifRepo = repositories.NewPostgresNotificationRepository(db)

	dispatcher := services.NewDispatcher(env.notifRepo, env.userRepo)
	feedService := services.NewFeedService(env.followRepo, env.posts)
	cleaner := services.NewCleaner(env.userRepo, profileRepo, env.followRepo, env.posts, commentRepo, env.likeRepo, env.notifRepo)

	env.auth = NewAuthHandler(env.userRepo, profileRepo, cleaner, testJWTSecret)
	env.follows = NewFollowHandler(env.followRepo, env.userRepo, dispatcher)
	env.postHandler = NewPostHandler(env.posts, env.userRepo, cleaner)
	env.likes = NewLikeHandler(env.likeRepo, env.posts, dispatcher)
	env.comments = NewCommentHandler(commentRepo, env.posts, env.userRepo, dispatcher, cleaner)
	env.notifications = NewNotificationHandler(env.notifRepo, env.userRepo)
	env.feed = NewFeedHandler(feedService, env.userRepo)
	env.users = NewUserHandler(env.userRepo, profileRepo, env.followRepo, env.posts)
	env.admin = NewAdminHandler(env.userRepo, env.posts, commentRepo)
	return env
}

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", IsActive: true}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

// request builds an echo context for a handler call. A non-zero userID
// stands in for the JWT middleware by planting the claims directly.
func (env *testEnv) request(method, target string, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return c, rec
}

func httpStatus(err error) int {
	if err == nil {
		return 0
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}

// memPostRepo is an in-memory PostRepository standing in for MongoDB.
type memPostRepo struct {
	posts []models.Post
}

var _ repositories.PostRepository = (*memPostRepo)(nil)

func (m *memPostRepo) add(authorID uint, caption string, likes int, createdAt time.Time) models.Post {
	post := models.Post{
		ID:         primitive.NewObjectID(),
		AuthorID:   authorID,
		Caption:    caption,
		LikesCount: likes,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	m.posts = append(m.posts, post)
	return post
}

func newestFirst(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

func (m *memPostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	m.posts = append(m.posts, *post)
	return nil
}

func (m *memPostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	for i := range m.posts {
		if m.posts[i].ID.Hex() == id {
			post := m.posts[i]
			return &post, nil
		}
	}
	return nil, repositories.ErrPostNotFound
}

func (m *memPostRepo) GetPostsByAuthorID(ctx context.Context, authorID uint) ([]models.Post, error) {
	return m.GetPostsByAuthorIDs(ctx, []uint{authorID})
}

func (m *memPostRepo) GetPostsByAuthorIDs(ctx context.Context, authorIDs []uint) ([]models.Post, error) {
	result := []models.Post{}
	for _, p := range m.posts {
		if p.IsHidden {
			continue
		}
		for _, id := range authorIDs {
			if p.AuthorID == id {
				result = append(result, p)
				break
			}
		}
	}
	newestFirst(result)
	return result, nil
}

func (m *memPostRepo) GetVisiblePosts(ctx context.Context) ([]models.Post, error) {
	result := []models.Post{}
	for _, p := range m.posts {
		if !p.IsHidden {
			result = append(result, p)
		}
	}
	newestFirst(result)
	return result, nil
}

func (m *memPostRepo) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	result := append([]models.Post{}, m.posts...)
	newestFirst(result)
	return result, nil
}

func (m *memPostRepo) SearchPosts(ctx context.Context, query string) ([]models.Post, error) {
	result := []models.Post{}
	for _, p := range m.posts {
		if !p.IsHidden && strings.Contains(strings.ToLower(p.Caption), strings.ToLower(query)) {
			result = append(result, p)
		}
	}
	newestFirst(result)
	return result, nil
}

func (m *memPostRepo) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	for i := range m.posts {
		if m.posts[i].ID.Hex() == id {
			m.posts[i] = *post
			return nil
		}
	}
	return repositories.ErrPostNotFound
}

func (m *memPostRepo) DeletePost(ctx context.Context, id string) error {
	for i := range m.posts {
		if m.posts[i].ID.Hex() == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return repositories.ErrPostNotFound
}

func (m *memPostRepo) DeleteByAuthorID(ctx context.Context, authorID uint) ([]string, error) {
	kept := m.posts[:0]
	var deleted []string
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			deleted = append(deleted, p.ID.Hex())
		} else {
			kept = append(kept, p)
		}
	}
	m.posts = kept
	return deleted, nil
}

func (m *memPostRepo) SetHidden(ctx context.Context, id string, hidden bool) error {
	for i := range m.posts {
		if m.posts[i].ID.Hex() == id {
			m.posts[i].IsHidden = hidden
			return nil
		}
	}
	return repositories.ErrPostNotFound
}

func (m *memPostRepo) IncrementLikesCount(ctx context.Context, postID string, delta int) error {
	for i := range m.posts {
		if m.posts[i].ID.Hex() == postID {
			m.posts[i].LikesCount += delta
			return nil
		}
	}
	return repositories.ErrPostNotFound
}

func (m *memPostRepo) IncrementCommentsCount(ctx context.Context, postID string, delta int) error {
	for i := range m.posts {
		if m.posts[i].ID.Hex() == postID {
			m.posts[i].CommentsCount += delta
			return nil
		}
	}
	return repositories.ErrPostNotFound
}
