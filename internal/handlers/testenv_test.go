package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/musab05/blog-posting-website/internal/models"
	"github.com/musab05/blog-posting-website/pkg/config"
	"github.com/musab05/blog-posting-website/validators"
	"go.uber.org/zap"
)

// testEnv wires every handler against the in-memory fakes
type testEnv struct {
	echo          *echo.Echo
	users         *fakeUserRepo
	blogs         *fakeBlogRepo
	comments      *fakeCommentRepo
	engagement    *fakeEngagementRepo
	follows       *fakeFollowRepo
	notifications *fakeNotificationRepo

	auth          *AuthHandler
	blog          *BlogHandler
	comment       *CommentHandler
	engage        *EngagementHandler
	follow        *FollowHandler
	profile       *ProfileHandler
	notification  *NotificationHandler
	dashboard     *DashboardHandler
	discovery     *DiscoveryHandler
}

func newTestEnv() *testEnv {
	e := echo.New()
	e.Validator = validators.NewValidator()

	users := newFakeUserRepo()
	blogs := newFakeBlogRepo()
	comments := newFakeCommentRepo()
	engagement := newFakeEngagementRepo()
	follows := newFakeFollowRepo(users)
	notifications := newFakeNotificationRepo(users)

	log := zap.NewNop()
	cfg := &config.Config{
		JWTSecret:    "test-secret",
		AvatarStyles: []string{"micah"},
	}

	return &testEnv{
		echo:          e,
		users:         users,
		blogs:         blogs,
		comments:      comments,
		engagement:    engagement,
		follows:       follows,
		notifications: notifications,

		auth:         NewAuthHandler(users, cfg),
		blog:         NewBlogHandler(blogs, users, comments, follows, notifications, log),
		comment:      NewCommentHandler(comments, blogs, users, notifications, log),
		engage:       NewEngagementHandler(engagement, blogs, users, notifications, log),
		follow:       NewFollowHandler(follows, users, notifications, log),
		profile:      NewProfileHandler(users, blogs, follows),
		notification: NewNotificationHandler(notifications, follows),
		dashboard:    NewDashboardHandler(blogs, follows),
		discovery:    NewDiscoveryHandler(blogs, users),
	}
}

// newContext builds an echo context for a JSON request. userID, when set,
// simulates the auth middleware having stored the caller's claims.
func (env *testEnv) newContext(method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	if userID != "" {
		username := userID
		if u, err := env.users.GetUserByID(userID); err == nil {
			username = u.Username
		}
		c.Set("user", &models.JwtCustomClaims{UserID: userID, Username: username})
	}
	return c, rec
}

func (env *testEnv) seedUser(name, username, email string, private bool) *models.User {
	user := &models.User{
		Name:      name,
		Username:  username,
		Email:     email,
		IsPrivate: private,
	}
	_ = env.users.CreateUser(user)
	return user
}

func (env *testEnv) seedBlog(userID, title string, draft bool) *models.Blog {
	blog := &models.Blog{
		Title:   title,
		IsDraft: draft,
		Type:    models.BlogTypeBlog,
		UserID:  userID,
	}
	_ = env.blogs.CreateBlog(blog)
	return blog
}

func (env *testEnv) seedComment(userID, blogID string, parentID *string, depth int, text string) *models.Comment {
	comment := &models.Comment{
		Text:     text,
		UserID:   userID,
		BlogID:   blogID,
		ParentID: parentID,
		Depth:    depth,
	}
	_ = env.comments.CreateComment(comment)
	return comment
}

func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusOK
}
