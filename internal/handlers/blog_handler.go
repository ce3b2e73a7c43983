package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/musab05/blog-posting-website/internal/models"
	"github.com/musab05/blog-posting-website/internal/repositories"
	"github.com/musab05/blog-posting-website/pkg/sanitize"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BlogHandler handles blog CRUD, finalize/publish and listings
type BlogHandler struct {
	blogRepository         repositories.BlogRepository
	userRepository         repositories.UserRepository
	commentRepository      repositories.CommentRepository
	followRepository       repositories.FollowRepository
	notificationRepository repositories.NotificationRepository
	log                    *zap.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(
	blogRepo repositories.BlogRepository,
	userRepo repositories.UserRepository,
	commentRepo repositories.CommentRepository,
	followRepo repositories.FollowRepository,
	notifRepo repositories.NotificationRepository,
	log *zap.Logger,
) *BlogHandler {
	return &BlogHandler{
		blogRepository:         blogRepo,
		userRepository:         userRepo,
		commentRepository:      commentRepo,
		followRepository:       followRepo,
		notificationRepository: notifRepo,
		log:                    log,
	}
}

// RegisterBlogRoutes registers blog routes; auth wraps the protected ones
func (h *BlogHandler) RegisterBlogRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/create", h.Create, auth)
	g.PUT("/finalize/:id", h.Finalize, auth)
	g.GET("/all/published", h.GetAllPublished)
	g.GET("/all/published/post", h.GetPublishedPage)
	g.GET("/drafts", h.GetOwnDrafts, auth)
	g.GET("/published", h.GetOwnPublished, auth)
	g.PUT("/:id/publish", h.Publish, auth)
	g.GET("/:id/edit", h.GetForEdit, auth)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update, auth)
}

// Create creates a blog as a draft or publishes it directly
func (h *BlogHandler) Create(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	blog := &models.Blog{
		Title:   sanitize.Plain(req.Title),
		IsDraft: req.IsDraft,
		Type:    req.Type,
		UserID:  userID,
	}

	// Presentation fields are only persisted when publishing directly;
	// drafts pick them up at finalize time.
	if !req.IsDraft {
		blog.Banner = req.Banner
		blog.ShortDescription = sanitize.Plain(req.ShortDescription)
		blog.Video = req.Video
		if len(req.Content) > 0 {
			blog.Content = datatypes.JSON(req.Content)
		}
		if req.Tags != nil {
			blog.Tags = marshalTags(req.Tags)
		}
		if !blog.ReadyToPublish() {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields for publishing")
		}
	}

	if err := h.blogRepository.CreateBlog(blog); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, blog)
}

// Finalize sets the summary metadata, flips the draft flag and fans out a
// notification to every accepted follower of the author.
func (h *BlogHandler) Finalize(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.FinalizeBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	blog, err := h.blogRepository.GetBlogByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Blog not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	blog.ShortDescription = sanitize.Plain(req.ShortDescription)
	blog.Tags = marshalTags(req.Tags)
	blog.IsDraft = false
	if err := h.blogRepository.UpdateBlog(blog); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifyFollowers(blog)

	return c.JSON(http.StatusOK, echo.Map{"message": "Blog finalized and published!"})
}

// notifyFollowers writes one blog notification per accepted follower in a
// single batch. Fan-out failure is logged, not surfaced: the publish itself
// already committed.
func (h *BlogHandler) notifyFollowers(blog *models.Blog) {
	followerIDs, err := h.followRepository.GetAcceptedFollowerIDs(blog.UserID)
	if err != nil {
		h.log.Warn("failed to list followers for publish fan-out",
			zap.String("blog_id", blog.ID), zap.Error(err))
		return
	}
	if len(followerIDs) == 0 {
		return
	}

	author, err := h.userRepository.GetUserByID(blog.UserID)
	if err != nil {
		h.log.Warn("failed to load author for publish fan-out",
			zap.String("blog_id", blog.ID), zap.Error(err))
		return
	}

	notifications := make([]models.Notification, 0, len(followerIDs))
	for _, followerID := range followerIDs {
		notifications = append(notifications, models.Notification{
			Type:       models.NotificationTypeBlog,
			Message:    author.Name + " published a new blog: " + blog.Title,
			SenderID:   blog.UserID,
			ReceiverID: followerID,
			BlogID:     &blog.ID,
			Status:     models.FollowStatusPending,
		})
	}
	if err := h.notificationRepository.CreateNotifications(notifications); err != nil {
		h.log.Warn("publish fan-out incomplete",
			zap.String("blog_id", blog.ID),
			zap.Int("followers", len(followerIDs)),
			zap.Error(err))
	}
}

// Publish flips a draft to published without touching its metadata
func (h *BlogHandler) Publish(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	blog, err := h.blogRepository.GetBlogForOwner(c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Blog not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !blog.IsDraft {
		return echo.NewHTTPError(http.StatusBadRequest, "Blog is already published")
	}

	blog.IsDraft = false
	if err := h.blogRepository.UpdateBlog(blog); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Blog published successfully"})
}

// GetForEdit returns a blog for the editor, drafts included. Only the owner
// can load it; anyone else sees a 404.
func (h *BlogHandler) GetForEdit(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	blog, err := h.blogRepository.GetBlogForOwner(c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Blog not found or unauthorized")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, blog)
}

// BlogWithComments is a blog plus its nested comment forest
type BlogWithComments struct {
	models.Blog
	Comments []*models.CommentNode `json:"comments"`
}

// GetByID returns a blog with its author and threaded comments
func (h *BlogHandler) GetByID(c echo.Context) error {
	blog, err := h.blogRepository.GetBlogByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Blog not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, err := h.commentRepository.GetByBlogID(blog.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, BlogWithComments{
		Blog:     *blog,
		Comments: models.BuildCommentForest(comments),
	})
}

// Update edits a blog owned by the caller
func (h *BlogHandler) Update(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	blog, err := h.blogRepository.GetBlogForOwner(c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Blog not found or unauthorized")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Title != nil {
		blog.Title = sanitize.Plain(*req.Title)
	}
	if req.IsDraft != nil {
		blog.IsDraft = *req.IsDraft
	}

	// Presentation fields only change on published posts; drafts receive
	// them at finalize time.
	if !blog.IsDraft {
		if req.Type != nil {
			blog.Type = *req.Type
		}
		if req.Banner != nil {
			blog.Banner = *req.Banner
		}
		if req.ShortDescription != nil {
			blog.ShortDescription = sanitize.Plain(*req.ShortDescription)
		}
		if req.Tags != nil {
			blog.Tags = marshalTags(req.Tags)
		}
		if len(req.Content) > 0 && blog.Type == models.BlogTypeBlog {
			blog.Content = datatypes.JSON(req.Content)
		}
		if req.Video != nil && blog.Type == models.BlogTypeVideo {
			blog.Video = *req.Video
		}
	}

	if err := h.blogRepository.UpdateBlog(blog); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	updated, err := h.blogRepository.GetBlogByID(blog.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

// GetAllPublished lists every published blog, newest first
func (h *BlogHandler) GetAllPublished(c echo.Context) error {
	blogs, err := h.blogRepository.GetPublished()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, blogs)
}

// GetPublishedPage lists a page of published blogs
func (h *BlogHandler) GetPublishedPage(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 9
	}

	blogs, err := h.blogRepository.GetPublishedPage(page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"blogs": blogs})
}

// GetOwnDrafts lists the caller's drafts
func (h *BlogHandler) GetOwnDrafts(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	drafts, err := h.blogRepository.GetDraftsByUser(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, drafts)
}

// GetOwnPublished lists the caller's published blogs
func (h *BlogHandler) GetOwnPublished(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	blogs, err := h.blogRepository.GetPublishedByUser(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, blogs)
}

func marshalTags(tags []string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}
	raw, _ := json.Marshal(tags)
	return datatypes.JSON(raw)
}
