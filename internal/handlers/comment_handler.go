package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/musab05/blog-posting-website/internal/models"
	"github.com/musab05/blog-posting-website/internal/repositories"
	"github.com/musab05/blog-posting-website/pkg/sanitize"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentHandler handles threaded comments on blogs
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	blogRepository         repositories.BlogRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	log                    *zap.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	blogRepo repositories.BlogRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	log *zap.Logger,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		blogRepository:         blogRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		log:                    log,
	}
}

// RegisterCommentRoutes registers comment routes under the blogs group
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/:id/comment", h.Create, auth)
	g.DELETE("/:blogId/comment/:commentId", h.Delete, auth)
}

// Create adds a comment or reply and returns the blog with its refreshed
// comment forest. The blog owner gets a comment notification, the parent
// comment's author a reply notification, skipping the actor in both cases.
func (h *CommentHandler) Create(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateCommentRequest
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

	comment := &models.Comment{
		Text:     sanitize.HTML(req.Text),
		UserID:   userID,
		BlogID:   blog.ID,
		ParentID: req.ParentID,
	}

	var parent *models.Comment
	if req.ParentID != nil {
		parent, err = h.commentRepository.GetCommentByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		comment.Depth = parent.Depth + 1
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	actor, err := h.userRepository.GetUserByID(userID)
	if err == nil {
		if blog.UserID != userID {
			h.notify(&models.Notification{
				Type:       models.NotificationTypeComment,
				Message:    actor.Username + " commented on your blog \"" + blog.Title + "\"",
				SenderID:   userID,
				ReceiverID: blog.UserID,
				BlogID:     &blog.ID,
				CommentID:  &comment.ID,
			})
		}
		if parent != nil && parent.UserID != userID {
			h.notify(&models.Notification{
				Type:       models.NotificationTypeReply,
				Message:    actor.Username + " replied to your comment on \"" + blog.Title + "\"",
				SenderID:   userID,
				ReceiverID: parent.UserID,
				BlogID:     &blog.ID,
				CommentID:  &comment.ID,
			})
		}
	}

	return h.blogWithComments(c, blog)
}

// Delete removes the caller's comment and its direct replies only, plus any
// notifications referencing the removed comments, then returns the blog
// with its refreshed forest. Deeper descendants stay in the table but drop
// out of the tree because their parent is gone.
func (h *CommentHandler) Delete(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	blogID := c.Param("blogId")
	commentID := c.Param("commentId")

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil || comment.BlogID != blogID || comment.UserID != userID {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found or unauthorized")
	}

	deletedIDs, err := h.commentRepository.DeleteWithDirectReplies(commentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.notificationRepository.DeleteByCommentIDs(deletedIDs); err != nil {
		h.log.Warn("failed to delete notifications for removed comments",
			zap.String("comment_id", commentID), zap.Error(err))
	}

	blog, err := h.blogRepository.GetBlogByID(blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Blog not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return h.blogWithComments(c, blog)
}

func (h *CommentHandler) notify(notification *models.Notification) {
	if err := h.notificationRepository.CreateNotification(notification); err != nil {
		h.log.Warn("failed to create comment notification",
			zap.String("type", notification.Type), zap.Error(err))
	}
}

func (h *CommentHandler) blogWithComments(c echo.Context, blog *models.Blog) error {
	comments, err := h.commentRepository.GetByBlogID(blog.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, BlogWithComments{
		Blog:     *blog,
		Comments: models.BuildCommentForest(comments),
	})
}
