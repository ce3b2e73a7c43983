package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/musab05/blog-posting-website/internal/models"
	"github.com/musab05/blog-posting-website/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EngagementHandler handles likes and view tracking on blogs
type EngagementHandler struct {
	engagementRepository   repositories.EngagementRepository
	blogRepository         repositories.BlogRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	log                    *zap.Logger
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(
	engagementRepo repositories.EngagementRepository,
	blogRepo repositories.BlogRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	log *zap.Logger,
) *EngagementHandler {
	return &EngagementHandler{
		engagementRepository:   engagementRepo,
		blogRepository:         blogRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		log:                    log,
	}
}

// RegisterEngagementRoutes registers like/view routes under the blogs group
func (h *EngagementHandler) RegisterEngagementRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/:id/view", h.TrackView, auth)
	g.POST("/:id/like", h.ToggleLike, auth)
	g.GET("/:id/like-status", h.LikeStatus, auth)
}

// TrackView records the first view per (user, blog) pair; replays are no-ops
func (h *EngagementHandler) TrackView(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	blogID := c.Param("id")

	if _, err := h.blogRepository.GetBlogByID(blogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Blog not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	created, err := h.engagementRepository.CreateViewIfAbsent(userID, blogID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if created {
		if err := h.blogRepository.IncrementViewsCount(blogID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	blog, err := h.blogRepository.GetBlogByID(blogID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"viewsCount": blog.ViewsCount,
	})
}

// ToggleLike likes the blog, or removes the caller's existing like. Adding a
// like notifies the owner; removing one leaves the notification behind.
func (h *EngagementHandler) ToggleLike(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	blogID := c.Param("id")

	blog, err := h.blogRepository.GetBlogByID(blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Blog not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	_, err = h.engagementRepository.GetLike(userID, blogID)
	switch {
	case err == nil:
		if err := h.engagementRepository.DeleteLike(userID, blogID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if err := h.blogRepository.DecrementLikesCount(blogID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return h.likeResponse(c, blogID, false)

	case errors.Is(err, gorm.ErrRecordNotFound):
		like := &models.Like{UserID: userID, BlogID: blogID}
		if err := h.engagementRepository.CreateLike(like); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if err := h.blogRepository.IncrementLikesCount(blogID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if blog.UserID != userID {
			h.notifyLike(userID, blog)
		}
		return h.likeResponse(c, blogID, true)

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *EngagementHandler) likeResponse(c echo.Context, blogID string, liked bool) error {
	blog, err := h.blogRepository.GetBlogByID(blogID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"likesCount":  blog.LikesCount,
		"likedByUser": liked,
	})
}

func (h *EngagementHandler) notifyLike(actorID string, blog *models.Blog) {
	actor, err := h.userRepository.GetUserByID(actorID)
	if err != nil {
		h.log.Warn("failed to load actor for like notification",
			zap.String("blog_id", blog.ID), zap.Error(err))
		return
	}
	notification := &models.Notification{
		Type:       models.NotificationTypeLike,
		Message:    actor.Username + " liked your blog \"" + blog.Title + "\"",
		SenderID:   actorID,
		ReceiverID: blog.UserID,
		BlogID:     &blog.ID,
	}
	if err := h.notificationRepository.CreateNotification(notification); err != nil {
		h.log.Warn("failed to create like notification",
			zap.String("blog_id", blog.ID), zap.Error(err))
	}
}

// LikeStatus reports whether the caller liked the blog and the active like count
func (h *EngagementHandler) LikeStatus(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	blogID := c.Param("id")

	liked, err := h.engagementRepository.HasLiked(userID, blogID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	count, err := h.engagementRepository.CountLikes(blogID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"liked":      liked,
		"likesCount": count,
	})
}
