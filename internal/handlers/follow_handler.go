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

// FollowHandler handles the follow request lifecycle
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	log                    *zap.Logger
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	log *zap.Logger,
) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		log:                    log,
	}
}

// RegisterFollowRoutes registers follow routes under the profile group
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/follow/status", h.Status, auth)
	g.POST("/follow/:userId", h.Follow, auth)
	g.DELETE("/follow/:userId", h.Unfollow, auth)
}

// Status reports the follow edge between the caller and followingId. This is
// a pure read: it never rewrites the edge.
func (h *FollowHandler) Status(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	followingID := c.QueryParam("followingId")
	if followingID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "followingId is required")
	}

	target, err := h.userRepository.GetUserByID(followingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	follow, err := h.followRepository.GetFollow(userID, followingID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var status interface{}
	if follow != nil {
		status = follow.Status
	}
	return c.JSON(http.StatusOK, echo.Map{
		"isFollowing": follow != nil,
		"status":      status,
		"isPrivate":   target.IsPrivate,
	})
}

// Follow creates a follow edge toward the target: pending when the target is
// private, accepted when public. The target is notified either way.
func (h *FollowHandler) Follow(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	targetID := c.Param("userId")

	if userID == targetID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	target, err := h.userRepository.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if existing, err := h.followRepository.GetFollow(userID, targetID); err == nil {
		message := "Already following this user"
		if existing.Status == models.FollowStatusPending {
			message = "Follow request already sent"
		}
		return echo.NewHTTPError(http.StatusBadRequest, message)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	status := models.FollowStatusAccepted
	if target.IsPrivate {
		status = models.FollowStatusPending
	}
	follow := &models.Follow{
		FollowerID:  userID,
		FollowingID: targetID,
		Status:      status,
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifyFollow(userID, target, status)

	message := "Now following user"
	if target.IsPrivate {
		message = "Follow request sent"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": message,
		"status":  follow.Status,
	})
}

// notifyFollow tells the target about the new follower or follow request.
// Pending requests carry the status so accept/reject can mutate it in place.
func (h *FollowHandler) notifyFollow(actorID string, target *models.User, status string) {
	actor, err := h.userRepository.GetUserByID(actorID)
	if err != nil {
		h.log.Warn("failed to load actor for follow notification", zap.Error(err))
		return
	}

	notification := &models.Notification{
		Type:       models.NotificationTypeFollow,
		SenderID:   actorID,
		ReceiverID: target.ID,
	}
	if status == models.FollowStatusPending {
		notification.Message = actor.Username + " wants to follow you"
		notification.Status = models.FollowStatusPending
	} else {
		notification.Message = actor.Username + " started following you"
	}
	if err := h.notificationRepository.CreateNotification(notification); err != nil {
		h.log.Warn("failed to create follow notification", zap.Error(err))
	}
}

// Unfollow deletes the follow edge in any state
func (h *FollowHandler) Unfollow(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.followRepository.DeleteFollow(userID, c.Param("userId")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Follow relationship not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed successfully"})
}
