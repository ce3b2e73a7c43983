package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/musab05/blog-posting-website/internal/models"
	"github.com/musab05/blog-posting-website/internal/repositories"
	"gorm.io/gorm"
)

// NotificationHandler handles the notification feed and the follow-request
// accept/reject actions that live on follow notifications.
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	followRepository       repositories.FollowRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(
	notifRepo repositories.NotificationRepository,
	followRepo repositories.FollowRepository,
) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		followRepository:       followRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.PATCH("/read-all", h.MarkAllAsRead)
	g.PATCH("/:id/read", h.MarkAsRead)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/accept-follow", h.AcceptFollow)
	g.POST("/:id/reject-follow", h.RejectFollow)
}

// List returns the caller's notifications, newest first
func (h *NotificationHandler) List(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	notifications, err := h.notificationRepository.GetByReceiver(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.notificationRepository.MarkAsRead(c.Param("id"), userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

// MarkAllAsRead marks all of the caller's unread notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.notificationRepository.MarkAllAsRead(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}

// Delete removes one of the caller's notifications
func (h *NotificationHandler) Delete(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.notificationRepository.DeleteNotification(c.Param("id"), userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification deleted"})
}

// AcceptFollow accepts the follow request behind a follow notification
func (h *NotificationHandler) AcceptFollow(c echo.Context) error {
	return h.resolveFollow(c, models.FollowStatusAccepted)
}

// RejectFollow rejects the follow request behind a follow notification
func (h *NotificationHandler) RejectFollow(c echo.Context) error {
	return h.resolveFollow(c, models.FollowStatusRejected)
}

// resolveFollow updates the Follow edge and mutates the originating
// notification in place (status, message, read flag) rather than creating
// a new one, so the requester's entry reflects the outcome.
func (h *NotificationHandler) resolveFollow(c echo.Context, status string) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	notification, err := h.notificationRepository.GetFollowRequest(c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Follow request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.followRepository.UpdateStatus(notification.SenderID, userID, status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	senderName := notification.SenderID
	if notification.Sender != nil {
		senderName = notification.Sender.Name
	}
	notification.IsRead = true
	notification.Status = status
	notification.Message = senderName + "'s follow request " + status
	if err := h.notificationRepository.UpdateNotification(notification); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	message := "Follow request accepted"
	if status == models.FollowStatusRejected {
		message = "Follow request rejected"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":      message,
		"notification": notification,
	})
}
