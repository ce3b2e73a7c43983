package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/musab05/blog-posting-website/internal/models"
	"github.com/musab05/blog-posting-website/internal/repositories"
)

// DashboardHandler serves the author's aggregate metrics
type DashboardHandler struct {
	blogRepository   repositories.BlogRepository
	followRepository repositories.FollowRepository
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(blogRepo repositories.BlogRepository, followRepo repositories.FollowRepository) *DashboardHandler {
	return &DashboardHandler{
		blogRepository:   blogRepo,
		followRepository: followRepo,
	}
}

// RegisterDashboardRoutes registers dashboard routes
func (h *DashboardHandler) RegisterDashboardRoutes(g *echo.Group) {
	g.GET("/metrics", h.Metrics)
}

// Metrics returns total views and likes across the caller's blogs plus
// accepted and pending follow counts.
func (h *DashboardHandler) Metrics(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	totalViews, err := h.blogRepository.SumViewsByUser(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	totalLikes, err := h.blogRepository.SumLikesByUser(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	totalFollowers, err := h.followRepository.CountByFollowerAndStatus(userID, models.FollowStatusAccepted)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pendingFollowers, err := h.followRepository.CountByFollowerAndStatus(userID, models.FollowStatusPending)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"totalViews":       totalViews,
		"totalLikes":       totalLikes,
		"totalFollowers":   totalFollowers,
		"pendingFollowers": pendingFollowers,
	})
}
