package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/musab05/blog-posting-website/internal/models"
	"github.com/musab05/blog-posting-website/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ProfileHandler handles profile reads and edits
type ProfileHandler struct {
	userRepository   repositories.UserRepository
	blogRepository   repositories.BlogRepository
	followRepository repositories.FollowRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(
	userRepo repositories.UserRepository,
	blogRepo repositories.BlogRepository,
	followRepo repositories.FollowRepository,
) *ProfileHandler {
	return &ProfileHandler{
		userRepository:   userRepo,
		blogRepository:   blogRepo,
		followRepository: followRepo,
	}
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.PUT("", h.UpdateProfile, auth)
	g.PUT("/password", h.ChangePassword, auth)
	g.GET("/me", h.Me, auth)
	g.GET("/:username", h.GetProfile)
	g.GET("/:username/blogs", h.GetBlogs)
	g.GET("/:username/followers", h.GetFollowers)
	g.GET("/:username/following", h.GetFollowing)
}

// Me returns the caller's full profile
func (h *ProfileHandler) Me(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// GetProfile returns a user's public profile with follower/following counts.
// Pending requests do not count.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	followerCount, err := h.followRepository.CountFollowers(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	followingCount, err := h.followRepository.CountFollowing(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":             user.ID,
		"name":           user.Name,
		"username":       user.Username,
		"bio":            user.Bio,
		"profileUrl":     user.ProfileURL,
		"isPrivate":      user.IsPrivate,
		"socialLinks":    user.SocialLinks,
		"followerCount":  followerCount,
		"followingCount": followingCount,
	})
}

// GetBlogs lists a user's published blogs; drafts stay private to the owner
func (h *ProfileHandler) GetBlogs(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	blogs, err := h.blogRepository.GetPublishedByUser(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, blogs)
}

// GetFollowers lists a user's followers (pending requests excluded)
func (h *ProfileHandler) GetFollowers(c echo.Context) error {
	return h.listConnections(c, h.followRepository.GetFollowers)
}

// GetFollowing lists who a user follows (pending requests excluded)
func (h *ProfileHandler) GetFollowing(c echo.Context) error {
	return h.listConnections(c, h.followRepository.GetFollowing)
}

func (h *ProfileHandler) listConnections(c echo.Context, fetch func(string) ([]models.User, error)) error {
	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	users, err := fetch(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	compact := make([]models.UserCompact, len(users))
	for i := range users {
		compact[i] = users[i].ToCompact()
	}
	return c.JSON(http.StatusOK, compact)
}

// UpdateProfile edits the caller's profile
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Username != "" && req.Username != user.Username {
		taken, err := h.userRepository.UsernameTaken(req.Username, userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if taken {
			return echo.NewHTTPError(http.StatusBadRequest, "Username is already taken")
		}
		user.Username = req.Username
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.ProfileURL != "" {
		user.ProfileURL = req.ProfileURL
	}
	if req.IsPrivate != nil {
		user.IsPrivate = *req.IsPrivate
	}
	if req.SocialLinks != nil {
		user.SocialLinks = req.SocialLinks
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// ChangePassword verifies the current password before setting a new one
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}
	user.Password = string(hashed)

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}
