package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/musab05/blog-posting-website/internal/models"
	"github.com/musab05/blog-posting-website/internal/repositories"
)

const discoveryPageSize = 9

// DiscoveryHandler serves the public discovery feed and search
type DiscoveryHandler struct {
	blogRepository repositories.BlogRepository
	userRepository repositories.UserRepository
}

// NewDiscoveryHandler creates a new DiscoveryHandler
func NewDiscoveryHandler(blogRepo repositories.BlogRepository, userRepo repositories.UserRepository) *DiscoveryHandler {
	return &DiscoveryHandler{
		blogRepository: blogRepo,
		userRepository: userRepo,
	}
}

// RegisterDiscoveryRoutes registers discovery routes
func (h *DiscoveryHandler) RegisterDiscoveryRoutes(g *echo.Group) {
	g.GET("", h.Discover)
	g.GET("/search", h.Search)
}

// Discover pages through published blogs of public authors, ordered by tab
func (h *DiscoveryHandler) Discover(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	tab := c.QueryParam("tab")
	if tab == "" {
		tab = repositories.DiscoveryTabTrending
	}

	blogs, err := h.blogRepository.Discover(tab, discoveryPageSize, (page-1)*discoveryPageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"blogs":   blogs,
		"hasMore": len(blogs) == discoveryPageSize,
	})
}

// SearchResult is a blog or user entry in the merged search response
type SearchResult struct {
	ID               string              `json:"id"`
	Type             string              `json:"type"`
	Title            string              `json:"title,omitempty"`
	Banner           string              `json:"banner,omitempty"`
	ShortDescription string              `json:"shortDescription,omitempty"`
	Tags             []string            `json:"tags,omitempty"`
	ViewsCount       int                 `json:"viewsCount,omitempty"`
	LikesCount       int                 `json:"likesCount,omitempty"`
	Username         string              `json:"username,omitempty"`
	Name             string              `json:"name,omitempty"`
	ProfileURL       string              `json:"profileUrl,omitempty"`
	Author           *models.UserCompact `json:"author,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// Search matches published blogs by title/tag and users by username/name,
// merged and sorted newest first.
func (h *DiscoveryHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if len(query) < 2 {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query must be at least 2 characters long")
	}

	blogs, err := h.blogRepository.SearchPublished(query, 20)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	users, err := h.userRepository.SearchUsers(query, 10)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]SearchResult, 0, len(blogs)+len(users))
	for i := range blogs {
		b := &blogs[i]
		entry := SearchResult{
			ID:               b.ID,
			Type:             "blog",
			Title:            b.Title,
			Banner:           b.Banner,
			ShortDescription: b.ShortDescription,
			Tags:             unmarshalTags(b.Tags),
			ViewsCount:       b.ViewsCount,
			LikesCount:       b.LikesCount,
			CreatedAt:        b.CreatedAt,
		}
		if b.Author != nil {
			compact := b.Author.ToCompact()
			entry.Author = &compact
		}
		results = append(results, entry)
	}
	for i := range users {
		u := &users[i]
		results = append(results, SearchResult{
			ID:         u.ID,
			Type:       "user",
			Username:   u.Username,
			Name:       u.Name,
			ProfileURL: u.ProfileURL,
			CreatedAt:  u.CreatedAt,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	return c.JSON(http.StatusOK, echo.Map{"results": results})
}

func unmarshalTags(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return []string{}
	}
	return tags
}
