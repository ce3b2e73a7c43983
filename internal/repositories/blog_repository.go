package repositories

import (
	"github.com/musab05/blog-posting-website/internal/models"
	"gorm.io/gorm"
)

// Discovery feed orderings
const (
	DiscoveryTabTrending = "trending"
	DiscoveryTabRecent   = "recent"
	DiscoveryTabPopular  = "popular"
	DiscoveryTabRandom   = "random"
)

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	CreateBlog(blog *models.Blog) error
	GetBlogByID(id string) (*models.Blog, error)
	GetBlogForOwner(id, userID string) (*models.Blog, error)
	UpdateBlog(blog *models.Blog) error
	GetPublished() ([]models.Blog, error)
	GetPublishedPage(page, limit int) ([]models.Blog, error)
	GetDraftsByUser(userID string) ([]models.Blog, error)
	GetPublishedByUser(userID string) ([]models.Blog, error)
	IncrementLikesCount(id string) error
	DecrementLikesCount(id string) error
	IncrementViewsCount(id string) error
	SumLikesByUser(userID string) (int64, error)
	SumViewsByUser(userID string) (int64, error)
	Discover(tab string, limit, offset int) ([]models.Blog, error)
	SearchPublished(query string, limit int) ([]models.Blog, error)
}

// PostgresBlogRepository implements BlogRepository for PostgreSQL
type PostgresBlogRepository struct {
	db *gorm.DB
}

// NewPostgresBlogRepository creates a new PostgresBlogRepository
func NewPostgresBlogRepository(db *gorm.DB) *PostgresBlogRepository {
	return &PostgresBlogRepository{db: db}
}

func (r *PostgresBlogRepository) CreateBlog(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

func (r *PostgresBlogRepository) GetBlogByID(id string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.Preload("Author").Where("id = ?", id).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// GetBlogForOwner retrieves a blog only when owned by the given user
func (r *PostgresBlogRepository) GetBlogForOwner(id, userID string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *PostgresBlogRepository) UpdateBlog(blog *models.Blog) error {
	return r.db.Save(blog).Error
}

func (r *PostgresBlogRepository) GetPublished() ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.Preload("Author").
		Where("is_draft = ?", false).
		Order("created_at DESC").
		Find(&blogs).Error
	return blogs, err
}

func (r *PostgresBlogRepository) GetPublishedPage(page, limit int) ([]models.Blog, error) {
	var blogs []models.Blog
	offset := (page - 1) * limit
	err := r.db.Preload("Author").
		Where("is_draft = ?", false).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&blogs).Error
	return blogs, err
}

func (r *PostgresBlogRepository) GetDraftsByUser(userID string) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.Where("is_draft = ? AND user_id = ?", true, userID).
		Order("created_at DESC").
		Find(&blogs).Error
	return blogs, err
}

func (r *PostgresBlogRepository) GetPublishedByUser(userID string) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.Where("is_draft = ? AND user_id = ?", false, userID).
		Order("created_at DESC").
		Find(&blogs).Error
	return blogs, err
}

// Counter updates use the database's atomic increment so concurrent
// likes/views on the same blog never read-modify-write the column.

func (r *PostgresBlogRepository) IncrementLikesCount(id string) error {
	return r.db.Model(&models.Blog{}).Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
}

func (r *PostgresBlogRepository) DecrementLikesCount(id string) error {
	return r.db.Model(&models.Blog{}).Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1)).Error
}

func (r *PostgresBlogRepository) IncrementViewsCount(id string) error {
	return r.db.Model(&models.Blog{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

func (r *PostgresBlogRepository) SumLikesByUser(userID string) (int64, error) {
	var total int64
	err := r.db.Model(&models.Blog{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(likes_count), 0)").Scan(&total).Error
	return total, err
}

func (r *PostgresBlogRepository) SumViewsByUser(userID string) (int64, error) {
	var total int64
	err := r.db.Model(&models.Blog{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(views_count), 0)").Scan(&total).Error
	return total, err
}

// Discover returns a page of published blogs by public authors, ordered per tab
func (r *PostgresBlogRepository) Discover(tab string, limit, offset int) ([]models.Blog, error) {
	q := r.db.Preload("Author").
		Joins("JOIN users ON users.id = blogs.user_id AND users.is_private = ?", false).
		Where("blogs.is_draft = ?", false)

	switch tab {
	case DiscoveryTabRecent:
		q = q.Order("blogs.created_at DESC")
	case DiscoveryTabPopular:
		q = q.Order("blogs.views_count DESC")
	case DiscoveryTabRandom:
		q = q.Order("RANDOM()")
	default: // trending
		q = q.Order("blogs.likes_count DESC").Order("blogs.views_count DESC")
	}

	var blogs []models.Blog
	err := q.Offset(offset).Limit(limit).Find(&blogs).Error
	return blogs, err
}

// SearchPublished matches published blogs of public authors by title or tag
func (r *PostgresBlogRepository) SearchPublished(query string, limit int) ([]models.Blog, error) {
	var blogs []models.Blog
	pattern := "%" + query + "%"
	err := r.db.Preload("Author").
		Joins("JOIN users ON users.id = blogs.user_id AND users.is_private = ?", false).
		Where("blogs.is_draft = ?", false).
		Where("LOWER(blogs.title) LIKE LOWER(?) OR LOWER(blogs.tags::text) LIKE LOWER(?)", pattern, pattern).
		Limit(limit).
		Find(&blogs).Error
	return blogs, err
}
