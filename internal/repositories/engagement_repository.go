package repositories

import (
	"errors"

	"github.com/musab05/blog-posting-website/internal/models"
	"gorm.io/gorm"
)

// EngagementRepository defines the interface for like and view operations
type EngagementRepository interface {
	GetLike(userID, blogID string) (*models.Like, error)
	CreateLike(like *models.Like) error
	DeleteLike(userID, blogID string) error
	CountLikes(blogID string) (int64, error)
	HasLiked(userID, blogID string) (bool, error)
	CreateViewIfAbsent(userID, blogID string) (bool, error)
}

// PostgresEngagementRepository implements EngagementRepository for PostgreSQL
type PostgresEngagementRepository struct {
	db *gorm.DB
}

// NewPostgresEngagementRepository creates a new PostgresEngagementRepository
func NewPostgresEngagementRepository(db *gorm.DB) *PostgresEngagementRepository {
	return &PostgresEngagementRepository{db: db}
}

func (r *PostgresEngagementRepository) GetLike(userID, blogID string) (*models.Like, error) {
	var like models.Like
	if err := r.db.Where("user_id = ? AND blog_id = ?", userID, blogID).First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *PostgresEngagementRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *PostgresEngagementRepository) DeleteLike(userID, blogID string) error {
	res := r.db.Where("user_id = ? AND blog_id = ?", userID, blogID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresEngagementRepository) CountLikes(blogID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("blog_id = ?", blogID).Count(&count).Error
	return count, err
}

func (r *PostgresEngagementRepository) HasLiked(userID, blogID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("user_id = ? AND blog_id = ?", userID, blogID).Count(&count).Error
	return count > 0, err
}

// CreateViewIfAbsent records the first view of a blog by a user. It returns
// true when a new row was written; replays of the same pair return false.
func (r *PostgresEngagementRepository) CreateViewIfAbsent(userID, blogID string) (bool, error) {
	var view models.View
	err := r.db.Where("user_id = ? AND blog_id = ?", userID, blogID).First(&view).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	view = models.View{UserID: userID, BlogID: blogID}
	if err := r.db.Create(&view).Error; err != nil {
		return false, err
	}
	return true, nil
}
