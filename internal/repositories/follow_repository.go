package repositories

import (
	"github.com/musab05/blog-posting-website/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	GetFollow(followerID, followingID string) (*models.Follow, error)
	UpdateStatus(followerID, followingID, status string) error
	DeleteFollow(followerID, followingID string) error
	GetFollowers(userID string) ([]models.User, error)
	GetFollowing(userID string) ([]models.User, error)
	CountFollowers(userID string) (int64, error)
	CountFollowing(userID string) (int64, error)
	GetAcceptedFollowerIDs(userID string) ([]string, error)
	CountByFollowerAndStatus(followerID, status string) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *PostgresFollowRepository) GetFollow(followerID, followingID string) (*models.Follow, error) {
	var follow models.Follow
	if err := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).First(&follow).Error; err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *PostgresFollowRepository) UpdateStatus(followerID, followingID, status string) error {
	return r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Update("status", status).Error
}

func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID string) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetFollowers returns users following userID, excluding pending requests
func (r *PostgresFollowRepository) GetFollowers(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("follower_id").
			Where("following_id = ? AND status <> ?", userID, models.FollowStatusPending),
	).Find(&users).Error
	return users, err
}

// GetFollowing returns users userID follows, excluding pending requests
func (r *PostgresFollowRepository) GetFollowing(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("following_id").
			Where("follower_id = ? AND status <> ?", userID, models.FollowStatusPending),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) CountFollowers(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("following_id = ? AND status <> ?", userID, models.FollowStatusPending).
		Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) CountFollowing(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND status <> ?", userID, models.FollowStatusPending).
		Count(&count).Error
	return count, err
}

// GetAcceptedFollowerIDs lists follower ids for publish fan-out
func (r *PostgresFollowRepository) GetAcceptedFollowerIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Follow{}).
		Where("following_id = ? AND status = ?", userID, models.FollowStatusAccepted).
		Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) CountByFollowerAndStatus(followerID, status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND status = ?", followerID, status).
		Count(&count).Error
	return count, err
}
