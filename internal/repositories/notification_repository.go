package repositories

import (
	"github.com/musab05/blog-posting-website/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	CreateNotifications(notifications []models.Notification) error
	GetByReceiver(receiverID string) ([]models.Notification, error)
	GetFollowRequest(id, receiverID string) (*models.Notification, error)
	UpdateNotification(notification *models.Notification) error
	MarkAsRead(id, receiverID string) error
	MarkAllAsRead(receiverID string) error
	DeleteNotification(id, receiverID string) error
	DeleteByCommentIDs(commentIDs []string) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository backed by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// CreateNotifications writes a fan-out batch in chunks
func (r *postgresNotificationRepository) CreateNotifications(notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.CreateInBatches(notifications, 100).Error
}

func (r *postgresNotificationRepository) GetByReceiver(receiverID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Preload("Sender").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// GetFollowRequest fetches a follow notification addressed to the receiver
func (r *postgresNotificationRepository) GetFollowRequest(id, receiverID string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.Preload("Sender").
		Where("id = ? AND receiver_id = ? AND type = ?", id, receiverID, models.NotificationTypeFollow).
		First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *postgresNotificationRepository) UpdateNotification(notification *models.Notification) error {
	return r.db.Save(notification).Error
}

func (r *postgresNotificationRepository) MarkAsRead(id, receiverID string) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND receiver_id = ?", id, receiverID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(receiverID string) error {
	return r.db.Model(&models.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Update("is_read", true).Error
}

func (r *postgresNotificationRepository) DeleteNotification(id, receiverID string) error {
	res := r.db.Where("id = ? AND receiver_id = ?", id, receiverID).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByCommentIDs removes notifications referencing deleted comments by
// foreign key, replacing the substring match the comment id used to hide in.
func (r *postgresNotificationRepository) DeleteByCommentIDs(commentIDs []string) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.Where("comment_id IN ?", commentIDs).Delete(&models.Notification{}).Error
}
