package repositories

import (
	"github.com/musab05/blog-posting-website/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id string) (*models.Comment, error)
	GetByBlogID(blogID string) ([]models.Comment, error)
	DeleteWithDirectReplies(id string) ([]string, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByBlogID retrieves every comment on a blog ordered by creation time
// ascending. The tree is assembled in memory from this single result set.
func (r *PostgresCommentRepository) GetByBlogID(blogID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("blog_id = ?", blogID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteWithDirectReplies removes a comment and its direct replies only
// (one level, not deeper descendants) and returns the deleted ids so
// callers can clean up notifications referencing them.
func (r *PostgresCommentRepository) DeleteWithDirectReplies(id string) ([]string, error) {
	var replyIDs []string
	if err := r.db.Model(&models.Comment{}).Where("parent_id = ?", id).Pluck("id", &replyIDs).Error; err != nil {
		return nil, err
	}

	ids := append(replyIDs, id)
	if err := r.db.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
