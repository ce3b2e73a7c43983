package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like represents a like on a blog, unique per (user, blog)
type Like struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"userId" gorm:"type:uuid;index;uniqueIndex:idx_user_blog_like"`
	BlogID    string    `json:"blogId" gorm:"type:uuid;index;uniqueIndex:idx_user_blog_like"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// View records the first time a user viewed a blog; replays are no-ops
type View struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"userId" gorm:"type:uuid;index;uniqueIndex:idx_user_blog_view"`
	BlogID    string    `json:"blogId" gorm:"type:uuid;index;uniqueIndex:idx_user_blog_view"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

func (v *View) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
