package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Blog post types
const (
	BlogTypeBlog    = "blog"
	BlogTypeVideo   = "video"
	BlogTypePodcast = "podcast"
)

// Blog represents a long-form post, rich text or video
type Blog struct {
	ID               string         `json:"id" gorm:"type:uuid;primaryKey"`
	Title            string         `json:"title"`
	IsDraft          bool           `json:"isDraft" gorm:"default:true"`
	Type             string         `json:"type" gorm:"size:20"`
	Banner           string         `json:"banner"`
	ShortDescription string         `json:"shortDescription"`
	Tags             datatypes.JSON `json:"tags,omitempty"`
	Content          datatypes.JSON `json:"content,omitempty"` // rich-text block list
	Video            string         `json:"video,omitempty"`
	LikesCount       int            `json:"likesCount" gorm:"default:0"`
	ViewsCount       int            `json:"viewsCount" gorm:"default:0"`
	UserID           string         `json:"userId" gorm:"type:uuid;index"`
	Author           *User          `json:"author,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// ReadyToPublish reports whether the blog carries everything a published
// post of its type requires: blogs need content and a banner, videos a URL.
func (b *Blog) ReadyToPublish() bool {
	if b.Type == "" || b.Banner == "" {
		return false
	}
	if b.Type == BlogTypeBlog && len(b.Content) == 0 {
		return false
	}
	if b.Type == BlogTypeVideo && b.Video == "" {
		return false
	}
	return true
}

// CreateBlogRequest defines the request body for creating a blog
type CreateBlogRequest struct {
	Title            string          `json:"title" validate:"required,min=1,max=200"`
	IsDraft          bool            `json:"isDraft"`
	Type             string          `json:"type,omitempty" validate:"omitempty,oneof=blog video podcast"`
	Banner           string          `json:"banner,omitempty"`
	ShortDescription string          `json:"shortDescription,omitempty" validate:"omitempty,max=300"`
	Tags             []string        `json:"tags,omitempty"`
	Content          json.RawMessage `json:"content,omitempty"`
	Video            string          `json:"video,omitempty" validate:"omitempty,url"`
}

// UpdateBlogRequest defines the request body for editing a blog.
// Pointer fields distinguish "absent" from "set to zero value".
type UpdateBlogRequest struct {
	Title            *string         `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	IsDraft          *bool           `json:"isDraft,omitempty"`
	Type             *string         `json:"type,omitempty" validate:"omitempty,oneof=blog video podcast"`
	Banner           *string         `json:"banner,omitempty"`
	ShortDescription *string         `json:"shortDescription,omitempty" validate:"omitempty,max=300"`
	Tags             []string        `json:"tags,omitempty"`
	Content          json.RawMessage `json:"content,omitempty"`
	Video            *string         `json:"video,omitempty" validate:"omitempty,url"`
}

// FinalizeBlogRequest defines the request body for finalize-and-publish
type FinalizeBlogRequest struct {
	ShortDescription string   `json:"shortDescription" validate:"required,max=300"`
	Tags             []string `json:"tags,omitempty"`
}
