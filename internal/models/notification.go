package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
	NotificationTypeBlog    = "blog"
	NotificationTypeReply   = "reply"
)

// Notification is a fan-out message created as a side effect of likes,
// comments, replies, follow requests and publishes. Follow-request
// notifications carry a Status that mirrors the Follow edge and is mutated
// in place when the request is accepted or rejected.
type Notification struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	Type       string    `json:"type" gorm:"size:20;index"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"isRead" gorm:"default:false;index"`
	Status     string    `json:"status,omitempty" gorm:"size:20"`
	SenderID   string    `json:"senderId" gorm:"type:uuid;index"`
	ReceiverID string    `json:"receiverId" gorm:"type:uuid;index"`
	BlogID     *string   `json:"blogId,omitempty" gorm:"type:uuid"`
	CommentID  *string   `json:"commentId,omitempty" gorm:"type:uuid;index"`
	Sender     *User     `json:"sender,omitempty" gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
