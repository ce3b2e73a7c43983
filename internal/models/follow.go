package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow edge lifecycle states
const (
	FollowStatusPending  = "pending"
	FollowStatusAccepted = "accepted"
	FollowStatusRejected = "rejected"
)

// Follow represents a directed follow edge with an approval status.
// Following a private account starts pending; a public account starts accepted.
type Follow struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	FollowerID  string    `json:"followerId" gorm:"type:uuid;index;uniqueIndex:idx_follower_following"`
	FollowingID string    `json:"followingId" gorm:"type:uuid;index;uniqueIndex:idx_follower_following"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Follower    *User     `json:"follower,omitempty" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Following   *User     `json:"following,omitempty" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
