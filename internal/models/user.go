package models

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents a registered author/reader account
type User struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string         `json:"name"`
	Username    string         `json:"username" gorm:"uniqueIndex"`
	Email       string         `json:"email" gorm:"uniqueIndex"`
	Password    string         `json:"-"` // bcrypt hash, never serialized
	Bio         string         `json:"bio"`
	ProfileURL  string         `json:"profileUrl"`
	IsPrivate   bool           `json:"isPrivate" gorm:"default:false"`
	SocialLinks datatypes.JSON `json:"socialLinks,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserCompact is the public projection embedded in blogs, comments and notifications
type UserCompact struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	ProfileURL string `json:"profileUrl"`
}

// ToCompact returns the public projection of the user
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		ProfileURL: u.ProfileURL,
	}
}

// RandomAvatarURL picks a dicebear avatar from the configured style list.
// The style list comes from configuration rather than being hard-coded.
func RandomAvatarURL(styles []string) string {
	if len(styles) == 0 {
		return ""
	}
	style := styles[rand.Intn(len(styles))]
	seed := rand.Intn(10000)
	return fmt.Sprintf("https://api.dicebear.com/7.x/%s/svg?seed=%d", style, seed)
}

// SignupRequest defines the request body for user registration
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
}

// SigninRequest defines the request body for user login
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile edits
type UpdateProfileRequest struct {
	Name        string         `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Username    string         `json:"username,omitempty" validate:"omitempty,min=2,max=40"`
	Bio         string         `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfileURL  string         `json:"profileUrl,omitempty" validate:"omitempty,url"`
	IsPrivate   *bool          `json:"isPrivate,omitempty"`
	SocialLinks datatypes.JSON `json:"socialLinks,omitempty"`
}

// ChangePasswordRequest defines the request body for password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,strongpassword"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}
