package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxCommentDepth is the advisory nesting limit for replies. Writes deeper
// than this are still accepted; the limit exists for clients that indent.
const MaxCommentDepth = 5

// Comment represents a threaded comment on a blog. Replies reference their
// parent through ParentID (adjacency list).
type Comment struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Text      string    `json:"text"`
	UserID    string    `json:"userId" gorm:"type:uuid;index"`
	BlogID    string    `json:"blogId" gorm:"type:uuid;index"`
	ParentID  *string   `json:"parentId,omitempty" gorm:"type:uuid;index"`
	Depth     int       `json:"depth" gorm:"default:0"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CommentNode is a comment with its direct replies nested recursively
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentForest turns a flat, createdAt-ascending comment list into a
// nested forest in a single group-by-parent pass. Comments whose parent is
// missing from the list (the parent was deleted) are dropped, matching what
// a per-level walk from the roots would return.
func BuildCommentForest(comments []Comment) []*CommentNode {
	nodes := make(map[string]*CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &CommentNode{
			Comment: comments[i],
			Replies: []*CommentNode{},
		}
	}

	roots := make([]*CommentNode, 0, len(comments))
	for i := range comments {
		node := nodes[comments[i].ID]
		if comments[i].ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*comments[i].ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}
	return roots
}

// CreateCommentRequest defines the request body for commenting on a blog
type CreateCommentRequest struct {
	Text     string  `json:"text" validate:"required,min=1,max=5000"`
	ParentID *string `json:"parentId,omitempty" validate:"omitempty,uuid"`
}
