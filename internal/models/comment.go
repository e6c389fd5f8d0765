package models

import "time"

// Comment belongs to a post. A nil ParentID marks a top-level comment; a
// non-nil ParentID marks a reply to another comment on the same post.
// Threading is one level deep: replies never have replies of their own.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	ParentID  *uint     `json:"parent_id" gorm:"index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	Replies   []Comment         `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Reactions []CommentReaction `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// CommentView is a comment entry enriched with its author summary and
// reaction aggregates. Top-level entries carry their replies; reply
// entries always have an empty Replies slice.
type CommentView struct {
	ID           uint          `json:"id"`
	PostID       uint          `json:"post_id"`
	ParentID     *uint         `json:"parent_id,omitempty"`
	Content      string        `json:"content"`
	CreatedAt    time.Time     `json:"created_at"`
	Author       UserCompact   `json:"author"`
	Likes        int64         `json:"likes"`
	Dislikes     int64         `json:"dislikes"`
	UserReaction string        `json:"user_reaction,omitempty"`
	Replies      []CommentView `json:"replies"`
}
