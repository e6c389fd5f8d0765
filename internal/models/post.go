package models

import "time"

// Post belongs to an author and optionally to a community. Reaction and
// comment counts are derived at read time, never stored.
type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	CommunityID *uint     `json:"community_id" gorm:"index"`
	Title       string    `json:"title" gorm:"type:text;not null"`
	Content     string    `json:"content" gorm:"type:text"`
	ImageURL    string    `json:"image_url,omitempty" gorm:"type:text"`
	VideoURL    string    `json:"video_url,omitempty" gorm:"type:text"`
	IsAnonymous bool      `json:"is_anonymous" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`

	Comments  []Comment      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Reactions []PostReaction `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Content     string `json:"content" validate:"required,min=1"`
	CommunityID *uint  `json:"community_id,omitempty"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
	VideoURL    string `json:"video_url,omitempty" validate:"omitempty,url"`
	IsAnonymous bool   `json:"is_anonymous,omitempty"`
}

// PostWithReactions is a post enriched with read-time aggregates.
type PostWithReactions struct {
	Post
	ReactionsCount int64 `json:"reactions_count"`
	CommentsCount  int64 `json:"comments_count"`
	UserHasReacted bool  `json:"user_has_reacted"`
}
