package models

import "time"

// Reaction types. Posts currently only use "like"; comments use both.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// PostReaction represents a like on a post. Existence means liked; there
// is at most one row per (post, user).
type PostReaction struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	PostID       uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_reaction"`
	UserID       uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_reaction"`
	ReactionType string    `json:"reaction_type" gorm:"size:20;default:'like'"`
	CreatedAt    time.Time `json:"created_at"`
}

// CommentReaction is a like or dislike on a comment, at most one row per
// (comment, user). Switching type updates the row in place.
type CommentReaction struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CommentID    uint      `json:"comment_id" gorm:"index;uniqueIndex:idx_comment_user_reaction"`
	UserID       uint      `json:"user_id" gorm:"index;uniqueIndex:idx_comment_user_reaction"`
	ReactionType string    `json:"reaction_type" gorm:"size:20"`
	CreatedAt    time.Time `json:"created_at"`
}

// CommentReactionCounts is the aggregate returned by the comment
// reaction read path.
type CommentReactionCounts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}
