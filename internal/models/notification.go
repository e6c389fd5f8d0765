package models

import "time"

// Notification categories. Each category maps to one preference flag.
const (
	NotificationCommentReply    = "comment_reply"
	NotificationCommentReaction = "comment_reaction"
	NotificationPostReaction    = "post_reaction"
	NotificationNewPost         = "new_post"
)

// Notification is immutable after creation except for the IsRead flag.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	Type        string    `json:"type" gorm:"size:30;index"`
	Title       string    `json:"title" gorm:"size:100"`
	Message     string    `json:"message" gorm:"type:text"`
	TargetType  string    `json:"target_type" gorm:"size:20"` // post, comment
	TargetID    uint      `json:"target_id"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
