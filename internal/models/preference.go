package models

import "time"

// NotificationPreference holds per-user notification flags. A row is only
// persisted once the user changes something; reads fall back to defaults.
// The email/push flags are stored for delivery integrations but do not
// gate in-app notification rows.
type NotificationPreference struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	UserID             uint      `json:"user_id" gorm:"uniqueIndex"`
	CommentReplies     bool      `json:"comment_replies" gorm:"default:true"`
	CommentReactions   bool      `json:"comment_reactions" gorm:"default:true"`
	PostReactions      bool      `json:"post_reactions" gorm:"default:true"`
	NewPosts           bool      `json:"new_posts" gorm:"default:true"`
	EmailNotifications bool      `json:"email_notifications" gorm:"default:true"`
	PushNotifications  bool      `json:"push_notifications" gorm:"default:true"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DefaultPreferences returns the all-enabled preference record used when
// a user has never saved one.
func DefaultPreferences(userID uint) *NotificationPreference {
	return &NotificationPreference{
		UserID:             userID,
		CommentReplies:     true,
		CommentReactions:   true,
		PostReactions:      true,
		NewPosts:           true,
		EmailNotifications: true,
		PushNotifications:  true,
	}
}

// Allows reports whether the preference record permits a notification of
// the given category. Unknown categories are allowed through.
func (p *NotificationPreference) Allows(category string) bool {
	switch category {
	case NotificationCommentReply:
		return p.CommentReplies
	case NotificationCommentReaction:
		return p.CommentReactions
	case NotificationPostReaction:
		return p.PostReactions
	case NotificationNewPost:
		return p.NewPosts
	}
	return true
}

// UpdatePreferencesRequest defines the request body for saving preferences
type UpdatePreferencesRequest struct {
	CommentReplies     *bool `json:"comment_replies,omitempty"`
	CommentReactions   *bool `json:"comment_reactions,omitempty"`
	PostReactions      *bool `json:"post_reactions,omitempty"`
	NewPosts           *bool `json:"new_posts,omitempty"`
	EmailNotifications *bool `json:"email_notifications,omitempty"`
	PushNotifications  *bool `json:"push_notifications,omitempty"`
}
