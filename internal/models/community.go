package models

import "time"

// Community is a topic-focused support group that users can join or follow.
type Community struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:50;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedBy   uint      `json:"created_by" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommunityMember records membership. Membership and following are
// independent relations: joining does not imply following.
type CommunityMember struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CommunityID uint      `json:"community_id" gorm:"index;uniqueIndex:idx_community_user_member"`
	UserID      uint      `json:"user_id" gorm:"index;uniqueIndex:idx_community_user_member"`
	JoinedAt    time.Time `json:"joined_at" gorm:"autoCreateTime"`
}

// CommunityFollower records a follow; followers receive new-post notifications.
type CommunityFollower struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CommunityID uint      `json:"community_id" gorm:"index;uniqueIndex:idx_community_user_follow"`
	UserID      uint      `json:"user_id" gorm:"index;uniqueIndex:idx_community_user_follow"`
	CreatedAt   time.Time `json:"created_at"`
}

type CommunityModerator struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CommunityID uint      `json:"community_id" gorm:"index;uniqueIndex:idx_community_user_mod"`
	UserID      uint      `json:"user_id" gorm:"index;uniqueIndex:idx_community_user_mod"`
	AssignedBy  uint      `json:"assigned_by"`
	AssignedAt  time.Time `json:"assigned_at" gorm:"autoCreateTime"`
}

// CreateCommunityRequest defines the request body for creating a community
type CreateCommunityRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"required,min=1"`
}

// CommunityStats is the read-time aggregate for a community.
type CommunityStats struct {
	ID           uint  `json:"id"`
	PostsCount   int64 `json:"posts_count"`
	MembersCount int64 `json:"members_count"`
}

// ModeratorDetail is the enriched moderator entry returned by the
// moderator listing endpoint.
type ModeratorDetail struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username"`
	AssignedAt time.Time `json:"assigned_at"`
	IsCreator  bool      `json:"is_creator"`
}
