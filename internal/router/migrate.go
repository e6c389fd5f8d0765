package router

import (
	"github.com/ahkili-app/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.CommunityMember{},
		&models.CommunityFollower{},
		&models.CommunityModerator{},
		&models.Post{},
		&models.Comment{},
		&models.PostReaction{},
		&models.CommentReaction{},
		&models.Notification{},
		&models.NotificationPreference{},
		&models.Hotline{},
		&models.DoctorVerification{},
	)
}
