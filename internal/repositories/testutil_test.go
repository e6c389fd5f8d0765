package repositories

import (
	"testing"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
// TranslateError is on so unique-constraint races behave like production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
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
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Role: models.RoleUser}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Title: title, Content: "content"}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, postID, userID uint, parentID *uint) *models.Comment {
	t.Helper()
	comment := &models.Comment{PostID: postID, UserID: userID, ParentID: parentID, Content: "a comment"}
	require.NoError(t, db.Create(comment).Error)
	return comment
}
