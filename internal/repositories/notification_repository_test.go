package repositories

import (
	"errors"
	"testing"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNotificationRepository(t *testing.T) {
	t.Run("list is paginated newest first", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostgresNotificationRepository(db)
		recipient := createTestUser(t, db, "recipient")
		actor := createTestUser(t, db, "actor")

		for i := 0; i < 5; i++ {
			require.NoError(t, repo.CreateNotification(&models.Notification{
				RecipientID: recipient.ID,
				ActorID:     actor.ID,
				Type:        models.NotificationPostReaction,
				Message:     "reaction",
			}))
		}

		notifications, total, err := repo.GetByRecipientID(recipient.ID, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Len(t, notifications, 3)
		for i := 1; i < len(notifications); i++ {
			assert.False(t, notifications[i].CreatedAt.After(notifications[i-1].CreatedAt))
		}

		notifications, _, err = repo.GetByRecipientID(recipient.ID, 2, 3)
		require.NoError(t, err)
		assert.Len(t, notifications, 2)
	})

	t.Run("unread count and mark all", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostgresNotificationRepository(db)
		recipient := createTestUser(t, db, "recipient")

		for i := 0; i < 3; i++ {
			require.NoError(t, repo.CreateNotification(&models.Notification{
				RecipientID: recipient.ID,
				Type:        models.NotificationNewPost,
			}))
		}

		count, err := repo.GetUnreadCount(recipient.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		require.NoError(t, repo.MarkAllAsRead(recipient.ID))

		count, err = repo.GetUnreadCount(recipient.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("mark as read requires ownership", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostgresNotificationRepository(db)
		owner := createTestUser(t, db, "owner")
		stranger := createTestUser(t, db, "stranger")

		notification := &models.Notification{RecipientID: owner.ID, Type: models.NotificationCommentReply}
		require.NoError(t, repo.CreateNotification(notification))

		err := repo.MarkAsRead(notification.ID, stranger.ID)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

		require.NoError(t, repo.MarkAsRead(notification.ID, owner.ID))

		var reloaded models.Notification
		require.NoError(t, db.First(&reloaded, notification.ID).Error)
		assert.True(t, reloaded.IsRead)
	})

	t.Run("delete requires ownership", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostgresNotificationRepository(db)
		owner := createTestUser(t, db, "owner")
		stranger := createTestUser(t, db, "stranger")

		notification := &models.Notification{RecipientID: owner.ID, Type: models.NotificationCommentReply}
		require.NoError(t, repo.CreateNotification(notification))

		err := repo.DeleteNotification(notification.ID, stranger.ID)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

		require.NoError(t, repo.DeleteNotification(notification.ID, owner.ID))

		var rows int64
		require.NoError(t, db.Model(&models.Notification{}).Count(&rows).Error)
		assert.Equal(t, int64(0), rows)
	})
}
