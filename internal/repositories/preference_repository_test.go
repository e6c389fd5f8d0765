package repositories

import (
	"testing"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestPreferenceRepository(t *testing.T) {
	t.Run("read returns defaults without writing a row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostgresPreferenceRepository(db)
		user := createTestUser(t, db, "alice")

		prefs, err := repo.GetPreferences(user.ID)
		require.NoError(t, err)
		assert.True(t, prefs.CommentReplies)
		assert.True(t, prefs.CommentReactions)
		assert.True(t, prefs.PostReactions)
		assert.True(t, prefs.NewPosts)

		var rows int64
		require.NoError(t, db.Model(&models.NotificationPreference{}).Count(&rows).Error)
		assert.Equal(t, int64(0), rows)
	})

	t.Run("update persists and later reads see it", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostgresPreferenceRepository(db)
		user := createTestUser(t, db, "alice")

		updated, err := repo.UpdatePreferences(user.ID, &models.UpdatePreferencesRequest{
			NewPosts: boolPtr(false),
		})
		require.NoError(t, err)
		assert.False(t, updated.NewPosts)
		assert.True(t, updated.CommentReplies)

		var rows int64
		require.NoError(t, db.Model(&models.NotificationPreference{}).Count(&rows).Error)
		assert.Equal(t, int64(1), rows)

		prefs, err := repo.GetPreferences(user.ID)
		require.NoError(t, err)
		assert.False(t, prefs.NewPosts)
		assert.True(t, prefs.PostReactions)
	})

	t.Run("partial update leaves other flags untouched", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostgresPreferenceRepository(db)
		user := createTestUser(t, db, "alice")

		_, err := repo.UpdatePreferences(user.ID, &models.UpdatePreferencesRequest{
			CommentReactions: boolPtr(false),
		})
		require.NoError(t, err)

		_, err = repo.UpdatePreferences(user.ID, &models.UpdatePreferencesRequest{
			PushNotifications: boolPtr(false),
		})
		require.NoError(t, err)

		prefs, err := repo.GetPreferences(user.ID)
		require.NoError(t, err)
		assert.False(t, prefs.CommentReactions)
		assert.False(t, prefs.PushNotifications)
		assert.True(t, prefs.CommentReplies)

		var rows int64
		require.NoError(t, db.Model(&models.NotificationPreference{}).Count(&rows).Error)
		assert.Equal(t, int64(1), rows)
	})
}
