package repositories

import (
	"testing"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostReactionToggle(t *testing.T) {
	t.Run("toggle adds then removes", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostgresPostReactionRepository(db)
		user := createTestUser(t, db, "alice")
		post := createTestPost(t, db, user.ID, "First post")

		added, err := repo.Toggle(post.ID, user.ID, models.ReactionLike)
		require.NoError(t, err)
		assert.True(t, added)

		count, err := repo.GetCountByPostID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		hasReacted, err := repo.HasUserReacted(post.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, hasReacted)

		added, err = repo.Toggle(post.ID, user.ID, models.ReactionLike)
		require.NoError(t, err)
		assert.False(t, added)

		count, err = repo.GetCountByPostID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("double toggle leaves no net row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostgresPostReactionRepository(db)
		user := createTestUser(t, db, "alice")
		post := createTestPost(t, db, user.ID, "First post")

		_, err := repo.Toggle(post.ID, user.ID, models.ReactionLike)
		require.NoError(t, err)
		_, err = repo.Toggle(post.ID, user.ID, models.ReactionLike)
		require.NoError(t, err)

		var rows int64
		require.NoError(t, db.Model(&models.PostReaction{}).Count(&rows).Error)
		assert.Equal(t, int64(0), rows)
	})

	t.Run("reactions from different users accumulate", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostgresPostReactionRepository(db)
		author := createTestUser(t, db, "author")
		post := createTestPost(t, db, author.ID, "Popular post")

		for _, name := range []string{"u1", "u2", "u3"} {
			user := createTestUser(t, db, name)
			added, err := repo.Toggle(post.ID, user.ID, models.ReactionLike)
			require.NoError(t, err)
			assert.True(t, added)
		}

		count, err := repo.GetCountByPostID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("unique index keeps one row per user", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db, "alice")
		post := createTestPost(t, db, user.ID, "First post")

		require.NoError(t, db.Create(&models.PostReaction{PostID: post.ID, UserID: user.ID, ReactionType: models.ReactionLike}).Error)
		err := db.Create(&models.PostReaction{PostID: post.ID, UserID: user.ID, ReactionType: models.ReactionLike}).Error
		assert.Error(t, err)
	})
}
