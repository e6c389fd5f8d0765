package repositories

import (
	"testing"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentReactionToggle(t *testing.T) {
	t.Run("like dislike none cycle", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostgresCommentReactionRepository(db)
		author := createTestUser(t, db, "author")
		reactor := createTestUser(t, db, "reactor")
		post := createTestPost(t, db, author.ID, "A post")
		comment := createTestComment(t, db, post.ID, author.ID, nil)

		// none -> like creates a row
		state, err := repo.Toggle(comment.ID, reactor.ID, models.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, models.ReactionLike, state)

		counts, err := repo.GetCounts(comment.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts.Likes)
		assert.Equal(t, int64(0), counts.Dislikes)

		// like -> dislike switches the same row in place
		state, err = repo.Toggle(comment.ID, reactor.ID, models.ReactionDislike)
		require.NoError(t, err)
		assert.Equal(t, models.ReactionDislike, state)

		var rows int64
		require.NoError(t, db.Model(&models.CommentReaction{}).
			Where("comment_id = ? AND user_id = ?", comment.ID, reactor.ID).Count(&rows).Error)
		assert.Equal(t, int64(1), rows)

		counts, err = repo.GetCounts(comment.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), counts.Likes)
		assert.Equal(t, int64(1), counts.Dislikes)

		// dislike -> dislike removes the reaction
		state, err = repo.Toggle(comment.ID, reactor.ID, models.ReactionDislike)
		require.NoError(t, err)
		assert.Equal(t, "", state)

		userReaction, err := repo.GetUserReaction(comment.ID, reactor.ID)
		require.NoError(t, err)
		assert.Equal(t, "", userReaction)

		counts, err = repo.GetCounts(comment.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), counts.Likes)
		assert.Equal(t, int64(0), counts.Dislikes)
	})

	t.Run("same type toggle deletes", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostgresCommentReactionRepository(db)
		user := createTestUser(t, db, "u")
		post := createTestPost(t, db, user.ID, "A post")
		comment := createTestComment(t, db, post.ID, user.ID, nil)

		state, err := repo.Toggle(comment.ID, user.ID, models.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, models.ReactionLike, state)

		state, err = repo.Toggle(comment.ID, user.ID, models.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, "", state)

		var rows int64
		require.NoError(t, db.Model(&models.CommentReaction{}).Count(&rows).Error)
		assert.Equal(t, int64(0), rows)
	})

	t.Run("user reaction read path", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPostgresCommentReactionRepository(db)
		user := createTestUser(t, db, "u")
		other := createTestUser(t, db, "other")
		post := createTestPost(t, db, user.ID, "A post")
		comment := createTestComment(t, db, post.ID, user.ID, nil)

		_, err := repo.Toggle(comment.ID, user.ID, models.ReactionDislike)
		require.NoError(t, err)

		reaction, err := repo.GetUserReaction(comment.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ReactionDislike, reaction)

		reaction, err = repo.GetUserReaction(comment.ID, other.ID)
		require.NoError(t, err)
		assert.Equal(t, "", reaction)
	})
}
