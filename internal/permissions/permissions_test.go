package permissions

import (
	"testing"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanPost(t *testing.T) {
	assert.True(t, CanPost(models.RoleUser))
	assert.True(t, CanPost(models.RoleDoctor))
	assert.True(t, CanPost(models.RoleModerator))
	assert.True(t, CanPost(models.RoleAdmin))
	assert.False(t, CanPost(models.RoleBanned))
}

func TestCanCreateCommunity(t *testing.T) {
	assert.True(t, CanCreateCommunity(models.RoleDoctor))
	assert.True(t, CanCreateCommunity(models.RoleAdmin))
	assert.False(t, CanCreateCommunity(models.RoleUser))
	assert.False(t, CanCreateCommunity(models.RoleModerator))
	assert.False(t, CanCreateCommunity(models.RoleBanned))
}

func TestCanDeletePost(t *testing.T) {
	const owner, stranger = uint(1), uint(2)

	t.Run("owner can delete their own post", func(t *testing.T) {
		assert.True(t, CanDeletePost(owner, models.RoleUser, owner))
	})

	t.Run("stranger cannot delete someone else's post", func(t *testing.T) {
		assert.False(t, CanDeletePost(stranger, models.RoleUser, owner))
		assert.False(t, CanDeletePost(stranger, models.RoleDoctor, owner))
	})

	t.Run("moderators and admins can delete any post", func(t *testing.T) {
		assert.True(t, CanDeletePost(stranger, models.RoleModerator, owner))
		assert.True(t, CanDeletePost(stranger, models.RoleAdmin, owner))
	})

	t.Run("banned users cannot delete, even their own", func(t *testing.T) {
		assert.False(t, CanDeletePost(owner, models.RoleBanned, owner))
	})
}

func TestCanManageModerators(t *testing.T) {
	const creator, stranger = uint(1), uint(2)

	assert.True(t, CanManageModerators(creator, models.RoleUser, creator))
	assert.True(t, CanManageModerators(stranger, models.RoleAdmin, creator))
	assert.False(t, CanManageModerators(stranger, models.RoleUser, creator))
	assert.False(t, CanManageModerators(stranger, models.RoleModerator, creator))
}

func TestCanRemoveModerator(t *testing.T) {
	const creator, admin, target = uint(1), uint(2), uint(3)

	t.Run("creator and admin can remove a moderator", func(t *testing.T) {
		assert.True(t, CanRemoveModerator(creator, models.RoleUser, creator, target))
		assert.True(t, CanRemoveModerator(admin, models.RoleAdmin, creator, target))
	})

	t.Run("the community creator cannot be removed", func(t *testing.T) {
		assert.False(t, CanRemoveModerator(admin, models.RoleAdmin, creator, creator))
		assert.False(t, CanRemoveModerator(creator, models.RoleUser, creator, creator))
	})
}

func TestCanReviewVerifications(t *testing.T) {
	assert.True(t, CanReviewVerifications(models.RoleAdmin))
	assert.False(t, CanReviewVerifications(models.RoleDoctor))
	assert.False(t, CanReviewVerifications(models.RoleModerator))
	assert.False(t, CanReviewVerifications(models.RoleUser))
}
