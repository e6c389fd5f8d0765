// Package permissions centralizes role checks as pure functions of the
// actor's role and resource ownership, instead of inline comparisons
// scattered across handlers.
package permissions

import "github.com/ahkili-app/backend/internal/models"

// CanPost reports whether a user may create posts, comments, or reactions.
func CanPost(role string) bool {
	return role != models.RoleBanned
}

// CanCreateCommunity limits community creation to verified professionals
// and admins.
func CanCreateCommunity(role string) bool {
	return role == models.RoleDoctor || role == models.RoleAdmin
}

// CanDeletePost allows the post's owner, moderators, and admins.
func CanDeletePost(actorID uint, actorRole string, postOwnerID uint) bool {
	if actorRole == models.RoleBanned {
		return false
	}
	return actorID == postOwnerID ||
		actorRole == models.RoleModerator ||
		actorRole == models.RoleAdmin
}

// CanManageModerators allows the community's creator and admins to assign
// or remove moderators.
func CanManageModerators(actorID uint, actorRole string, communityCreatorID uint) bool {
	return actorID == communityCreatorID || actorRole == models.RoleAdmin
}

// CanRemoveModerator additionally protects the community creator from
// being removed.
func CanRemoveModerator(actorID uint, actorRole string, communityCreatorID, targetID uint) bool {
	if targetID == communityCreatorID {
		return false
	}
	return CanManageModerators(actorID, actorRole, communityCreatorID)
}

// CanReviewVerifications limits verification review to admins.
func CanReviewVerifications(role string) bool {
	return role == models.RoleAdmin
}
