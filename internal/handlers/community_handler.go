package handlers

import (
	"errors"
	"net/http"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/ahkili-app/backend/internal/permissions"
	"github.com/ahkili-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommunityHandler handles HTTP requests related to communities,
// membership, following, and moderators
type CommunityHandler struct {
	communityRepository repositories.CommunityRepository
	followerRepository  repositories.FollowerRepository
	postRepository      repositories.PostRepository
	userRepository      repositories.UserRepository
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(
	communityRepo repositories.CommunityRepository,
	followerRepo repositories.FollowerRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
) *CommunityHandler {
	return &CommunityHandler{
		communityRepository: communityRepo,
		followerRepository:  followerRepo,
		postRepository:      postRepo,
		userRepository:      userRepo,
	}
}

// RegisterCommunityRoutes registers community-related routes
func (h *CommunityHandler) RegisterCommunityRoutes(g *echo.Group) {
	g.GET("", h.GetCommunities)
	g.GET("/search", h.SearchCommunities)
	g.GET("/:id", h.GetCommunity)
	g.POST("", h.CreateCommunity)
	g.GET("/:id/stats", h.GetCommunityStats)

	g.POST("/:id/join", h.JoinCommunity)
	g.DELETE("/:id/leave", h.LeaveCommunity)
	g.GET("/:id/check-membership", h.CheckMembership)

	g.POST("/:id/follow", h.FollowCommunity)
	g.DELETE("/:id/follow", h.UnfollowCommunity)
	g.GET("/:id/follow/check", h.CheckFollowing)
	g.GET("/:id/followers", h.GetFollowers)

	g.POST("/:id/moderators", h.AddModerator)
	g.DELETE("/:id/moderators/:user_id", h.RemoveModerator)
	g.GET("/:id/moderators", h.GetModerators)
}

// GetCommunities lists communities
func (h *CommunityHandler) GetCommunities(c echo.Context) error {
	skip, limit := pagination(c, 100, 100)
	communities, err := h.communityRepository.GetCommunities(skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, communities)
}

// GetCommunity retrieves a community by ID
func (h *CommunityHandler) GetCommunity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	community, err := h.communityRepository.GetCommunityByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Community not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, community)
}

// CreateCommunity creates a community. Only verified professionals and
// admins may create one; the creator becomes moderator and member.
func (h *CommunityHandler) CreateCommunity(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	var req models.CreateCommunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if !permissions.CanCreateCommunity(user.Role) {
		return echo.NewHTTPError(http.StatusForbidden, "Only verified professionals can create communities")
	}

	community := &models.Community{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
	}
	if err := h.communityRepository.CreateCommunity(community); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusBadRequest, "A community with this name already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Creator moderates and belongs to the community from the start.
	if _, err := h.communityRepository.AssignModerator(community.ID, userID, userID); err != nil {
		c.Logger().Errorf("assigning creator as moderator: %v", err)
	}
	if _, err := h.communityRepository.JoinCommunity(community.ID, userID); err != nil {
		c.Logger().Errorf("auto-joining creator: %v", err)
	}

	return c.JSON(http.StatusCreated, community)
}

// SearchCommunities searches community names and descriptions
func (h *CommunityHandler) SearchCommunities(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	communities, err := h.communityRepository.SearchCommunities(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, communities)
}

// GetCommunityStats returns post and member counts for a community
func (h *CommunityHandler) GetCommunityStats(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.communityRepository.GetCommunityByID(id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Community not found")
	}

	postsCount, err := h.postRepository.GetPostsCountByCommunityID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	membersCount, err := h.communityRepository.GetMembersCount(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, models.CommunityStats{
		ID:           id,
		PostsCount:   postsCount,
		MembersCount: membersCount,
	})
}

// JoinCommunity adds the user as a member
func (h *CommunityHandler) JoinCommunity(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.communityRepository.GetCommunityByID(id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Community not found")
	}

	member, err := h.communityRepository.JoinCommunity(id, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Joined successfully", "member_id": member.ID})
}

// LeaveCommunity removes the user's membership
func (h *CommunityHandler) LeaveCommunity(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.communityRepository.LeaveCommunity(id, userID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not a member")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Left successfully"})
}

// CheckMembership reports whether the user is a member
func (h *CommunityHandler) CheckMembership(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	isMember, err := h.communityRepository.IsMember(id, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"is_member": isMember})
}

// FollowCommunity subscribes the user to new-post notifications
func (h *CommunityHandler) FollowCommunity(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.communityRepository.GetCommunityByID(id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Community not found")
	}

	follower, err := h.followerRepository.Follow(id, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, follower)
}

// UnfollowCommunity removes the follow
func (h *CommunityHandler) UnfollowCommunity(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.followerRepository.Unfollow(id, userID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not following this community")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed community"})
}

// CheckFollowing reports whether the user follows the community
func (h *CommunityHandler) CheckFollowing(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	isFollowing, err := h.followerRepository.IsFollowing(id, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"is_following": isFollowing})
}

// GetFollowers lists the community's followers
func (h *CommunityHandler) GetFollowers(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	followers, err := h.followerRepository.GetFollowers(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	compact := make([]models.UserCompact, len(followers))
	for i := range followers {
		compact[i] = followers[i].ToCompact()
	}

	return c.JSON(http.StatusOK, echo.Map{"count": len(compact), "followers": compact})
}

// AddModerator assigns a moderator (community creator or admin only)
func (h *CommunityHandler) AddModerator(c echo.Context) error {
	assignedBy, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		UserID uint `json:"user_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	community, err := h.communityRepository.GetCommunityByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Community not found")
	}

	assigner, err := h.userRepository.GetUserByID(assignedBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Assigner not found")
	}
	if !permissions.CanManageModerators(assigner.ID, assigner.Role, community.CreatedBy) {
		return echo.NewHTTPError(http.StatusForbidden, "Only community creator or admins can assign moderators")
	}

	if _, err := h.userRepository.GetUserByID(req.UserID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	alreadyMod, err := h.communityRepository.IsModerator(id, req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if alreadyMod {
		return echo.NewHTTPError(http.StatusBadRequest, "User is already a moderator")
	}

	moderator, err := h.communityRepository.AssignModerator(id, req.UserID, assignedBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Moderator assigned successfully", "moderator_id": moderator.ID})
}

// RemoveModerator removes a moderator (creator irremovable)
func (h *CommunityHandler) RemoveModerator(c echo.Context) error {
	removedBy, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	targetID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	community, err := h.communityRepository.GetCommunityByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Community not found")
	}

	remover, err := h.userRepository.GetUserByID(removedBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if targetID == community.CreatedBy {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot remove community creator as moderator")
	}
	if !permissions.CanRemoveModerator(remover.ID, remover.Role, community.CreatedBy, targetID) {
		return echo.NewHTTPError(http.StatusForbidden, "Only community creator or admins can remove moderators")
	}

	if err := h.communityRepository.RemoveModerator(id, targetID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Moderator not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Moderator removed successfully"})
}

// GetModerators lists a community's moderators with user details
func (h *CommunityHandler) GetModerators(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	community, err := h.communityRepository.GetCommunityByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Community not found")
	}

	moderators, err := h.communityRepository.GetModerators(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	details := make([]models.ModeratorDetail, 0, len(moderators))
	for _, mod := range moderators {
		user, err := h.userRepository.GetUserByID(mod.UserID)
		if err != nil {
			continue
		}
		details = append(details, models.ModeratorDetail{
			ID:         mod.ID,
			UserID:     user.ID,
			Username:   user.Username,
			AssignedAt: mod.AssignedAt,
			IsCreator:  user.ID == community.CreatedBy,
		})
	}

	return c.JSON(http.StatusOK, details)
}
