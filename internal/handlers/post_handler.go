package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/ahkili-app/backend/internal/notifier"
	"github.com/ahkili-app/backend/internal/permissions"
	"github.com/ahkili-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository      repositories.PostRepository
	userRepository      repositories.UserRepository
	communityRepository repositories.CommunityRepository
	reactionRepository  repositories.PostReactionRepository
	commentRepository   repositories.CommentRepository
	notifier            *notifier.Notifier
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	communityRepo repositories.CommunityRepository,
	reactionRepo repositories.PostReactionRepository,
	commentRepo repositories.CommentRepository,
	n *notifier.Notifier,
) *PostHandler {
	return &PostHandler{
		postRepository:      postRepo,
		userRepository:      userRepo,
		communityRepository: communityRepo,
		reactionRepository:  reactionRepo,
		commentRepository:   commentRepo,
		notifier:            n,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("", h.GetPosts)
	g.GET("/search", h.SearchPosts)
	g.GET("/user/:user_id", h.GetUserPosts)
	g.GET("/:id", h.GetPost)
	g.POST("", h.CreatePost)
	g.DELETE("/:id", h.DeletePost)
}

// enrichPost attaches read-time aggregates to a post. viewerID 0 means
// no viewer context was supplied.
func (h *PostHandler) enrichPost(post models.Post, viewerID uint) models.PostWithReactions {
	enriched := models.PostWithReactions{Post: post}
	enriched.ReactionsCount, _ = h.reactionRepository.GetCountByPostID(post.ID)
	enriched.CommentsCount, _ = h.commentRepository.GetCommentsCountByPostID(post.ID)
	if viewerID != 0 {
		enriched.UserHasReacted, _ = h.reactionRepository.HasUserReacted(post.ID, viewerID)
	}
	return enriched
}

func (h *PostHandler) enrichPosts(posts []models.Post, viewerID uint) []models.PostWithReactions {
	enriched := make([]models.PostWithReactions, len(posts))
	for i, post := range posts {
		enriched[i] = h.enrichPost(post, viewerID)
	}
	return enriched
}

// viewerFromQuery reads an optional user_id query parameter.
func viewerFromQuery(c echo.Context) uint {
	id, _ := strconv.ParseUint(c.QueryParam("user_id"), 10, 32)
	return uint(id)
}

// GetPosts lists posts newest first, optionally filtered by community
func (h *PostHandler) GetPosts(c echo.Context) error {
	skip, limit := pagination(c, 100, 100)

	var communityID *uint
	if raw := c.QueryParam("community_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid community_id")
		}
		cid := uint(id)
		communityID = &cid
	}

	posts, err := h.postRepository.GetPosts(skip, limit, communityID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.enrichPosts(posts, viewerFromQuery(c)))
}

// GetPost retrieves a single post with its aggregates
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.enrichPost(*post, viewerFromQuery(c)))
}

// CreatePost creates a new post and fans out new-post notifications to
// followers of the community it was posted in
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
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
	if !permissions.CanPost(user.Role) {
		return echo.NewHTTPError(http.StatusForbidden, "Banned users cannot post")
	}

	var community *models.Community
	if req.CommunityID != nil {
		community, err = h.communityRepository.GetCommunityByID(*req.CommunityID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Community not found")
		}
	}

	post := &models.Post{
		UserID:      userID,
		CommunityID: req.CommunityID,
		Title:       req.Title,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		IsAnonymous: req.IsAnonymous,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Post is committed; follower fan-out happens off-request.
	h.notifier.PostCreated(post, user, community)

	return c.JSON(http.StatusCreated, post)
}

// DeletePost deletes a post (owner, moderator, or admin)
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if !permissions.CanDeletePost(user.ID, user.Role, post.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

// GetUserPosts lists a user's posts newest first
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	posts, err := h.postRepository.GetPostsByUserID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.enrichPosts(posts, viewerFromQuery(c)))
}

// SearchPosts searches post titles and bodies
func (h *PostHandler) SearchPosts(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	skip, limit := pagination(c, 50, 100)

	posts, err := h.postRepository.SearchPosts(query, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.enrichPosts(posts, viewerFromQuery(c)))
}
