package handlers

import (
	"errors"
	"net/http"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/ahkili-app/backend/internal/notifier"
	"github.com/ahkili-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ReactionHandler handles HTTP requests related to post reactions
type ReactionHandler struct {
	reactionRepository repositories.PostReactionRepository
	postRepository     repositories.PostRepository
	userRepository     repositories.UserRepository
	notifier           *notifier.Notifier
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(
	reactionRepo repositories.PostReactionRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	n *notifier.Notifier,
) *ReactionHandler {
	return &ReactionHandler{
		reactionRepository: reactionRepo,
		postRepository:     postRepo,
		userRepository:     userRepo,
		notifier:           n,
	}
}

// RegisterReactionRoutes registers post reaction routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/post/:post_id", h.ToggleReaction)
	g.GET("/post/:post_id/count", h.GetReactionsCount)
	g.GET("/post/:post_id/user/:user_id", h.CheckUserReaction)
}

// ToggleReaction likes or unlikes a post. Adding a reaction notifies the
// post's author; removing one never does.
func (h *ReactionHandler) ToggleReaction(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "post_id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	added, err := h.reactionRepository.Toggle(postID, userID, models.ReactionLike)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if added {
		if user, err := h.userRepository.GetUserByID(userID); err == nil {
			h.notifier.PostReactionAdded(post, user)
		}
	}

	count, err := h.reactionRepository.GetCountByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"reactions_count":  count,
		"user_has_reacted": added,
	})
}

// GetReactionsCount returns the reaction count for a post
func (h *ReactionHandler) GetReactionsCount(c echo.Context) error {
	postID, err := pathID(c, "post_id")
	if err != nil {
		return err
	}

	count, err := h.reactionRepository.GetCountByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// CheckUserReaction reports whether a user has reacted to a post
func (h *ReactionHandler) CheckUserReaction(c echo.Context) error {
	postID, err := pathID(c, "post_id")
	if err != nil {
		return err
	}
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	hasReacted, err := h.reactionRepository.HasUserReacted(postID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"has_reacted": hasReacted})
}
