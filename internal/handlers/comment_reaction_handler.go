package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/ahkili-app/backend/internal/notifier"
	"github.com/ahkili-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentReactionHandler handles like/dislike reactions on comments
type CommentReactionHandler struct {
	reactionRepository repositories.CommentReactionRepository
	commentRepository  repositories.CommentRepository
	userRepository     repositories.UserRepository
	notifier           *notifier.Notifier
}

// NewCommentReactionHandler creates a new CommentReactionHandler
func NewCommentReactionHandler(
	reactionRepo repositories.CommentReactionRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	n *notifier.Notifier,
) *CommentReactionHandler {
	return &CommentReactionHandler{
		reactionRepository: reactionRepo,
		commentRepository:  commentRepo,
		userRepository:     userRepo,
		notifier:           n,
	}
}

// RegisterCommentReactionRoutes registers comment reaction routes
func (h *CommentReactionHandler) RegisterCommentReactionRoutes(g *echo.Group) {
	g.POST("/comment/:comment_id", h.ToggleReaction)
	g.GET("/comment/:comment_id", h.GetReactions)
}

// ToggleReaction cycles a comment reaction: none -> type, same type ->
// none, other type -> switch. Creating or switching notifies the comment
// author; removal does not.
func (h *CommentReactionHandler) ToggleReaction(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}

	reactionType := c.QueryParam("reaction_type")
	if reactionType == "" {
		reactionType = models.ReactionLike
	}
	if reactionType != models.ReactionLike && reactionType != models.ReactionDislike {
		return echo.NewHTTPError(http.StatusBadRequest, "reaction_type must be 'like' or 'dislike'")
	}

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	state, err := h.reactionRepository.Toggle(commentID, userID, reactionType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if state != "" {
		if user, err := h.userRepository.GetUserByID(userID); err == nil {
			h.notifier.CommentReactionSet(comment, user, state)
		}
	}

	counts, err := h.reactionRepository.GetCounts(commentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"likes":         counts.Likes,
		"dislikes":      counts.Dislikes,
		"user_reaction": state,
	})
}

// GetReactions returns reaction counts for a comment, plus the viewer's
// own reaction when a user_id is supplied
func (h *CommentReactionHandler) GetReactions(c echo.Context) error {
	commentID, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}

	counts, err := h.reactionRepository.GetCounts(commentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	userReaction := ""
	if raw := c.QueryParam("user_id"); raw != "" {
		userID, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user_id")
		}
		userReaction, err = h.reactionRepository.GetUserReaction(commentID, uint(userID))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"likes":         counts.Likes,
		"dislikes":      counts.Dislikes,
		"user_reaction": userReaction,
	})
}
