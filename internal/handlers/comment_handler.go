package handlers

import (
	"errors"
	"net/http"

	"github.com/ahkili-app/backend/internal/models"
	"github.com/ahkili-app/backend/internal/notifier"
	"github.com/ahkili-app/backend/internal/permissions"
	"github.com/ahkili-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository  repositories.CommentRepository
	postRepository     repositories.PostRepository
	userRepository     repositories.UserRepository
	reactionRepository repositories.CommentReactionRepository
	notifier           *notifier.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	reactionRepo repositories.CommentReactionRepository,
	n *notifier.Notifier,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:  commentRepo,
		postRepository:     postRepo,
		userRepository:     userRepo,
		reactionRepository: reactionRepo,
		notifier:           n,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/post/:post_id", h.GetCommentsByPostID)
	g.POST("/post/:post_id", h.CreateComment)
}

// buildCommentTree assembles flat rows into top-level entries with their
// replies attached. Rows arrive ordered by creation time, so parents and
// each parent's replies keep that order without re-sorting. A reply whose
// parent is not a top-level comment of this post is dropped.
func (h *CommentHandler) buildCommentTree(comments []models.Comment, viewerID uint) []models.CommentView {
	userCache := make(map[uint]models.UserCompact)

	view := func(comment models.Comment) models.CommentView {
		entry := models.CommentView{
			ID:        comment.ID,
			PostID:    comment.PostID,
			ParentID:  comment.ParentID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
			Replies:   []models.CommentView{},
		}
		if author, ok := userCache[comment.UserID]; ok {
			entry.Author = author
		} else if user, err := h.userRepository.GetUserByID(comment.UserID); err == nil {
			compact := user.ToCompact()
			userCache[comment.UserID] = compact
			entry.Author = compact
		}
		counts, err := h.reactionRepository.GetCounts(comment.ID)
		if err == nil {
			entry.Likes = counts.Likes
			entry.Dislikes = counts.Dislikes
		}
		if viewerID != 0 {
			entry.UserReaction, _ = h.reactionRepository.GetUserReaction(comment.ID, viewerID)
		}
		return entry
	}

	parents := make([]models.CommentView, 0, len(comments))
	parentIndex := make(map[uint]int)
	for _, comment := range comments {
		if comment.ParentID == nil {
			parentIndex[comment.ID] = len(parents)
			parents = append(parents, view(comment))
		}
	}
	for _, comment := range comments {
		if comment.ParentID == nil {
			continue
		}
		idx, ok := parentIndex[*comment.ParentID]
		if !ok {
			continue
		}
		parents[idx].Replies = append(parents[idx].Replies, view(comment))
	}
	return parents
}

// GetCommentsByPostID returns a post's comments as a one-level tree
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID, err := pathID(c, "post_id")
	if err != nil {
		return err
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.buildCommentTree(comments, viewerFromQuery(c)))
}

// CreateComment creates a comment or reply on a post and notifies the
// post's author
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "post_id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByID(postID)
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
	if !permissions.CanPost(user.Role) {
		return echo.NewHTTPError(http.StatusForbidden, "Banned users cannot comment")
	}

	// A reply's parent must be a comment on the same post, and replies
	// to replies are not allowed (one nesting level).
	if req.ParentID != nil {
		parent, err := h.commentRepository.GetCommentByID(*req.ParentID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
		if parent.PostID != postID {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent comment belongs to a different post")
		}
		if parent.ParentID != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot reply to a reply")
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   userID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifier.CommentCreated(post, comment, user)

	return c.JSON(http.StatusCreated, comment)
}
