package repositories

import (
	"errors"

	"github.com/ahkili-app/backend/internal/models"
	"gorm.io/gorm"
)

// CommentReactionRepository defines the interface for the tri-state
// comment reaction toggle (like / dislike / none) and its read paths
type CommentReactionRepository interface {
	Toggle(commentID, userID uint, reactionType string) (state string, err error)
	GetCounts(commentID uint) (models.CommentReactionCounts, error)
	GetUserReaction(commentID, userID uint) (string, error)
}

// PostgresCommentReactionRepository implements CommentReactionRepository for PostgreSQL
type PostgresCommentReactionRepository struct {
	db *gorm.DB
}

// NewPostgresCommentReactionRepository creates a new PostgresCommentReactionRepository
func NewPostgresCommentReactionRepository(db *gorm.DB) *PostgresCommentReactionRepository {
	return &PostgresCommentReactionRepository{db: db}
}

// Toggle applies one transition of the like/dislike cycle and returns the
// resulting state: the reaction type now in place, or "" when the toggle
// removed the reaction.
//
//	none    + t  -> create row, state t
//	same t  + t  -> delete row, state ""
//	other t + t  -> update row in place, state t
func (r *PostgresCommentReactionRepository) Toggle(commentID, userID uint, reactionType string) (string, error) {
	var existing models.CommentReaction
	err := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error
	if err == nil {
		if existing.ReactionType == reactionType {
			if err := r.db.Delete(&existing).Error; err != nil {
				return "", err
			}
			return "", nil
		}
		if err := r.db.Model(&existing).Update("reaction_type", reactionType).Error; err != nil {
			return "", err
		}
		return reactionType, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	reaction := &models.CommentReaction{
		CommentID:    commentID,
		UserID:       userID,
		ReactionType: reactionType,
	}
	if err := r.db.Create(reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return reactionType, nil
		}
		return "", err
	}
	return reactionType, nil
}

func (r *PostgresCommentReactionRepository) GetCounts(commentID uint) (models.CommentReactionCounts, error) {
	var counts models.CommentReactionCounts
	err := r.db.Model(&models.CommentReaction{}).
		Where("comment_id = ? AND reaction_type = ?", commentID, models.ReactionLike).
		Count(&counts.Likes).Error
	if err != nil {
		return counts, err
	}
	err = r.db.Model(&models.CommentReaction{}).
		Where("comment_id = ? AND reaction_type = ?", commentID, models.ReactionDislike).
		Count(&counts.Dislikes).Error
	return counts, err
}

// GetUserReaction returns the user's current reaction type, or "" when
// the user has not reacted.
func (r *PostgresCommentReactionRepository) GetUserReaction(commentID, userID uint) (string, error) {
	var reaction models.CommentReaction
	err := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return reaction.ReactionType, nil
}
