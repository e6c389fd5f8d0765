package repositories

import (
	"errors"

	"github.com/ahkili-app/backend/internal/models"
	"gorm.io/gorm"
)

// PostReactionRepository defines the interface for post reaction toggling
// and its read paths
type PostReactionRepository interface {
	Toggle(postID, userID uint, reactionType string) (added bool, err error)
	GetCountByPostID(postID uint) (int64, error)
	HasUserReacted(postID, userID uint) (bool, error)
}

// PostgresPostReactionRepository implements PostReactionRepository for PostgreSQL
type PostgresPostReactionRepository struct {
	db *gorm.DB
}

// NewPostgresPostReactionRepository creates a new PostgresPostReactionRepository
func NewPostgresPostReactionRepository(db *gorm.DB) *PostgresPostReactionRepository {
	return &PostgresPostReactionRepository{db: db}
}

// Toggle removes the user's reaction if present, otherwise creates one.
// The (post_id, user_id) unique index keeps concurrent double submits to
// one row; a duplicate-key error means the reaction was already applied.
func (r *PostgresPostReactionRepository) Toggle(postID, userID uint, reactionType string) (bool, error) {
	var existing models.PostReaction
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
	if err == nil {
		if err := r.db.Delete(&existing).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	reaction := &models.PostReaction{
		PostID:       postID,
		UserID:       userID,
		ReactionType: reactionType,
	}
	if err := r.db.Create(reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PostgresPostReactionRepository) GetCountByPostID(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PostReaction{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *PostgresPostReactionRepository) HasUserReacted(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PostReaction{}).
		Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}
