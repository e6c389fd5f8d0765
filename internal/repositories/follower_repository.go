package repositories

import (
	"errors"
	"fmt"

	"github.com/ahkili-app/backend/internal/models"
	"gorm.io/gorm"
)

// FollowerRepository defines the interface for community follow operations
type FollowerRepository interface {
	Follow(communityID, userID uint) (*models.CommunityFollower, error)
	Unfollow(communityID, userID uint) error
	IsFollowing(communityID, userID uint) (bool, error)
	GetFollowers(communityID uint) ([]models.User, error)
	GetFollowerIDs(communityID uint) ([]uint, error)
}

// PostgresFollowerRepository implements FollowerRepository for PostgreSQL
type PostgresFollowerRepository struct {
	db *gorm.DB
}

// NewPostgresFollowerRepository creates a new PostgresFollowerRepository
func NewPostgresFollowerRepository(db *gorm.DB) *PostgresFollowerRepository {
	return &PostgresFollowerRepository{db: db}
}

// Follow creates a follow row. A duplicate-key race from a double submit
// is treated as already following.
func (r *PostgresFollowerRepository) Follow(communityID, userID uint) (*models.CommunityFollower, error) {
	var existing models.CommunityFollower
	err := r.db.Where("community_id = ? AND user_id = ?", communityID, userID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	follower := &models.CommunityFollower{CommunityID: communityID, UserID: userID}
	if err := r.db.Create(follower).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return follower, nil
		}
		return nil, err
	}
	return follower, nil
}

func (r *PostgresFollowerRepository) Unfollow(communityID, userID uint) error {
	res := r.db.Where("community_id = ? AND user_id = ?", communityID, userID).Delete(&models.CommunityFollower{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow not found")
	}
	return nil
}

func (r *PostgresFollowerRepository) IsFollowing(communityID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommunityFollower{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresFollowerRepository) GetFollowers(communityID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("community_followers").Select("user_id").Where("community_id = ?", communityID),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowerRepository) GetFollowerIDs(communityID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.CommunityFollower{}).
		Where("community_id = ?", communityID).Pluck("user_id", &ids).Error
	return ids, err
}
