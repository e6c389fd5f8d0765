package repositories

import (
	"fmt"

	"github.com/ahkili-app/backend/internal/models"
	"gorm.io/gorm"
)

// CommunityRepository defines the interface for community, membership and
// moderator data operations
type CommunityRepository interface {
	CreateCommunity(community *models.Community) error
	GetCommunityByID(id uint) (*models.Community, error)
	GetCommunities(skip, limit int) ([]models.Community, error)
	SearchCommunities(query string) ([]models.Community, error)

	JoinCommunity(communityID, userID uint) (*models.CommunityMember, error)
	LeaveCommunity(communityID, userID uint) error
	IsMember(communityID, userID uint) (bool, error)
	GetMembersCount(communityID uint) (int64, error)

	AssignModerator(communityID, userID, assignedBy uint) (*models.CommunityModerator, error)
	RemoveModerator(communityID, userID uint) error
	IsModerator(communityID, userID uint) (bool, error)
	GetModerators(communityID uint) ([]models.CommunityModerator, error)
}

// PostgresCommunityRepository implements CommunityRepository for PostgreSQL
type PostgresCommunityRepository struct {
	db *gorm.DB
}

// NewPostgresCommunityRepository creates a new PostgresCommunityRepository
func NewPostgresCommunityRepository(db *gorm.DB) *PostgresCommunityRepository {
	return &PostgresCommunityRepository{db: db}
}

func (r *PostgresCommunityRepository) CreateCommunity(community *models.Community) error {
	return r.db.Create(community).Error
}

func (r *PostgresCommunityRepository) GetCommunityByID(id uint) (*models.Community, error) {
	var community models.Community
	if err := r.db.First(&community, id).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *PostgresCommunityRepository) GetCommunities(skip, limit int) ([]models.Community, error) {
	var communities []models.Community
	if err := r.db.Offset(skip).Limit(limit).Find(&communities).Error; err != nil {
		return nil, err
	}
	return communities, nil
}

func (r *PostgresCommunityRepository) SearchCommunities(query string) ([]models.Community, error) {
	var communities []models.Community
	pattern := "%" + query + "%"
	err := r.db.Where("name LIKE ? OR description LIKE ?", pattern, pattern).Find(&communities).Error
	return communities, err
}

// JoinCommunity adds a member row; joining twice is a no-op returning the
// existing membership.
func (r *PostgresCommunityRepository) JoinCommunity(communityID, userID uint) (*models.CommunityMember, error) {
	var existing models.CommunityMember
	err := r.db.Where("community_id = ? AND user_id = ?", communityID, userID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	member := &models.CommunityMember{CommunityID: communityID, UserID: userID}
	if err := r.db.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (r *PostgresCommunityRepository) LeaveCommunity(communityID, userID uint) error {
	res := r.db.Where("community_id = ? AND user_id = ?", communityID, userID).Delete(&models.CommunityMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("membership not found")
	}
	return nil
}

func (r *PostgresCommunityRepository) IsMember(communityID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresCommunityRepository) GetMembersCount(communityID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommunityMember{}).Where("community_id = ?", communityID).Count(&count).Error
	return count, err
}

func (r *PostgresCommunityRepository) AssignModerator(communityID, userID, assignedBy uint) (*models.CommunityModerator, error) {
	moderator := &models.CommunityModerator{
		CommunityID: communityID,
		UserID:      userID,
		AssignedBy:  assignedBy,
	}
	if err := r.db.Create(moderator).Error; err != nil {
		return nil, err
	}
	return moderator, nil
}

func (r *PostgresCommunityRepository) RemoveModerator(communityID, userID uint) error {
	res := r.db.Where("community_id = ? AND user_id = ?", communityID, userID).Delete(&models.CommunityModerator{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("moderator not found")
	}
	return nil
}

func (r *PostgresCommunityRepository) IsModerator(communityID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommunityModerator{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresCommunityRepository) GetModerators(communityID uint) ([]models.CommunityModerator, error) {
	var moderators []models.CommunityModerator
	err := r.db.Where("community_id = ?", communityID).Find(&moderators).Error
	return moderators, err
}
