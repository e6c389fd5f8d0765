package repositories

import (
	"github.com/ahkili-app/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPosts(skip, limit int, communityID *uint) ([]models.Post, error)
	GetPostsByUserID(userID uint) ([]models.Post, error)
	SearchPosts(query string, skip, limit int) ([]models.Post, error)
	DeletePost(id uint) error
	GetPostsCountByCommunityID(communityID uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts returns posts newest first, optionally filtered by community.
func (r *PostgresPostRepository) GetPosts(skip, limit int, communityID *uint) ([]models.Post, error) {
	var posts []models.Post
	query := r.db.Order("created_at DESC").Offset(skip).Limit(limit)
	if communityID != nil {
		query = query.Where("community_id = ?", *communityID)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostgresPostRepository) GetPostsByUserID(userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) SearchPosts(query string, skip, limit int) ([]models.Post, error) {
	var posts []models.Post
	pattern := "%" + query + "%"
	err := r.db.Where("title LIKE ? OR content LIKE ?", pattern, pattern).
		Order("created_at DESC").Offset(skip).Limit(limit).Find(&posts).Error
	return posts, err
}

// DeletePost removes a post; comments and reactions go with it via the
// cascade constraints.
func (r *PostgresPostRepository) DeletePost(id uint) error {
	res := r.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresPostRepository) GetPostsCountByCommunityID(communityID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("community_id = ?", communityID).Count(&count).Error
	return count, err
}
