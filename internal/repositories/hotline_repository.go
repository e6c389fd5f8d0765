package repositories

import (
	"github.com/ahkili-app/backend/internal/models"
	"gorm.io/gorm"
)

// HotlineRepository defines the interface for the hotline directory
type HotlineRepository interface {
	GetHotlines(country string) ([]models.Hotline, error)
}

type postgresHotlineRepository struct {
	db *gorm.DB
}

func NewPostgresHotlineRepository(db *gorm.DB) HotlineRepository {
	return &postgresHotlineRepository{db: db}
}

func (r *postgresHotlineRepository) GetHotlines(country string) ([]models.Hotline, error) {
	var hotlines []models.Hotline
	query := r.db
	if country != "" {
		query = query.Where("country = ?", country)
	}
	err := query.Find(&hotlines).Error
	return hotlines, err
}
