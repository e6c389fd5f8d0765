package repositories

import (
	"time"

	"github.com/ahkili-app/backend/internal/models"
	"gorm.io/gorm"
)

// VerificationRepository defines the interface for doctor verification
// submissions
type VerificationRepository interface {
	CreateVerification(verification *models.DoctorVerification) error
	GetByUserID(userID uint) (*models.DoctorVerification, error)
	GetByID(id uint) (*models.DoctorVerification, error)
	GetPending() ([]models.DoctorVerification, error)
	Review(id uint, status, rejectionReason string) error
}

type postgresVerificationRepository struct {
	db *gorm.DB
}

func NewPostgresVerificationRepository(db *gorm.DB) VerificationRepository {
	return &postgresVerificationRepository{db: db}
}

func (r *postgresVerificationRepository) CreateVerification(verification *models.DoctorVerification) error {
	return r.db.Create(verification).Error
}

func (r *postgresVerificationRepository) GetByUserID(userID uint) (*models.DoctorVerification, error) {
	var verification models.DoctorVerification
	if err := r.db.Where("user_id = ?", userID).First(&verification).Error; err != nil {
		return nil, err
	}
	return &verification, nil
}

func (r *postgresVerificationRepository) GetByID(id uint) (*models.DoctorVerification, error) {
	var verification models.DoctorVerification
	if err := r.db.First(&verification, id).Error; err != nil {
		return nil, err
	}
	return &verification, nil
}

func (r *postgresVerificationRepository) GetPending() ([]models.DoctorVerification, error) {
	var verifications []models.DoctorVerification
	err := r.db.Where("status = ?", models.VerificationPending).
		Order("submitted_at ASC").Find(&verifications).Error
	return verifications, err
}

func (r *postgresVerificationRepository) Review(id uint, status, rejectionReason string) error {
	now := time.Now()
	res := r.db.Model(&models.DoctorVerification{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"rejection_reason": rejectionReason,
			"reviewed_at":      &now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
