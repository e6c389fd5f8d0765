package repositories

import (
	"errors"

	"github.com/ahkili-app/backend/internal/models"
	"gorm.io/gorm"
)

// PreferenceRepository defines the interface for notification preferences.
// Reads never write: a user without a saved row gets the defaults. A row
// is persisted only when the user first updates something.
type PreferenceRepository interface {
	GetPreferences(userID uint) (*models.NotificationPreference, error)
	UpdatePreferences(userID uint, req *models.UpdatePreferencesRequest) (*models.NotificationPreference, error)
}

type postgresPreferenceRepository struct {
	db *gorm.DB
}

func NewPostgresPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &postgresPreferenceRepository{db: db}
}

func (r *postgresPreferenceRepository) GetPreferences(userID uint) (*models.NotificationPreference, error) {
	var prefs models.NotificationPreference
	err := r.db.Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *postgresPreferenceRepository) UpdatePreferences(userID uint, req *models.UpdatePreferencesRequest) (*models.NotificationPreference, error) {
	prefs, err := r.GetPreferences(userID)
	if err != nil {
		return nil, err
	}

	if req.CommentReplies != nil {
		prefs.CommentReplies = *req.CommentReplies
	}
	if req.CommentReactions != nil {
		prefs.CommentReactions = *req.CommentReactions
	}
	if req.PostReactions != nil {
		prefs.PostReactions = *req.PostReactions
	}
	if req.NewPosts != nil {
		prefs.NewPosts = *req.NewPosts
	}
	if req.EmailNotifications != nil {
		prefs.EmailNotifications = *req.EmailNotifications
	}
	if req.PushNotifications != nil {
		prefs.PushNotifications = *req.PushNotifications
	}

	if err := r.db.Save(prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}
