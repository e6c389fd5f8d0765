package models

// Hotline is a crisis hotline directory entry.
type Hotline struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	Name              string `json:"name" gorm:"size:100"`
	Country           string `json:"country" gorm:"size:50;index"`
	PhoneNumber       string `json:"phone_number" gorm:"size:20"`
	AvailabilityHours string `json:"availability_hours" gorm:"type:text;default:'24/7'"`
	Verified          bool   `json:"verified" gorm:"default:true"`
}
