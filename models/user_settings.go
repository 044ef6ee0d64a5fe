package models

import "time"

// UserSettings is the one-to-one companion record created with the user.
type UserSettings struct {
	ID                       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID                   uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Language                 string    `gorm:"default:'en'" json:"language"`
	DisplayLastnameOnPublic  bool      `gorm:"default:false" json:"display_lastname_on_public"`
	DisplayEmailOnPublic     bool      `gorm:"default:false" json:"display_email_on_public"`
	AutomaticNewGalleryShare bool      `gorm:"default:false" json:"automatic_new_gallery_share"`
	NotificationsEnabled     bool      `gorm:"default:true" json:"notifications_enabled"`
	CreatedAt                time.Time `json:"-"`
	UpdatedAt                time.Time `json:"-"`
}
