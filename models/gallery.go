package models

import "time"

// GalleryItem is a user-authored design board. Visibility false limits
// reads to the owner and admins.
type GalleryItem struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	Visibility   bool      `gorm:"default:false" json:"visibility"`
	Room         string    `json:"room"`
	Style        string    `json:"style"`
	ModelData    string    `json:"model_data"`
	FurnitureIDs string    `json:"furniture_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

type GalleryLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_gallery_like;not null" json:"user_id"`
	GalleryID uint      `gorm:"uniqueIndex:idx_gallery_like;not null" json:"gallery_id"`
	CreatedAt time.Time `json:"created_at"`
}

type GalleryComment struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	GalleryID uint       `gorm:"index;not null" json:"gallery_id"`
	Comment   string     `gorm:"not null" json:"comment"`
	Edited    bool       `gorm:"default:false" json:"edited"`
	EditDate  *time.Time `json:"edit_date"`
	CreatedAt time.Time  `json:"created_at"`
}

type GalleryReport struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_gallery_report;not null" json:"user_id"`
	GalleryID uint      `gorm:"uniqueIndex:idx_gallery_report;not null" json:"gallery_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
