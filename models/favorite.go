package models

import "time"

// Favorites are plain user/resource joins. The paired unique indexes are
// the duplicate guard; inserts racing on the same pair surface as a
// constraint violation mapped to 409 at the handler.
type FavoriteFurniture struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:idx_fav_furniture;not null" json:"user_id"`
	FurnitureID uint      `gorm:"uniqueIndex:idx_fav_furniture;not null" json:"furniture_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type FavoriteGallery struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_fav_gallery;not null" json:"user_id"`
	GalleryID uint      `gorm:"uniqueIndex:idx_fav_gallery;not null" json:"gallery_id"`
	CreatedAt time.Time `json:"created_at"`
}
