package models

import "time"

// Cart holds the single active cart per user. The unique index on UserID
// is what makes concurrent first-add requests converge on one row.
type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem references a catalog color variant. Quantity is never
// persisted at zero; reaching zero deletes the row.
type CartItem struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID   uint      `gorm:"index;not null" json:"cart_id"`
	ColorID  uint      `gorm:"index;not null" json:"color_id"`
	Quantity int       `gorm:"not null" json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}
