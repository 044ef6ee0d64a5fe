package models

import "time"

// Furniture is a catalog entry owned by a company account.
// Price is stored in integer minor-currency units.
type Furniture struct {
	ID        uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string           `gorm:"not null" json:"name"`
	Price     int              `gorm:"not null" json:"price"`
	Height    int              `json:"height"`
	Width     int              `json:"width"`
	Depth     int              `json:"depth"`
	Style     string           `gorm:"index" json:"style"`
	Room      string           `gorm:"index" json:"room"`
	CompanyID uint             `gorm:"index;not null" json:"company_id"`
	Active    bool             `gorm:"default:true" json:"active"`
	Colors    []FurnitureColor `gorm:"foreignKey:FurnitureID;constraint:OnDelete:CASCADE" json:"colors"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"-"`
}

// FurnitureColor is the purchasable variant referenced by cart lines.
type FurnitureColor struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FurnitureID uint   `gorm:"index;not null" json:"furniture_id"`
	Color       string `gorm:"not null" json:"color"`
	ModelID     int    `json:"model_id"`
}
