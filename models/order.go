package models

import "time"

// Order is an immutable snapshot of a cart at checkout time. Line items
// denormalize furniture name/price/color so historical invoices stay
// stable when the catalog changes afterwards.
type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint        `gorm:"index;not null" json:"user_id"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     int         `json:"total_amount"`
	DeliveryCountry string      `gorm:"default:'France'" json:"delivery_country"`
	DeliveryCity    string      `json:"delivery_city"`
	DeliveryStreet  string      `json:"delivery_street"`
	DeliveryPostal  string      `json:"delivery_postal_code"`
	CreatedAt       time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       uint   `gorm:"index;not null" json:"order_id"`
	FurnitureID   uint   `json:"furniture_id"`
	ColorID       uint   `json:"color_id"`
	FurnitureName string `json:"furniture_name"`
	Color         string `json:"color"`
	Price         int    `json:"price"`
	Quantity      int    `json:"quantity"`
	Amount        int    `json:"amount"`
}
