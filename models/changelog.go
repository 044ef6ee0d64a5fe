package models

import "time"

// Changelog entries are admin-authored release notes.
type Changelog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Version   string    `gorm:"not null" json:"version"`
	Name      string    `json:"name"`
	Changelog string    `json:"changelog"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"-"`
}
