package models

import "time"

type FeedbackType string

const (
	FeedbackTypeFeedback   FeedbackType = "feedback"
	FeedbackTypeSuggestion FeedbackType = "suggestion"
	FeedbackTypeBug        FeedbackType = "bug"
)

type Feedback struct {
	ID            uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint         `gorm:"index;not null" json:"user_id"`
	Type          FeedbackType `gorm:"type:VARCHAR(20);not null" json:"type"`
	Description   string       `gorm:"not null" json:"description"`
	Processed     bool         `gorm:"default:false" json:"processed"`
	ProcessedDate *time.Time   `json:"processed_date"`
	CreatedAt     time.Time    `json:"created_at"`
}

func ValidFeedbackType(t string) bool {
	switch FeedbackType(t) {
	case FeedbackTypeFeedback, FeedbackTypeSuggestion, FeedbackTypeBug:
		return true
	}
	return false
}
