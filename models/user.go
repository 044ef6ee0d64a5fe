package models

import "time"

type Role string

const (
	RoleClient  Role = "client"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email            string    `gorm:"index:idx_users_email_active,unique,where:deleted = false;not null" json:"email"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Phone            string    `json:"phone"`
	City             string    `json:"city"`
	Role             Role      `gorm:"type:VARCHAR(20);default:'client'" json:"role"`
	Deleted          bool      `gorm:"default:false" json:"-"`
	CompanyAPIKey    string    `json:"-"`
	GoogleID         string    `json:"-"`
	ProfilePictureID int       `gorm:"default:0" json:"profile_picture_id"`
	EmailVerified    bool      `gorm:"default:false" json:"email_verified"`
	EmailToken       string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"-"`
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsCompany() bool { return u.Role == RoleCompany }

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleClient, RoleCompany, RoleAdmin:
		return true
	}
	return false
}
