package models

import "time"

// Profile is the application-level user record, distinct from the identity
// account it is keyed to 1:1.
type Profile struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"user_id"`
	Email     string    `gorm:"not null" json:"email"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
