package models

import "time"

// User represents a platform account
type User struct {
	ID            string     `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	Email         string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password      string     `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName   string     `gorm:"type:varchar(100);not null;column:display_name" json:"display_name"`
	Blocked       bool       `gorm:"not null;default:false" json:"blocked"`
	LastConnected *time.Time `gorm:"column:last_connected" json:"last_connected"`
	CreatedAt     time.Time  `json:"created_at"`
}
