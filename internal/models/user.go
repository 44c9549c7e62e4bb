package models

import "time"

const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:'player'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
