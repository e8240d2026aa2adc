package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TgID      int64     `gorm:"uniqueIndex;not null" json:"tg_id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	PhotoURL  string    `json:"photo_url"`
	Role      string    `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
