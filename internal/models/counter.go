package models

import (
	"time"
)

// Counter is a generic persisted accumulator keyed by a canonicalized meta
// filter. Increments go through services.PushToCounter as a single atomic
// UPDATE, never a read-modify-write.
type Counter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:255;not null" json:"key"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
