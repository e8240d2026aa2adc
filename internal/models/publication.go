package models

import (
	"time"
)

type Publication struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	UID               string `gorm:"uniqueIndex;size:8;not null" json:"uid"`
	AuthorTgID        int64  `gorm:"not null;index" json:"author_tg_id"`
	CommunityTgChatID int64  `gorm:"not null;index" json:"community_tg_chat_id"`
	Hashtag           string `gorm:"size:100;index" json:"hashtag"`
	Title             string `gorm:"not null" json:"title"`
	Content           string `gorm:"type:text" json:"content"` // markdown source
	// Score is a materialized hot-rank recomputed by the ranking worker from
	// the transaction ledger. It orders listings; it is never a balance.
	Score     int       `gorm:"default:0" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled from the ledger on read, not stored.
	Balance int64 `gorm:"-" json:"balance"`
}
