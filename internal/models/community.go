package models

import (
	"time"
)

// Community is a Telegram chat that mints its own merit currency. The chat id
// doubles as the currency identifier everywhere in the ledger.
type Community struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	TgChatID         int64     `gorm:"uniqueIndex;not null" json:"tg_chat_id"`
	Title            string    `gorm:"not null" json:"title"`
	CurrencySingular string    `gorm:"size:50;default:'merit'" json:"currency_singular"`
	CurrencyPlural   string    `gorm:"size:50;default:'merits'" json:"currency_plural"`
	CurrencyGenitive string    `gorm:"size:50;default:'merits'" json:"currency_genitive"`
	DailyQuota       int64     `gorm:"default:10" json:"daily_quota"` // free vote weight per user per day
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CommunityAdmin links an administrator to a community. Adding is an
// upsert-do-nothing, removing is a delete; both stamp the community's
// UpdatedAt.
type CommunityAdmin struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CommunityTgChatID int64     `gorm:"not null;uniqueIndex:idx_community_admin" json:"community_tg_chat_id"`
	UserTgID          int64     `gorm:"not null;uniqueIndex:idx_community_admin" json:"user_tg_id"`
	CreatedAt         time.Time `json:"created_at"`
}
