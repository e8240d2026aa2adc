package models

import (
	"time"
)

// Wallet holds a user's merit balance in one community. Balance only ever
// moves by additive deltas applied as a single atomic UPDATE; it is never
// overwritten with an absolute value.
type Wallet struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserTgID          int64     `gorm:"not null;uniqueIndex:idx_wallet_owner" json:"user_tg_id"`
	CommunityTgChatID int64     `gorm:"not null;uniqueIndex:idx_wallet_owner" json:"community_tg_chat_id"`
	Balance           int64     `gorm:"not null;default:0" json:"balance"`
	CurrencySingular  string    `gorm:"size:50" json:"currency_singular"`
	CurrencyPlural    string    `gorm:"size:50" json:"currency_plural"`
	CurrencyGenitive  string    `gorm:"size:50" json:"currency_genitive"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
