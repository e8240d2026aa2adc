package models

import (
	"time"
)

// Transaction is an append-only ledger entry recording a value movement
// between actors. Rows are never updated or deleted once created; wallet
// balances, publication balances and rankings are all aggregations over this
// table.
type Transaction struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UID           string `gorm:"uniqueIndex;size:8;not null" json:"uid"`
	FromUserTgID  int64  `gorm:"not null;index" json:"from_user_tg_id"`
	ToUserTgID    int64  `gorm:"not null;index" json:"to_user_tg_id"`
	AmountTotal   int64  `gorm:"not null" json:"amount_total"` // always positive, DirectionPlus carries the sign
	DirectionPlus bool   `gorm:"not null" json:"direction_plus"`
	Source        string `gorm:"size:20;not null" json:"source"` // personal, quota, withdraw
	// The community chat id is the currency of the movement.
	CommunityTgChatID int64     `gorm:"not null;index" json:"community_tg_chat_id"`
	ForPublicationUID string    `gorm:"size:8;index" json:"for_publication_uid"`
	ForTransactionUID string    `gorm:"size:8;index" json:"for_transaction_uid"`
	Comment           string    `gorm:"type:text" json:"comment"`
	CreatedAt         time.Time `json:"created_at"`
}
