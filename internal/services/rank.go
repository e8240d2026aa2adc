package services

import (
	"meriter/internal/db"
	"meriter/internal/models"
)

// RankEntry is one row of an actor ranking.
type RankEntry struct {
	UserTgID int64 `json:"user_tg_id"`
	Rating   int64 `json:"rating"`
}

// RankInCommunity ranks actors by the net vote weight they received in a
// community. Withdrawals are author-to-self accounting and stay out of
// ratings. Ties break by ascending actor id so the order is deterministic.
func RankInCommunity(communityTgChatID int64, limit int) ([]RankEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var entries []RankEntry
	err := db.DB.Model(&models.Transaction{}).
		Select("to_user_tg_id AS user_tg_id, SUM(CASE WHEN direction_plus THEN amount_total ELSE -amount_total END) AS rating").
		Where("community_tg_chat_id = ? AND source <> ?", communityTgChatID, SourceWithdraw).
		Group("to_user_tg_id").
		Order("rating DESC, to_user_tg_id ASC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

// RankInHashtag ranks actors by net received vote weight across the
// publications of one hashtag. Same tie-break as RankInCommunity.
func RankInHashtag(hashtag string, limit int) ([]RankEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var entries []RankEntry
	err := db.DB.Model(&models.Transaction{}).
		Joins("JOIN publications ON publications.uid = transactions.for_publication_uid").
		Select("transactions.to_user_tg_id AS user_tg_id, SUM(CASE WHEN transactions.direction_plus THEN transactions.amount_total ELSE -transactions.amount_total END) AS rating").
		Where("publications.hashtag = ? AND transactions.source <> ?", hashtag, SourceWithdraw).
		Group("transactions.to_user_tg_id").
		Order("rating DESC, transactions.to_user_tg_id ASC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}
