package services

import (
	"time"

	"meriter/internal/db"
	"meriter/internal/domain"
	"meriter/internal/models"

	"gorm.io/gorm"
)

// todayRange returns the start and end of the current day.
func todayRange() (time.Time, time.Time) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)
	return startOfDay, endOfDay
}

// FreeQuotaRemaining computes how much of the community's daily free vote
// weight the user still has today: the community quota minus the weight of
// today's quota-sourced outgoing votes.
func FreeQuotaRemaining(userTgID, communityTgChatID int64) (int64, error) {
	var community models.Community
	if err := db.DB.Where("tg_chat_id = ?", communityTgChatID).First(&community).Error; err != nil {
		return 0, err
	}
	used, err := quotaUsedTodayTx(db.DB, userTgID, communityTgChatID)
	if err != nil {
		return 0, err
	}
	remaining := community.DailyQuota - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func quotaUsedTodayTx(tx *gorm.DB, userTgID, communityTgChatID int64) (int64, error) {
	startOfDay, endOfDay := todayRange()
	var used int64
	err := tx.Model(&models.Transaction{}).
		Where("from_user_tg_id = ? AND community_tg_chat_id = ? AND source = ? AND created_at >= ? AND created_at < ?",
			userTgID, communityTgChatID, string(domain.SourceQuota), startOfDay, endOfDay).
		Select("COALESCE(SUM(amount_total), 0)").
		Scan(&used).Error
	return used, err
}

func freeQuotaRemainingTx(tx *gorm.DB, userTgID, communityTgChatID int64) (int64, error) {
	var community models.Community
	if err := tx.Where("tg_chat_id = ?", communityTgChatID).First(&community).Error; err != nil {
		return 0, err
	}
	used, err := quotaUsedTodayTx(tx, userTgID, communityTgChatID)
	if err != nil {
		return 0, err
	}
	remaining := community.DailyQuota - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
