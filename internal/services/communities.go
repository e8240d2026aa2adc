package services

import (
	"time"

	"meriter/internal/db"
	"meriter/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListCommunities returns all communities.
func ListCommunities() ([]models.Community, error) {
	var communities []models.Community
	err := db.DB.Order("tg_chat_id ASC").Find(&communities).Error
	return communities, err
}

// GetCommunity looks a community up by its chat id.
func GetCommunity(tgChatID int64) (*models.Community, error) {
	var community models.Community
	if err := db.DB.Where("tg_chat_id = ?", tgChatID).First(&community).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

// AddAdministrator grants a user admin rights in a community. Adding an
// existing admin is a no-op (the unique index absorbs the duplicate), so the
// operation is idempotent.
func AddAdministrator(communityTgChatID, userTgID int64) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		admin := models.CommunityAdmin{
			CommunityTgChatID: communityTgChatID,
			UserTgID:          userTgID,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error; err != nil {
			return err
		}
		return touchCommunity(tx, communityTgChatID)
	})
}

// RemoveAdministrator revokes a user's admin rights in a community.
func RemoveAdministrator(communityTgChatID, userTgID int64) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("community_tg_chat_id = ? AND user_tg_id = ?", communityTgChatID, userTgID).
			Delete(&models.CommunityAdmin{}).Error; err != nil {
			return err
		}
		return touchCommunity(tx, communityTgChatID)
	})
}

// IsAdministrator reports whether the user administers the community.
func IsAdministrator(communityTgChatID, userTgID int64) bool {
	var count int64
	db.DB.Model(&models.CommunityAdmin{}).
		Where("community_tg_chat_id = ? AND user_tg_id = ?", communityTgChatID, userTgID).
		Count(&count)
	return count > 0
}

// ListAdministrators returns the admin user ids of a community.
func ListAdministrators(communityTgChatID int64) ([]int64, error) {
	var ids []int64
	err := db.DB.Model(&models.CommunityAdmin{}).
		Where("community_tg_chat_id = ?", communityTgChatID).
		Order("user_tg_id ASC").
		Pluck("user_tg_id", &ids).Error
	return ids, err
}

func touchCommunity(tx *gorm.DB, tgChatID int64) error {
	return tx.Model(&models.Community{}).
		Where("tg_chat_id = ?", tgChatID).
		UpdateColumn("updated_at", time.Now()).Error
}
