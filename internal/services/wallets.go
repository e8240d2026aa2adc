package services

import (
	"errors"

	"meriter/internal/db"
	"meriter/internal/domain"
	"meriter/internal/models"

	"gorm.io/gorm"
)

// WalletUpdate applies delta to the (user, community) wallet, creating the
// wallet on first use. The non-negativity guard rides inside the UPDATE
// itself, so a concurrent spend can never drive the balance below zero.
// Balances only ever move through this function.
func WalletUpdate(userTgID, communityTgChatID, delta int64) (*models.Wallet, error) {
	var wallet *models.Wallet
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		w, err := walletUpdateTx(tx, userTgID, communityTgChatID, delta)
		wallet = w
		return err
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func walletUpdateTx(tx *gorm.DB, userTgID, communityTgChatID, delta int64) (*models.Wallet, error) {
	res := tx.Model(&models.Wallet{}).
		Where("user_tg_id = ? AND community_tg_chat_id = ? AND balance + ? >= 0",
			userTgID, communityTgChatID, delta).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Either the wallet does not exist yet, or the guard rejected the
		// delta.
		var existing models.Wallet
		err := tx.Where("user_tg_id = ? AND community_tg_chat_id = ?", userTgID, communityTgChatID).
			First(&existing).Error
		if err == nil {
			return nil, domain.ErrInsufficientBalance
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if delta < 0 {
			return nil, domain.ErrInsufficientBalance
		}

		wallet := models.Wallet{
			UserTgID:          userTgID,
			CommunityTgChatID: communityTgChatID,
			Balance:           delta,
		}
		// Denormalize currency display names from the community.
		var community models.Community
		if err := tx.Where("tg_chat_id = ?", communityTgChatID).First(&community).Error; err == nil {
			wallet.CurrencySingular = community.CurrencySingular
			wallet.CurrencyPlural = community.CurrencyPlural
			wallet.CurrencyGenitive = community.CurrencyGenitive
		}
		if err := tx.Create(&wallet).Error; err != nil {
			return nil, err
		}
		return &wallet, nil
	}

	var wallet models.Wallet
	if err := tx.Where("user_tg_id = ? AND community_tg_chat_id = ?", userTgID, communityTgChatID).
		First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetWallet returns the wallet for (user, community).
func GetWallet(userTgID, communityTgChatID int64) (*models.Wallet, error) {
	var wallet models.Wallet
	err := db.DB.Where("user_tg_id = ? AND community_tg_chat_id = ?", userTgID, communityTgChatID).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

// ListWallets returns all of a user's wallets across communities.
func ListWallets(userTgID int64) ([]models.Wallet, error) {
	var wallets []models.Wallet
	err := db.DB.Where("user_tg_id = ?", userTgID).
		Order("community_tg_chat_id ASC").
		Find(&wallets).Error
	return wallets, err
}
