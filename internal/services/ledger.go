package services

import (
	"meriter/internal/db"
	"meriter/internal/domain"
	"meriter/internal/metrics"
	"meriter/internal/models"
	"meriter/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SourceWithdraw marks ledger entries that move a publication's accumulated
// balance into its author's wallet. Votes carry domain.SourcePersonal or
// domain.SourceQuota.
const SourceWithdraw = "withdraw"

// VoteOnPublication spends the voter's quota or personal merits on a
// publication and appends the vote to the ledger. The funding step and the
// ledger append run in one storage transaction, so a crash can not leave a
// charged wallet without its ledger entry.
func VoteOnPublication(voterTgID int64, publicationUID string, vote domain.VoteAmount, source domain.MeritSource, comment string) (*models.Transaction, error) {
	var pub models.Publication
	if err := db.DB.Where("uid = ?", publicationUID).First(&pub).Error; err != nil {
		return nil, err
	}
	if pub.AuthorTgID == voterTgID {
		return nil, domain.ErrSelfVote
	}

	entry := &models.Transaction{
		UID:               utils.RandStringBytesMaskImpr(8),
		FromUserTgID:      voterTgID,
		ToUserTgID:        pub.AuthorTgID,
		AmountTotal:       vote.Magnitude,
		DirectionPlus:     vote.Plus(),
		Source:            string(source),
		CommunityTgChatID: pub.CommunityTgChatID,
		ForPublicationUID: pub.UID,
		Comment:           comment,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := fundVote(tx, voterTgID, pub.CommunityTgChatID, vote.Magnitude, source); err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}

	GetRankingService().ScheduleUpdate(pub.ID)
	metrics.VotesTotal.WithLabelValues(string(vote.Direction), string(source)).Inc()
	return entry, nil
}

// VoteOnTransaction votes on a ledger entry (a comment left with a vote).
// The value goes to the entry's author, in the entry's currency.
func VoteOnTransaction(voterTgID int64, transactionUID string, vote domain.VoteAmount, source domain.MeritSource, comment string) (*models.Transaction, error) {
	var target models.Transaction
	if err := db.DB.Where("uid = ?", transactionUID).First(&target).Error; err != nil {
		return nil, err
	}
	if target.FromUserTgID == voterTgID {
		return nil, domain.ErrSelfVote
	}

	entry := &models.Transaction{
		UID:               utils.RandStringBytesMaskImpr(8),
		FromUserTgID:      voterTgID,
		ToUserTgID:        target.FromUserTgID,
		AmountTotal:       vote.Magnitude,
		DirectionPlus:     vote.Plus(),
		Source:            string(source),
		CommunityTgChatID: target.CommunityTgChatID,
		ForTransactionUID: target.UID,
		Comment:           comment,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := fundVote(tx, voterTgID, target.CommunityTgChatID, vote.Magnitude, source); err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.VotesTotal.WithLabelValues(string(vote.Direction), string(source)).Inc()
	return entry, nil
}

// lockRows appends FOR UPDATE on engines with row locks. Under READ
// COMMITTED two transactions can otherwise both pass a SELECT-then-INSERT
// precondition. SQLite has a single writer and rejects the syntax.
func lockRows(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// fundVote charges the voter for the vote weight. Quota votes consume the
// free daily allowance; personal votes decrement the voter's wallet. Both
// up and down votes cost their full magnitude.
func fundVote(tx *gorm.DB, voterTgID, communityTgChatID, magnitude int64, source domain.MeritSource) error {
	switch source {
	case domain.SourceQuota:
		// Serialize concurrent quota votes by the same voter on the voter's
		// row, so two votes can not both read the same remaining allowance.
		var voter models.User
		if err := lockRows(tx).Where("tg_id = ?", voterTgID).First(&voter).Error; err != nil {
			return err
		}
		remaining, err := freeQuotaRemainingTx(tx, voterTgID, communityTgChatID)
		if err != nil {
			return err
		}
		if magnitude > remaining {
			return domain.ErrQuotaExceeded
		}
		return nil
	case domain.SourcePersonal:
		_, err := walletUpdateTx(tx, voterTgID, communityTgChatID, -magnitude)
		return err
	default:
		return domain.ErrIncompatibleSource
	}
}

// Withdraw moves part of a publication's accumulated balance into its
// author's wallet. The precondition check, the withdraw ledger entry and the
// wallet credit run in one storage transaction; an over-withdrawal fails
// before anything is persisted.
func Withdraw(callerTgID int64, publicationUID string, amount int64) (*models.Transaction, *models.Wallet, error) {
	if amount <= 0 {
		return nil, nil, domain.ErrInvalidAmount
	}

	var pub models.Publication
	if err := db.DB.Where("uid = ?", publicationUID).First(&pub).Error; err != nil {
		return nil, nil, err
	}
	if pub.AuthorTgID != callerTgID {
		return nil, nil, domain.ErrNotPublicationAuthor
	}

	var entry *models.Transaction
	var wallet *models.Wallet
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the publication row first; concurrent withdrawals must not
		// both read the same balance and both pass the precondition.
		if err := lockRows(tx).Where("uid = ?", pub.UID).First(&pub).Error; err != nil {
			return err
		}
		balance, err := balanceOfPublicationTx(tx, pub.UID)
		if err != nil {
			return err
		}
		if amount > balance {
			return domain.ErrInsufficientBalance
		}

		entry = &models.Transaction{
			UID:               utils.RandStringBytesMaskImpr(8),
			FromUserTgID:      callerTgID,
			ToUserTgID:        callerTgID,
			AmountTotal:       amount,
			DirectionPlus:     false,
			Source:            SourceWithdraw,
			CommunityTgChatID: pub.CommunityTgChatID,
			ForPublicationUID: pub.UID,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		wallet, err = walletUpdateTx(tx, callerTgID, pub.CommunityTgChatID, amount)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	GetRankingService().ScheduleUpdate(pub.ID)
	metrics.WithdrawalsTotal.Inc()
	return entry, wallet, nil
}

// BalanceOfPublication is the net signed sum of every ledger entry
// referencing the publication, withdrawals included. It is the withdrawable
// balance; it is computed, never stored.
func BalanceOfPublication(publicationUID string) (int64, error) {
	return balanceOfPublicationTx(db.DB, publicationUID)
}

func balanceOfPublicationTx(tx *gorm.DB, publicationUID string) (int64, error) {
	var balance int64
	err := tx.Model(&models.Transaction{}).
		Where("for_publication_uid = ?", publicationUID).
		Select("COALESCE(SUM(CASE WHEN direction_plus THEN amount_total ELSE -amount_total END), 0)").
		Scan(&balance).Error
	return balance, err
}

// ListPublicationTransactions returns the publication's ledger entries,
// newest first. Entries with comments double as the comment feed.
func ListPublicationTransactions(publicationUID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var entries []models.Transaction
	err := db.DB.Where("for_publication_uid = ?", publicationUID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
