package services

import (
	"errors"
	"testing"

	"meriter/internal/db"
	"meriter/internal/domain"
)

func TestWalletUpdate(t *testing.T) {
	setupTest(t)
	community := seedCommunity(t, 100, 10)
	user := seedUser(t, 1)

	// First credit creates the wallet.
	wallet, err := WalletUpdate(user.TgID, community.TgChatID, 10)
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if wallet.Balance != 10 {
		t.Errorf("got balance %d, want 10", wallet.Balance)
	}

	// Spend within the balance.
	wallet, err = WalletUpdate(user.TgID, community.TgChatID, -3)
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if wallet.Balance != 7 {
		t.Errorf("got balance %d, want 7", wallet.Balance)
	}

	// Overspend is rejected and leaves the balance untouched.
	if _, err = WalletUpdate(user.TgID, community.TgChatID, -10); !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("got %v, want ErrInsufficientBalance", err)
	}
	wallet, err = GetWallet(user.TgID, community.TgChatID)
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if wallet.Balance != 7 {
		t.Errorf("balance changed on rejected debit: got %d, want 7", wallet.Balance)
	}
}

func TestWalletUpdateNoDebitIntoMissingWallet(t *testing.T) {
	setupTest(t)
	seedCommunity(t, 100, 10)
	user := seedUser(t, 1)

	if _, err := WalletUpdate(user.TgID, 100, -5); !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Errorf("got %v, want ErrInsufficientBalance", err)
	}
	if _, err := GetWallet(user.TgID, 100); !errors.Is(err, domain.ErrWalletNotFound) {
		t.Errorf("wallet should not exist after rejected debit, got %v", err)
	}
}

func TestWalletCurrencyDenormalized(t *testing.T) {
	setupTest(t)
	community := seedCommunity(t, 100, 10)
	community.CurrencySingular = "merit"
	community.CurrencyPlural = "merits"
	community.CurrencyGenitive = "merits"
	if err := db.DB.Save(&community).Error; err != nil {
		t.Fatalf("failed to update community: %v", err)
	}
	user := seedUser(t, 1)

	wallet, err := WalletUpdate(user.TgID, community.TgChatID, 1)
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if wallet.CurrencyPlural != "merits" {
		t.Errorf("got currency %q, want %q", wallet.CurrencyPlural, "merits")
	}
}

func TestListWallets(t *testing.T) {
	setupTest(t)
	seedCommunity(t, 100, 10)
	seedCommunity(t, 200, 10)
	user := seedUser(t, 1)

	if _, err := WalletUpdate(user.TgID, 200, 5); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if _, err := WalletUpdate(user.TgID, 100, 3); err != nil {
		t.Fatalf("credit failed: %v", err)
	}

	wallets, err := ListWallets(user.TgID)
	if err != nil {
		t.Fatalf("ListWallets failed: %v", err)
	}
	if len(wallets) != 2 {
		t.Fatalf("got %d wallets, want 2", len(wallets))
	}
	if wallets[0].CommunityTgChatID != 100 || wallets[1].CommunityTgChatID != 200 {
		t.Errorf("wallets out of order: %d, %d", wallets[0].CommunityTgChatID, wallets[1].CommunityTgChatID)
	}
}
