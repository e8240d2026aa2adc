package services

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"meriter/internal/domain"
)

func TestVoteOnPublicationPersonal(t *testing.T) {
	setupTest(t)
	community := seedCommunity(t, 100, 10)
	author := seedUser(t, 1)
	voter := seedUser(t, 2)
	pub := seedPublication(t, "pub00001", author.TgID, community.TgChatID)

	if _, err := WalletUpdate(voter.TgID, community.TgChatID, 20); err != nil {
		t.Fatalf("failed to fund voter: %v", err)
	}

	up, _ := domain.Up(7)
	entry, err := VoteOnPublication(voter.TgID, pub.UID, up, domain.SourcePersonal, "nice work")
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if entry.UID == "" {
		t.Error("entry has no uid")
	}
	if entry.ToUserTgID != author.TgID {
		t.Errorf("entry credits %d, want author %d", entry.ToUserTgID, author.TgID)
	}
	if !entry.DirectionPlus || entry.AmountTotal != 7 {
		t.Errorf("entry direction/amount wrong: plus=%v amount=%d", entry.DirectionPlus, entry.AmountTotal)
	}

	// The vote was paid for out of the wallet.
	wallet, err := GetWallet(voter.TgID, community.TgChatID)
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if wallet.Balance != 13 {
		t.Errorf("got balance %d, want 13", wallet.Balance)
	}

	balance, err := BalanceOfPublication(pub.UID)
	if err != nil {
		t.Fatalf("BalanceOfPublication failed: %v", err)
	}
	if balance != 7 {
		t.Errorf("got publication balance %d, want 7", balance)
	}
}

func TestVoteOnPublicationPersonalInsufficient(t *testing.T) {
	setupTest(t)
	community := seedCommunity(t, 100, 10)
	author := seedUser(t, 1)
	voter := seedUser(t, 2)
	pub := seedPublication(t, "pub00001", author.TgID, community.TgChatID)

	if _, err := WalletUpdate(voter.TgID, community.TgChatID, 3); err != nil {
		t.Fatalf("failed to fund voter: %v", err)
	}

	up, _ := domain.Up(5)
	_, err := VoteOnPublication(voter.TgID, pub.UID, up, domain.SourcePersonal, "")
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("got %v, want ErrInsufficientBalance", err)
	}

	// The failed vote left no ledger entry and took no money.
	if n := countTransactions(t); n != 0 {
		t.Errorf("got %d ledger entries, want 0", n)
	}
	wallet, _ := GetWallet(voter.TgID, community.TgChatID)
	if wallet.Balance != 3 {
		t.Errorf("got balance %d, want 3", wallet.Balance)
	}
}

func TestVoteOnPublicationQuota(t *testing.T) {
	setupTest(t)
	community := seedCommunity(t, 100, 10)
	author := seedUser(t, 1)
	voter := seedUser(t, 2)
	pub := seedPublication(t, "pub00001", author.TgID, community.TgChatID)

	up, _ := domain.Up(6)
	if _, err := VoteOnPublication(voter.TgID, pub.UID, up, domain.SourceQuota, ""); err != nil {
		t.Fatalf("quota vote failed: %v", err)
	}

	remaining, err := FreeQuotaRemaining(voter.TgID, community.TgChatID)
	if err != nil {
		t.Fatalf("FreeQuotaRemaining failed: %v", err)
	}
	if remaining != 4 {
		t.Errorf("got remaining %d, want 4", remaining)
	}

	// A second vote over the remaining allowance is rejected whole.
	up, _ = domain.Up(5)
	_, err = VoteOnPublication(voter.TgID, pub.UID, up, domain.SourceQuota, "")
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("got %v, want ErrQuotaExceeded", err)
	}
	if n := countTransactions(t); n != 1 {
		t.Errorf("got %d ledger entries, want 1", n)
	}

	// Quota votes never touch the wallet.
	if _, err := GetWallet(voter.TgID, community.TgChatID); !errors.Is(err, domain.ErrWalletNotFound) {
		t.Errorf("quota vote created a wallet: %v", err)
	}
}

func TestVoteOnPublicationSelfVote(t *testing.T) {
	setupTest(t)
	community := seedCommunity(t, 100, 10)
	author := seedUser(t, 1)
	pub := seedPublication(t, "pub00001", author.TgID, community.TgChatID)

	up, _ := domain.Up(1)
	if _, err := VoteOnPublication(author.TgID, pub.UID, up, domain.SourceQuota, ""); !errors.Is(err, domain.ErrSelfVote) {
		t.Errorf("got %v, want ErrSelfVote", err)
	}
}

func TestVoteOnTransaction(t *testing.T) {
	setupTest(t)
	community := seedCommunity(t, 100, 10)
	author := seedUser(t, 1)
	voter := seedUser(t, 2)
	second := seedUser(t, 3)
	pub := seedPublication(t, "pub00001", author.TgID, community.TgChatID)

	up, _ := domain.Up(2)
	comment, err := VoteOnPublication(voter.TgID, pub.UID, up, domain.SourceQuota, "insightful")
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	// A vote on the comment credits the commenter, not the publication author.
	up, _ = domain.Up(3)
	entry, err := VoteOnTransaction(second.TgID, comment.UID, up, domain.SourceQuota, "")
	if err != nil {
		t.Fatalf("vote on transaction failed: %v", err)
	}
	if entry.ToUserTgID != voter.TgID {
		t.Errorf("entry credits %d, want commenter %d", entry.ToUserTgID, voter.TgID)
	}
	if entry.ForTransactionUID != comment.UID {
		t.Errorf("entry references %q, want %q", entry.ForTransactionUID, comment.UID)
	}
	if entry.ForPublicationUID != "" {
		t.Errorf("entry should not reference a publication, got %q", entry.ForPublicationUID)
	}

	// The commenter can not vote on their own comment.
	if _, err := VoteOnTransaction(voter.TgID, comment.UID, up, domain.SourceQuota, ""); !errors.Is(err, domain.ErrSelfVote) {
		t.Errorf("got %v, want ErrSelfVote", err)
	}
}

func TestDownvoteCostsFullMagnitude(t *testing.T) {
	setupTest(t)
	community := seedCommunity(t, 100, 10)
	author := seedUser(t, 1)
	voter := seedUser(t, 2)
	pub := seedPublication(t, "pub00001", author.TgID, community.TgChatID)

	down, _ := domain.Down(4)
	if _, err := VoteOnPublication(voter.TgID, pub.UID, down, domain.SourceQuota, ""); err != nil {
		t.Fatalf("downvote failed: %v", err)
	}

	remaining, _ := FreeQuotaRemaining(voter.TgID, community.TgChatID)
	if remaining != 6 {
		t.Errorf("got remaining %d, want 6", remaining)
	}

	balance, _ := BalanceOfPublication(pub.UID)
	if balance != -4 {
		t.Errorf("got publication balance %d, want -4", balance)
	}
}

func TestWithdraw(t *testing.T) {
	setupTest(t)
	community := seedCommunity(t, 100, 10)
	author := seedUser(t, 1)
	voter := seedUser(t, 2)
	pub := seedPublication(t, "pub00001", author.TgID, community.TgChatID)

	up, _ := domain.Up(8)
	if _, err := VoteOnPublication(voter.TgID, pub.UID, up, domain.SourceQuota, ""); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	// Only the author can withdraw.
	if _, _, err := Withdraw(voter.TgID, pub.UID, 1); !errors.Is(err, domain.ErrNotPublicationAuthor) {
		t.Fatalf("got %v, want ErrNotPublicationAuthor", err)
	}

	entry, wallet, err := Withdraw(author.TgID, pub.UID, 5)
	if err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if entry.Source != SourceWithdraw || entry.DirectionPlus {
		t.Errorf("withdraw entry wrong: source=%q plus=%v", entry.Source, entry.DirectionPlus)
	}
	if wallet.Balance != 5 {
		t.Errorf("got wallet balance %d, want 5", wallet.Balance)
	}

	// The withdrawal drained the publication balance.
	balance, _ := BalanceOfPublication(pub.UID)
	if balance != 3 {
		t.Errorf("got publication balance %d, want 3", balance)
	}

	// Over-withdrawal fails without persisting anything.
	before := countTransactions(t)
	if _, _, err := Withdraw(author.TgID, pub.UID, 4); !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("got %v, want ErrInsufficientBalance", err)
	}
	if n := countTransactions(t); n != before {
		t.Errorf("rejected withdraw wrote %d entries", n-before)
	}
	wallet, _ = GetWallet(author.TgID, community.TgChatID)
	if wallet.Balance != 5 {
		t.Errorf("rejected withdraw moved money: balance %d, want 5", wallet.Balance)
	}
}

func TestWithdrawConcurrent(t *testing.T) {
	setupTest(t)
	community := seedCommunity(t, 100, 10)
	author := seedUser(t, 1)
	voter := seedUser(t, 2)
	pub := seedPublication(t, "pub00001", author.TgID, community.TgChatID)

	up, _ := domain.Up(8)
	if _, err := VoteOnPublication(voter.TgID, pub.UID, up, domain.SourceQuota, ""); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	// Concurrent withdrawals of 3 against a balance of 8: at most two may
	// land, and the balance must never go negative.
	const workers = 4
	var succeeded int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := Withdraw(author.TgID, pub.UID, 3)
			if err == nil {
				atomic.AddInt64(&succeeded, 1)
			} else if !errors.Is(err, domain.ErrInsufficientBalance) {
				t.Errorf("unexpected withdraw error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 2 {
		t.Errorf("got %d successful withdrawals, want 2", succeeded)
	}
	balance, err := BalanceOfPublication(pub.UID)
	if err != nil {
		t.Fatalf("BalanceOfPublication failed: %v", err)
	}
	if balance != 8-3*succeeded {
		t.Errorf("got publication balance %d, want %d", balance, 8-3*succeeded)
	}
	if balance < 0 {
		t.Errorf("publication balance went negative: %d", balance)
	}
	wallet, err := GetWallet(author.TgID, community.TgChatID)
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if wallet.Balance != 3*succeeded {
		t.Errorf("got wallet balance %d, want %d", wallet.Balance, 3*succeeded)
	}
}

func TestVoteQuotaConcurrent(t *testing.T) {
	setupTest(t)
	community := seedCommunity(t, 100, 10)
	author := seedUser(t, 1)
	voter := seedUser(t, 2)
	pub := seedPublication(t, "pub00001", author.TgID, community.TgChatID)

	// Concurrent quota votes of 3 against an allowance of 10: at most three
	// may land; the allowance can never be overspent.
	const workers = 5
	up3, _ := domain.Up(3)
	var succeeded int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := VoteOnPublication(voter.TgID, pub.UID, up3, domain.SourceQuota, "")
			if err == nil {
				atomic.AddInt64(&succeeded, 1)
			} else if !errors.Is(err, domain.ErrQuotaExceeded) {
				t.Errorf("unexpected vote error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 3 {
		t.Errorf("got %d successful votes, want 3", succeeded)
	}
	remaining, err := FreeQuotaRemaining(voter.TgID, community.TgChatID)
	if err != nil {
		t.Fatalf("FreeQuotaRemaining failed: %v", err)
	}
	if remaining != 10-3*succeeded {
		t.Errorf("got remaining quota %d, want %d", remaining, 10-3*succeeded)
	}
	if n := countTransactions(t); n != succeeded {
		t.Errorf("got %d ledger entries, want %d", n, succeeded)
	}
}

func TestWithdrawInvalidAmount(t *testing.T) {
	setupTest(t)
	community := seedCommunity(t, 100, 10)
	author := seedUser(t, 1)
	pub := seedPublication(t, "pub00001", author.TgID, community.TgChatID)

	for _, amount := range []int64{0, -3} {
		if _, _, err := Withdraw(author.TgID, pub.UID, amount); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("Withdraw(%d): got %v, want ErrInvalidAmount", amount, err)
		}
	}
}
