package handlers

import (
	"net/http"

	"meriter/internal/domain"
	"meriter/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type VoteInput struct {
	Amount    int64  `json:"amount" binding:"required,min=1"`
	Direction string `json:"direction" binding:"required,oneof=up down"`
	Source    string `json:"source" binding:"required,oneof=personal quota"`
	Comment   string `json:"comment" binding:"max=1000"`
}

func (i VoteInput) voteAmount() (domain.VoteAmount, error) {
	if i.Direction == string(domain.DirectionDown) {
		return domain.Down(i.Amount)
	}
	return domain.Up(i.Amount)
}

// VotePublication spends the caller's quota or personal merits on a
// publication.
func (h *VoteHandler) VotePublication(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	vote, err := input.voteAmount()
	if err != nil {
		LedgerError(c, err)
		return
	}

	entry, err := services.VoteOnPublication(user.TgID, c.Param("uid"), vote, domain.MeritSource(input.Source), input.Comment)
	if err != nil {
		LedgerError(c, err)
		return
	}

	balance, _ := services.BalanceOfPublication(c.Param("uid"))
	c.JSON(http.StatusOK, gin.H{"transaction": entry, "publication_balance": balance})
}

// VoteTransaction votes on a ledger entry, typically a comment left with an
// earlier vote.
func (h *VoteHandler) VoteTransaction(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	vote, err := input.voteAmount()
	if err != nil {
		LedgerError(c, err)
		return
	}

	entry, err := services.VoteOnTransaction(user.TgID, c.Param("uid"), vote, domain.MeritSource(input.Source), input.Comment)
	if err != nil {
		LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": entry})
}

type WithdrawInput struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// Withdraw moves accumulated publication balance into the author's wallet.
func (h *VoteHandler) Withdraw(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input WithdrawInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	entry, wallet, err := services.Withdraw(user.TgID, c.Param("uid"), input.Amount)
	if err != nil {
		LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": entry, "wallet": wallet})
}
