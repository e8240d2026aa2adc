package handlers

import (
	"net/http"

	"meriter/internal/services"
	"meriter/internal/utils"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct{}

func NewWalletHandler() *WalletHandler {
	return &WalletHandler{}
}

// List returns all of the caller's wallets across communities.
func (h *WalletHandler) List(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	wallets, err := services.ListWallets(user.TgID)
	if err != nil {
		LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallets)
}

// Get returns the caller's wallet in one community.
func (h *WalletHandler) Get(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	chatID := utils.StringToInt64(c.Param("chatId"))
	wallet, err := services.GetWallet(user.TgID, chatID)
	if err != nil {
		LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

// Quota returns the caller's remaining free daily vote weight in a
// community.
func (h *WalletHandler) Quota(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	chatID := utils.StringToInt64(c.Param("chatId"))
	remaining, err := services.FreeQuotaRemaining(user.TgID, chatID)
	if err != nil {
		LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"community_tg_chat_id": chatID, "quota_remaining": remaining})
}
