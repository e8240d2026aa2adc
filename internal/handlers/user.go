package handlers

import (
	"net/http"

	"meriter/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the caller's profile together with their wallets.
func (h *UserHandler) Me(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"user": user, "wallets": wallets})
}
