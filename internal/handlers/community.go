package handlers

import (
	"net/http"

	"meriter/internal/services"
	"meriter/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct{}

func NewCommunityHandler() *CommunityHandler {
	return &CommunityHandler{}
}

func (h *CommunityHandler) List(c *gin.Context) {
	communities, err := services.ListCommunities()
	if err != nil {
		LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, communities)
}

func (h *CommunityHandler) Get(c *gin.Context) {
	chatID := utils.StringToInt64(c.Param("chatId"))

	community, err := services.GetCommunity(chatID)
	if err != nil {
		LedgerError(c, err)
		return
	}
	admins, err := services.ListAdministrators(chatID)
	if err != nil {
		LedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"community": community, "administrators": admins})
}

type AdminInput struct {
	UserTgID int64 `json:"user_tg_id" binding:"required"`
}

// AddAdmin grants admin rights; only existing community admins (or platform
// admins) may call it.
func (h *CommunityHandler) AddAdmin(c *gin.Context) {
	chatID, ok := h.requireAdmin(c)
	if !ok {
		return
	}

	var input AdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if err := services.AddAdministrator(chatID, input.UserTgID); err != nil {
		LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RemoveAdmin revokes admin rights; same authorization as AddAdmin.
func (h *CommunityHandler) RemoveAdmin(c *gin.Context) {
	chatID, ok := h.requireAdmin(c)
	if !ok {
		return
	}

	tgID := utils.StringToInt64(c.Param("tgId"))
	if err := services.RemoveAdministrator(chatID, tgID); err != nil {
		LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *CommunityHandler) requireAdmin(c *gin.Context) (int64, bool) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return 0, false
	}

	chatID := utils.StringToInt64(c.Param("chatId"))
	if _, err := services.GetCommunity(chatID); err != nil {
		LedgerError(c, err)
		return 0, false
	}

	if user.Role != "admin" && !services.IsAdministrator(chatID, user.TgID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "community admin required"})
		return 0, false
	}
	return chatID, true
}
