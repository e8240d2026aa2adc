package handlers

import (
	"net/http"

	"meriter/internal/services"
	"meriter/internal/utils"

	"github.com/gin-gonic/gin"
)

type RankHandler struct{}

func NewRankHandler() *RankHandler {
	return &RankHandler{}
}

// Community ranks actors by net received vote weight in one community.
func (h *RankHandler) Community(c *gin.Context) {
	chatID := utils.StringToInt64(c.Param("chatId"))

	if _, err := services.GetCommunity(chatID); err != nil {
		LedgerError(c, err)
		return
	}

	entries, err := services.RankInCommunity(chatID, utils.StringToInt(c.Query("limit")))
	if err != nil {
		LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Hashtag ranks actors across the publications of one hashtag.
func (h *RankHandler) Hashtag(c *gin.Context) {
	entries, err := services.RankInHashtag(c.Param("tag"), utils.StringToInt(c.Query("limit")))
	if err != nil {
		LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
