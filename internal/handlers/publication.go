package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"meriter/internal/db"
	"meriter/internal/metrics"
	"meriter/internal/models"
	"meriter/internal/services"
	"meriter/internal/utils"

	"github.com/gin-gonic/gin"
)

type PublicationHandler struct{}

func NewPublicationHandler() *PublicationHandler {
	return &PublicationHandler{}
}

type CreatePublicationInput struct {
	CommunityTgChatID int64  `json:"community_tg_chat_id" binding:"required"`
	Hashtag           string `json:"hashtag" binding:"max=100"`
	Title             string `json:"title" binding:"required,max=300"`
	Content           string `json:"content" binding:"max=20000"`
}

// Create publishes new content into a community.
func (h *PublicationHandler) Create(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input CreatePublicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if _, err := services.GetCommunity(input.CommunityTgChatID); err != nil {
		LedgerError(c, err)
		return
	}

	pub := models.Publication{
		UID:               utils.RandStringBytesMaskImpr(8),
		AuthorTgID:        user.TgID,
		CommunityTgChatID: input.CommunityTgChatID,
		Hashtag:           input.Hashtag,
		Title:             input.Title,
		Content:           input.Content,
	}
	if err := db.DB.Create(&pub).Error; err != nil {
		LedgerError(c, err)
		return
	}

	metrics.PublicationsTotal.Inc()
	c.JSON(http.StatusCreated, pub)
}

// Detail returns one publication with its rendered content, ledger balance
// and view tally. Each read bumps the views counter.
func (h *PublicationHandler) Detail(c *gin.Context) {
	uid := c.Param("uid")

	var pub models.Publication
	if err := db.DB.Where("uid = ?", uid).First(&pub).Error; err != nil {
		LedgerError(c, err)
		return
	}

	balance, err := services.BalanceOfPublication(pub.UID)
	if err != nil {
		LedgerError(c, err)
		return
	}
	pub.Balance = balance

	// Views ride on the generic counter service.
	go func() {
		if _, err := services.PushToCounter(1, services.ViewsMeta(uid), true); err != nil {
			log.Printf("failed to count view for publication %s: %v", uid, err)
		}
	}()
	views, err := services.GetCounter(services.ViewsMeta(uid))
	if err != nil {
		views = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"publication":  pub,
		"content_html": renderedContent(&pub),
		"views":        views,
	})
}

// List returns publications of a community or hashtag, ordered hot or new.
func (h *PublicationHandler) List(c *gin.Context) {
	query := db.DB.Model(&models.Publication{})

	if chatID := utils.StringToInt64(c.Query("community")); chatID != 0 {
		query = query.Where("community_tg_chat_id = ?", chatID)
	}
	if hashtag := c.Query("hashtag"); hashtag != "" {
		query = query.Where("hashtag = ?", hashtag)
	}

	switch c.DefaultQuery("sort", "hot") {
	case "new":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("score DESC, created_at DESC")
	}

	var pubs []models.Publication
	if err := query.Limit(50).Find(&pubs).Error; err != nil {
		LedgerError(c, err)
		return
	}

	for i := range pubs {
		if balance, err := services.BalanceOfPublication(pubs[i].UID); err == nil {
			pubs[i].Balance = balance
		}
	}

	c.JSON(http.StatusOK, pubs)
}

// Transactions returns a publication's ledger feed; entries with comments
// double as the comment thread.
func (h *PublicationHandler) Transactions(c *gin.Context) {
	uid := c.Param("uid")

	var pub models.Publication
	if err := db.DB.Where("uid = ?", uid).First(&pub).Error; err != nil {
		LedgerError(c, err)
		return
	}

	entries, err := services.ListPublicationTransactions(uid, utils.StringToInt(c.Query("limit")))
	if err != nil {
		LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// renderedContent returns the sanitized HTML for a publication, cached for a
// few minutes because rendering markdown per request is wasteful.
func renderedContent(pub *models.Publication) string {
	key := fmt.Sprintf("publication:html:%s:%d", pub.UID, pub.UpdatedAt.Unix())
	if cached := utils.GetCache().Get(key); cached != nil {
		return cached.(string)
	}
	rendered := utils.RenderMarkdown(pub.Content)
	utils.GetCache().Set(key, rendered, 5*time.Minute)
	return rendered
}
