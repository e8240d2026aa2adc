package handlers

import (
	"errors"
	"log"
	"net/http"

	"meriter/internal/domain"
	"meriter/internal/middleware"
	"meriter/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentUser pulls the authenticated user that LoadUser put on the context.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// LedgerError translates ledger errors into HTTP responses. Business
// rejections come back as 400 with the sentinel's message as a stable code;
// anything unrecognized is a 500 and gets logged.
func LedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, domain.ErrCounterNotFound),
		errors.Is(err, domain.ErrWalletNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrNotPublicationAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrIncompatibleCurrency),
		errors.Is(err, domain.ErrIncompatibleSource),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrQuotaExceeded),
		errors.Is(err, domain.ErrSelfVote):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("ledger error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
