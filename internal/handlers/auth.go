package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"meriter/internal/config"
	"meriter/internal/db"
	"meriter/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm/clause"
)

type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// TelegramAuthInput is the login-widget payload Telegram posts back to us.
type TelegramAuthInput struct {
	ID        int64  `json:"id" binding:"required"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
	PhotoURL  string `json:"photo_url"`
	AuthDate  int64  `json:"auth_date" binding:"required"`
	Hash      string `json:"hash" binding:"required"`
}

// TelegramLogin verifies a Telegram login-widget payload, upserts the user
// and returns a signed bearer token.
func (h *AuthHandler) TelegramLogin(c *gin.Context) {
	var input TelegramAuthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if !verifyTelegramAuth(input, h.cfg.BotToken) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid telegram auth data"})
		return
	}
	if time.Since(time.Unix(input.AuthDate, 0)) > 24*time.Hour {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth data expired"})
		return
	}

	user := models.User{
		TgID:      input.ID,
		Username:  input.Username,
		FirstName: input.FirstName,
		PhotoURL:  input.PhotoURL,
	}
	err := db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tg_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "photo_url", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		LedgerError(c, err)
		return
	}
	if err := db.DB.Where("tg_id = ?", input.ID).First(&user).Error; err != nil {
		LedgerError(c, err)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"tg_id": user.TgID,
		"exp":   time.Now().Add(30 * 24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		LedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed, "user": user})
}

// verifyTelegramAuth checks the login-widget signature: HMAC-SHA256 of the
// sorted key=value data-check-string, keyed with SHA256(bot token), per the
// widget documentation.
func verifyTelegramAuth(input TelegramAuthInput, botToken string) bool {
	if botToken == "" {
		return false
	}

	fields := map[string]string{
		"id":        fmt.Sprintf("%d", input.ID),
		"auth_date": fmt.Sprintf("%d", input.AuthDate),
	}
	if input.FirstName != "" {
		fields["first_name"] = input.FirstName
	}
	if input.Username != "" {
		fields["username"] = input.Username
	}
	if input.PhotoURL != "" {
		fields["photo_url"] = input.PhotoURL
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+fields[k])
	}
	checkString := strings.Join(lines, "\n")

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(checkString))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(input.Hash)))
}
