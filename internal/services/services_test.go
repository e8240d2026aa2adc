package services

import (
	"testing"

	"meriter/internal/db"
	"meriter/internal/models"
)

func setupTest(t *testing.T) {
	t.Helper()
	db.InitTest()
}

func seedCommunity(t *testing.T, tgChatID, dailyQuota int64) models.Community {
	t.Helper()
	community := models.Community{
		TgChatID:   tgChatID,
		Title:      "test community",
		DailyQuota: dailyQuota,
	}
	if err := db.DB.Create(&community).Error; err != nil {
		t.Fatalf("failed to seed community: %v", err)
	}
	return community
}

func seedUser(t *testing.T, tgID int64) models.User {
	t.Helper()
	user := models.User{TgID: tgID, Username: "user", FirstName: "Test"}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedPublication(t *testing.T, uid string, authorTgID, tgChatID int64) models.Publication {
	t.Helper()
	pub := models.Publication{
		UID:               uid,
		AuthorTgID:        authorTgID,
		CommunityTgChatID: tgChatID,
		Title:             "test publication",
		Content:           "hello",
	}
	if err := db.DB.Create(&pub).Error; err != nil {
		t.Fatalf("failed to seed publication: %v", err)
	}
	return pub
}

func countTransactions(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := db.DB.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count transactions: %v", err)
	}
	return count
}
