package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finwatch/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plaintext password used by user fixtures.
const TestPassword = "password123"

// CreateTestUser creates a user with a hashed password and unique username/email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithCredentials(t, db, fmt.Sprintf("user%d", n), fmt.Sprintf("user%d@test.com", n))
}

// CreateTestUserWithCredentials creates a user with the given username and email.
// The password hash is un-peppered; tests that exercise the pepper build their
// own hashes.
func CreateTestUserWithCredentials(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     "user",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestStock creates a stock with a unique symbol.
func CreateTestStock(t *testing.T, db *gorm.DB) *models.Stock {
	t.Helper()
	return CreateTestStockWithSymbol(t, db, fmt.Sprintf("TST%d", nextID()))
}

// CreateTestStockWithSymbol creates a stock with the given symbol.
func CreateTestStockWithSymbol(t *testing.T, db *gorm.DB, symbol string) *models.Stock {
	t.Helper()

	stock := &models.Stock{
		Symbol:      symbol,
		CompanyName: fmt.Sprintf("Test Company %s", symbol),
		Purchase:    100,
		LastDiv:     1.5,
		Industry:    "Technology",
		MarketCap:   1000000000,
	}
	if err := db.Create(stock).Error; err != nil {
		t.Fatalf("failed to create test stock: %v", err)
	}
	return stock
}

// CreateTestComment creates a comment by the given user on the given stock.
func CreateTestComment(t *testing.T, db *gorm.DB, userID, stockID uint) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		Title:   fmt.Sprintf("Test Comment %d", nextID()),
		Body:    "This is a test comment body.",
		StockID: &stockID,
		UserID:  userID,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}

// CreateTestHolding puts the stock into the user's portfolio.
func CreateTestHolding(t *testing.T, db *gorm.DB, userID, stockID uint) *models.PortfolioItem {
	t.Helper()

	item := &models.PortfolioItem{UserID: userID, StockID: stockID}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return item
}

// CreateTestRefreshToken creates an active refresh token for the user.
func CreateTestRefreshToken(t *testing.T, db *gorm.DB, userID uint) *models.RefreshToken {
	t.Helper()

	token := &models.RefreshToken{
		Token:       fmt.Sprintf("testtoken%d", nextID()),
		ExpiresAt:   time.Now().Add(7 * 24 * time.Hour),
		CreatedByIP: "127.0.0.1",
		UserID:      userID,
	}
	if err := db.Create(token).Error; err != nil {
		t.Fatalf("failed to create test refresh token: %v", err)
	}
	return token
}

// RevokeTestRefreshToken marks a refresh token revoked.
func RevokeTestRefreshToken(t *testing.T, db *gorm.DB, token *models.RefreshToken) {
	t.Helper()

	now := time.Now()
	if err := db.Model(token).Updates(map[string]interface{}{
		"revoked_at":    now,
		"revoked_by_ip": "127.0.0.1",
	}).Error; err != nil {
		t.Fatalf("failed to revoke test refresh token: %v", err)
	}
	token.RevokedAt = &now
}

// ExpireTestRefreshToken backdates a refresh token's expiry.
func ExpireTestRefreshToken(t *testing.T, db *gorm.DB, token *models.RefreshToken) {
	t.Helper()

	past := time.Now().Add(-time.Hour)
	if err := db.Model(token).Update("expires_at", past).Error; err != nil {
		t.Fatalf("failed to expire test refresh token: %v", err)
	}
	token.ExpiresAt = past
}
