package controllers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hanacard-dev/cardbenefits/config"
	"github.com/hanacard-dev/cardbenefits/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB points config.DB at a fresh in-memory database with the full
// schema migrated.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateSchema(db))

	config.DB = db
}

func createTestUser(t *testing.T, phoneNumber string) models.User {
	t.Helper()

	user := models.User{
		Username:    "user-" + phoneNumber,
		Email:       phoneNumber + "@example.com",
		PhoneNumber: phoneNumber,
		Name:        "Test User",
		IsActive:    true,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}
