package utils

import (
	"net/http"
	"testing"

	"github.com/hanacard-dev/cardbenefits/config"
	"github.com/hanacard-dev/cardbenefits/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateMembership(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01022220001")

	first, err := GetOrCreateMembership(user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, first.MembershipID)
	assert.Equal(t, models.MembershipLevelBasic, first.MembershipLevel)
	assert.Zero(t, first.Balance)
	assert.True(t, first.IsActive)

	second, err := GetOrCreateMembership(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "repeated calls return the same membership")
	assert.Equal(t, first.MembershipID, second.MembershipID)

	var count int64
	config.DB.Model(&models.HanamoneyMembership{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestEarnHanamoney(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01022220002")

	membership, err := EarnHanamoney(user.ID, 1500, "Cashback credit")
	require.NoError(t, err)
	assert.EqualValues(t, 1500, membership.Balance)
	assert.EqualValues(t, 1500, membership.TotalEarned)

	membership, err = EarnHanamoney(user.ID, 500, "Cashback credit")
	require.NoError(t, err)
	assert.EqualValues(t, 2000, membership.Balance)
	assert.EqualValues(t, 2000, membership.TotalEarned)

	var transactions []models.HanamoneyTransaction
	require.NoError(t, config.DB.Where("membership_id = ?", membership.ID).Order("id ASC").Find(&transactions).Error)
	require.Len(t, transactions, 2)
	assert.Equal(t, models.HanamoneyTransactionEarn, transactions[0].Type)
	assert.EqualValues(t, 1500, transactions[0].BalanceAfter)
	assert.EqualValues(t, 2000, transactions[1].BalanceAfter)
}

func TestEarnHanamoneyRejectsNonPositiveAmount(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01022220003")

	for _, amount := range []int64{0, -100} {
		_, err := EarnHanamoney(user.ID, amount, "bad amount")
		require.Error(t, err)
		appErr := GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	}

	var count int64
	config.DB.Model(&models.HanamoneyTransaction{}).Count(&count)
	assert.Zero(t, count)
}

func TestSpendHanamoney(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01022220004")

	_, err := EarnHanamoney(user.ID, 1000, "Initial credit")
	require.NoError(t, err)

	membership, err := SpendHanamoney(user.ID, 400, "Point payment")
	require.NoError(t, err)
	assert.EqualValues(t, 600, membership.Balance)
	assert.EqualValues(t, 1000, membership.TotalEarned, "spending never reduces the lifetime total")

	var transaction models.HanamoneyTransaction
	require.NoError(t, config.DB.Where("membership_id = ? AND type = ?", membership.ID, models.HanamoneyTransactionSpend).
		First(&transaction).Error)
	assert.EqualValues(t, 400, transaction.Amount)
	assert.EqualValues(t, 600, transaction.BalanceAfter)
}

func TestSpendHanamoneyInsufficientBalance(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01022220005")

	_, err := EarnHanamoney(user.ID, 300, "Initial credit")
	require.NoError(t, err)

	_, err = SpendHanamoney(user.ID, 500, "Point payment")
	require.Error(t, err)
	appErr := GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	membership, err := GetOrCreateMembership(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 300, membership.Balance, "failed spend leaves the balance untouched")

	var count int64
	config.DB.Model(&models.HanamoneyTransaction{}).
		Where("membership_id = ? AND type = ?", membership.ID, models.HanamoneyTransactionSpend).
		Count(&count)
	assert.Zero(t, count)
}

func TestGetHanamoneyTransactionsPagination(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01022220006")

	for i := 0; i < 5; i++ {
		_, err := EarnHanamoney(user.ID, int64(100*(i+1)), "Credit")
		require.NoError(t, err)
	}

	transactions, total, err := GetHanamoneyTransactions(user.ID, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, transactions, 2)
	assert.EqualValues(t, 500, transactions[0].Amount, "newest first")

	transactions, total, err = GetHanamoneyTransactions(user.ID, 2, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, transactions, 1)
	assert.EqualValues(t, 100, transactions[0].Amount)
}
