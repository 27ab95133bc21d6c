package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hanacard-dev/cardbenefits/config"
	"github.com/hanacard-dev/cardbenefits/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// greenWorldStub serves the partner's find-by-phone endpoint with a fixed
// hanaMoney payload.
func greenWorldStub(t *testing.T, hanaMoney interface{}) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/members/find-by-phone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"name":      "Partner Member",
			"hanaMoney": hanaMoney,
		})
	}))
	t.Cleanup(server.Close)
	t.Setenv("GREEN_WORLD_BASE_URL", server.URL)
	return server
}

func syncTransactionCount(t *testing.T, membershipID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, config.DB.Model(&models.HanamoneyTransaction{}).
		Where("membership_id = ? AND description LIKE ?", membershipID, "Green world sync%").
		Count(&count).Error)
	return count
}

func TestExtractHanaMoney(t *testing.T) {
	tests := []struct {
		name     string
		customer map[string]interface{}
		want     int64
	}{
		{"json number", map[string]interface{}{"hanaMoney": float64(1500)}, 1500},
		{"numeric string", map[string]interface{}{"hanaMoney": "2000"}, 2000},
		{"garbage string", map[string]interface{}{"hanaMoney": "lots"}, 0},
		{"missing field", map[string]interface{}{"name": "someone"}, 0},
		{"decoder number type", map[string]interface{}{"hanaMoney": json.Number("3000")}, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHanaMoney(tt.customer))
		})
	}
}

func TestSyncEarnsWhenPartnerBalanceIsHigher(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01033330001")
	greenWorldStub(t, 2000)

	_, err := EarnHanamoney(user.ID, 500, "Initial credit")
	require.NoError(t, err)

	membership, err := SyncHanaMoneyFromGreenWorld(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2000, membership.Balance, "local balance converges to the partner's")
	assert.EqualValues(t, 1, syncTransactionCount(t, membership.ID), "one delta, one ledger row")

	var transaction models.HanamoneyTransaction
	require.NoError(t, config.DB.Where("membership_id = ? AND description = ?", membership.ID, "Green world sync - earn").
		First(&transaction).Error)
	assert.Equal(t, models.HanamoneyTransactionEarn, transaction.Type)
	assert.EqualValues(t, 1500, transaction.Amount)
	assert.EqualValues(t, 2000, transaction.BalanceAfter)
}

func TestSyncSpendsWhenPartnerBalanceIsLower(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01033330002")
	greenWorldStub(t, 1200)

	_, err := EarnHanamoney(user.ID, 2000, "Initial credit")
	require.NoError(t, err)

	membership, err := SyncHanaMoneyFromGreenWorld(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1200, membership.Balance)

	var transaction models.HanamoneyTransaction
	require.NoError(t, config.DB.Where("membership_id = ? AND description = ?", membership.ID, "Green world sync - spend").
		First(&transaction).Error)
	assert.Equal(t, models.HanamoneyTransactionSpend, transaction.Type)
	assert.EqualValues(t, 800, transaction.Amount)
	assert.EqualValues(t, 1200, transaction.BalanceAfter)
}

func TestSyncNoOpWhenBalancesMatch(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01033330003")
	greenWorldStub(t, 700)

	_, err := EarnHanamoney(user.ID, 700, "Initial credit")
	require.NoError(t, err)

	membership, err := SyncHanaMoneyFromGreenWorld(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 700, membership.Balance)
	assert.Zero(t, syncTransactionCount(t, membership.ID), "matching balances write no ledger row")
}

func TestSyncSkipsUncoverableDeduction(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01033330004")
	greenWorldStub(t, -500)

	_, err := EarnHanamoney(user.ID, 300, "Initial credit")
	require.NoError(t, err)

	membership, err := SyncHanaMoneyFromGreenWorld(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 300, membership.Balance, "deduction beyond the local balance is skipped")
	assert.Zero(t, syncTransactionCount(t, membership.ID))
}

func TestSyncStringCoercion(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01033330005")
	greenWorldStub(t, "1800")

	membership, err := SyncHanaMoneyFromGreenWorld(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1800, membership.Balance)
}

func TestSyncFallsBackWhenPartnerFails(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01033330006")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	t.Setenv("GREEN_WORLD_BASE_URL", server.URL)

	_, err := EarnHanamoney(user.ID, 900, "Initial credit")
	require.NoError(t, err)

	membership, err := SyncHanaMoneyFromGreenWorld(user.ID)
	require.NoError(t, err, "partner failures never surface to the caller")
	assert.EqualValues(t, 900, membership.Balance)
	assert.Zero(t, syncTransactionCount(t, membership.ID))
}

func TestSyncReturnsStoredBalanceWhenLedgerWriteFails(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01033330009")
	greenWorldStub(t, 2000)

	_, err := EarnHanamoney(user.ID, 500, "Initial credit")
	require.NoError(t, err)

	// Breaking the ledger table makes the balance adjustment roll back;
	// the returned membership must reflect the stored balance, not the
	// rolled-back mutation.
	require.NoError(t, config.DB.Migrator().DropTable(&models.HanamoneyTransaction{}))

	membership, err := SyncHanaMoneyFromGreenWorld(user.ID)
	require.NoError(t, err, "sync failures never surface to the caller")
	assert.EqualValues(t, 500, membership.Balance)
	assert.EqualValues(t, 500, membership.TotalEarned)

	var stored models.HanamoneyMembership
	require.NoError(t, config.DB.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, stored.Balance, membership.Balance)
	assert.Equal(t, stored.TotalEarned, membership.TotalEarned)
}

func TestSyncCreatesMembershipForNewUser(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01033330007")
	greenWorldStub(t, 2500)

	membership, err := SyncHanaMoneyFromGreenWorld(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2500, membership.Balance)
	assert.NotEmpty(t, membership.MembershipID)
}

func TestSyncUnknownUser(t *testing.T) {
	setupTestDB(t)
	greenWorldStub(t, 1000)

	_, err := SyncHanaMoneyFromGreenWorld(9999)
	assert.Error(t, err)
}

func TestSyncToGreenWorld(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01033330008")

	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/members/update-hana-money", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	t.Setenv("GREEN_WORLD_BASE_URL", server.URL)

	SyncToGreenWorld(user.ID, 1500, models.HanamoneyTransactionEarn, "Cashback credit")

	require.NotNil(t, received)
	assert.Equal(t, user.PhoneNumber, received["phoneNumber"])
	assert.EqualValues(t, 1500, received["amount"])
	assert.Equal(t, models.HanamoneyTransactionEarn, received["transactionType"])
	assert.Equal(t, "Cashback credit", received["description"])
}
