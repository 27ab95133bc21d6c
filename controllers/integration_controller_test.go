package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hanacard-dev/cardbenefits/config"
	"github.com/hanacard-dev/cardbenefits/models"
	"github.com/hanacard-dev/cardbenefits/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrationRouter() *gin.Engine {
	router := gin.New()
	integration := router.Group("/api/integration")
	{
		integration.POST("/hanamoney-info", GetHanamoneyInfo)
		integration.POST("/hanamoney-earn", EarnHanamoney)
		integration.POST("/customer-info", GetCustomerInfo)
		integration.POST("/update-unified-token", UpdateUnifiedToken)
		integration.GET("/cards/:memberId/transactions", GetCardTransactions)
	}
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) utils.StandardResponse {
	t.Helper()

	var resp utils.StandardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// stubGreenWorld keeps the best-effort partner push from dialing a real
// host during tests.
func stubGreenWorld(t *testing.T) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	t.Setenv("GREEN_WORLD_BASE_URL", server.URL)
}

func TestIntegrationRejectsUnknownService(t *testing.T) {
	setupTestDB(t)
	router := integrationRouter()

	for _, path := range []string{
		"/api/integration/hanamoney-info",
		"/api/integration/hanamoney-earn",
		"/api/integration/customer-info",
	} {
		w := postJSON(t, router, path, gin.H{
			"customerInfoToken": "token-1",
			"requestingService": "SOME_OTHER_SERVICE",
			"amount":            100,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "error", decodeResponse(t, w).Status)
	}
}

func TestIntegrationRejectsMissingToken(t *testing.T) {
	setupTestDB(t)
	router := integrationRouter()

	w := postJSON(t, router, "/api/integration/hanamoney-info", gin.H{
		"requestingService": "GREEN_WORLD",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHanamoneyInfoCreatesMembership(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "01044440001")
	router := integrationRouter()

	w := postJSON(t, router, "/api/integration/hanamoney-info", gin.H{
		"customerInfoToken": "token-1",
		"requestingService": "GREEN_WORLD",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "success", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, models.MembershipLevelBasic, data["membershipLevel"])
	assert.EqualValues(t, 0, data["currentPoints"])
	assert.Equal(t, true, data["isSubscribed"])

	var count int64
	config.DB.Model(&models.HanamoneyMembership{}).Where("user_id = ?", 1).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestEarnHanamoneyEndpoint(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "01044440002")
	stubGreenWorld(t)
	router := integrationRouter()

	w := postJSON(t, router, "/api/integration/hanamoney-earn", gin.H{
		"customerInfoToken": "token-1",
		"requestingService": "GREEN_WORLD",
		"amount":            2500,
		"description":       "Green purchase reward",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2500, data["currentPoints"])
	assert.EqualValues(t, 2500, data["accumulatedPoints"])

	var transaction models.HanamoneyTransaction
	require.NoError(t, config.DB.First(&transaction).Error)
	assert.Equal(t, models.HanamoneyTransactionEarn, transaction.Type)
	assert.EqualValues(t, 2500, transaction.Amount)
}

func TestEarnHanamoneyEndpointRejectsNonPositiveAmount(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "01044440003")
	router := integrationRouter()

	w := postJSON(t, router, "/api/integration/hanamoney-earn", gin.H{
		"customerInfoToken": "token-1",
		"requestingService": "GREEN_WORLD",
		"amount":            0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUnifiedToken(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01044440004")
	router := integrationRouter()

	w := postJSON(t, router, "/api/integration/update-unified-token", gin.H{
		"phoneNumber":  user.PhoneNumber,
		"unifiedToken": "unified-abc-123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var saved models.User
	require.NoError(t, config.DB.First(&saved, user.ID).Error)
	assert.Equal(t, "unified-abc-123", saved.GroupCustomerToken)
}

func TestUpdateUnifiedTokenUnknownPhone(t *testing.T) {
	setupTestDB(t)
	router := integrationRouter()

	w := postJSON(t, router, "/api/integration/update-unified-token", gin.H{
		"phoneNumber":  "01099999999",
		"unifiedToken": "unified-abc-123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCardTransactionsEmpty(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "01044440005")
	router := integrationRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/integration/cards/1/transactions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 0, data["totalCount"])
	assert.EqualValues(t, user.ID, data["userId"])
}
