package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hanacard-dev/cardbenefits/config"
	"github.com/hanacard-dev/cardbenefits/models"
	"github.com/hanacard-dev/cardbenefits/utils"
	"gorm.io/gorm"
)

// requestingServiceGreenWorld is the only partner tag allowed on the
// integration surface.
const requestingServiceGreenWorld = "GREEN_WORLD"

// extractUserIDFromToken resolves the group customer token to a user id.
// Placeholder: real token verification lives with the group identity
// service; until it is wired in, the primary test user is returned.
func extractUserIDFromToken(customerInfoToken string) (uint, error) {
	if customerInfoToken == "" {
		return 0, utils.BadRequestError("Customer info token is required", nil)
	}
	utils.LogInfo("Resolving customer info token: %s", customerInfoToken)
	return 1, nil
}

// membershipResponse shapes a membership for the integration surface.
func membershipResponse(membership *models.HanamoneyMembership) gin.H {
	return gin.H{
		"membershipLevel":   membership.MembershipLevel,
		"currentPoints":     membership.Balance,
		"accumulatedPoints": membership.TotalEarned,
		"isSubscribed":      membership.IsActive,
		"joinDate":          membership.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GetHanamoneyInfo serves the partner's hana-money balance query
func GetHanamoneyInfo(c *gin.Context) {
	var req struct {
		CustomerInfoToken string `json:"customerInfoToken"`
		RequestingService string `json:"requestingService"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", nil)
		return
	}
	utils.LogInfo("GetHanamoneyInfo called - requesting service: %s", req.RequestingService)

	if req.RequestingService != requestingServiceGreenWorld {
		utils.BadRequest(c, "Requesting service is not allowed", nil)
		return
	}

	userID, err := extractUserIDFromToken(req.CustomerInfoToken)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to resolve customer token")
		return
	}

	membership, err := utils.GetOrCreateMembership(userID)
	if err != nil {
		utils.LogError("Failed to load membership for user %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to load hana-money info", nil)
		return
	}

	utils.Success(c, "Hana-money info retrieved successfully", membershipResponse(membership))
}

// EarnHanamoney credits hana-money on behalf of the partner and pushes
// the change back to it.
func EarnHanamoney(c *gin.Context) {
	var req struct {
		CustomerInfoToken string `json:"customerInfoToken"`
		RequestingService string `json:"requestingService"`
		Amount            int64  `json:"amount"`
		Description       string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", nil)
		return
	}
	utils.LogInfo("EarnHanamoney called - requesting service: %s, amount: %d", req.RequestingService, req.Amount)

	if req.RequestingService != requestingServiceGreenWorld {
		utils.BadRequest(c, "Requesting service is not allowed", nil)
		return
	}

	userID, err := extractUserIDFromToken(req.CustomerInfoToken)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to resolve customer token")
		return
	}

	membership, err := utils.EarnHanamoney(userID, req.Amount, req.Description)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to earn hana-money")
		return
	}

	// Local state is the source of truth; the push to the partner is
	// best-effort and does not affect the response.
	utils.SyncToGreenWorld(userID, req.Amount, models.HanamoneyTransactionEarn, req.Description)

	utils.Success(c, "Hana-money earned successfully", membershipResponse(membership))
}

// UpdateUnifiedToken stores the group-wide customer token pushed by the
// partner, keyed by phone number.
func UpdateUnifiedToken(c *gin.Context) {
	var req struct {
		PhoneNumber  string `json:"phoneNumber"`
		UnifiedToken string `json:"unifiedToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", nil)
		return
	}
	utils.LogInfo("UpdateUnifiedToken called - phone: %s", req.PhoneNumber)

	var user models.User
	if err := config.DB.Where("phone_number = ?", req.PhoneNumber).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.LogError("Unified token update failed, no user for phone %s", req.PhoneNumber)
			utils.BadRequest(c, "User not found", nil)
			return
		}
		utils.LogError("Unified token update failed for phone %s: %v", req.PhoneNumber, err)
		utils.InternalServerError(c, "Failed to update unified token", nil)
		return
	}

	user.GroupCustomerToken = req.UnifiedToken
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to save unified token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update unified token", nil)
		return
	}

	utils.Success(c, "Unified token updated successfully", gin.H{
		"userId":      user.ID,
		"phoneNumber": user.PhoneNumber,
	})
}

// memberIDParam parses the :memberId path parameter.
func memberIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("memberId"), 10, 32)
	if err != nil || id < 1 {
		utils.BadRequest(c, "Invalid member id", nil)
		return 0, false
	}
	return uint(id), true
}
