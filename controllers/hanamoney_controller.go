package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/hanacard-dev/cardbenefits/utils"
)

// GetHanamoneyBalance returns the user's hana-money membership
func GetHanamoneyBalance(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.LogInfo("GetHanamoneyBalance called - user: %d", user.ID)

	membership, err := utils.GetOrCreateMembership(user.ID)
	if err != nil {
		utils.LogError("Failed to get membership for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get hana-money membership", nil)
		return
	}

	utils.Success(c, "Hana-money balance retrieved successfully", gin.H{
		"membershipId":    membership.MembershipID,
		"membershipLevel": membership.MembershipLevel,
		"balance":         membership.Balance,
		"totalEarned":     membership.TotalEarned,
	})
}

// GetHanamoneyTransactions returns the user's hana-money ledger
func GetHanamoneyTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.LogInfo("GetHanamoneyTransactions called - user: %d", user.ID)

	pagination := utils.NewPagination(c)
	transactions, total, err := utils.GetHanamoneyTransactions(user.ID, pagination.Limit, pagination.Offset)
	if err != nil {
		utils.LogError("Failed to get transactions for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get hana-money transactions", nil)
		return
	}

	formatted := make([]gin.H, len(transactions))
	for i, txn := range transactions {
		formatted[i] = gin.H{
			"id":           txn.ID,
			"amount":       txn.Amount,
			"balanceAfter": txn.BalanceAfter,
			"type":         txn.Type,
			"description":  txn.Description,
			"createdAt":    txn.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	utils.SuccessWithPagination(c, "Hana-money transactions retrieved successfully", gin.H{
		"transactions": formatted,
	}, total, pagination.Page, pagination.Limit)
}

// SyncHanamoney reconciles the user's balance against the green world
// partner and returns the resulting membership. Partner failures degrade
// to the local balance.
func SyncHanamoney(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.LogInfo("SyncHanamoney called - user: %d", user.ID)

	membership, err := utils.SyncHanaMoneyFromGreenWorld(user.ID)
	if err != nil {
		utils.LogError("Failed to sync hana-money for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to sync hana-money", nil)
		return
	}

	utils.Success(c, "Hana-money synchronized", gin.H{
		"membershipId":    membership.MembershipID,
		"membershipLevel": membership.MembershipLevel,
		"balance":         membership.Balance,
		"totalEarned":     membership.TotalEarned,
	})
}
