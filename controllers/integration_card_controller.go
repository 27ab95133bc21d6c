package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hanacard-dev/cardbenefits/config"
	"github.com/hanacard-dev/cardbenefits/models"
	"github.com/hanacard-dev/cardbenefits/utils"
)

// cardTransactionsForUser flattens a user's card transactions into the
// integration response shape, resolving benefit catalog references.
func cardTransactionsForUser(userID uint) ([]gin.H, error) {
	var userCards []models.UserCard
	if err := config.DB.Where("user_id = ? AND is_active = ?", userID, true).Find(&userCards).Error; err != nil {
		return nil, err
	}

	result := make([]gin.H, 0)
	for _, card := range userCards {
		var transactions []models.CardTransaction
		if err := config.DB.Where("user_card_id = ?", card.ID).Order("transaction_date DESC").Find(&transactions).Error; err != nil {
			return nil, err
		}

		for _, txn := range transactions {
			entry := gin.H{
				"transactionDate":  txn.TransactionDate.Format("2006-01-02 15:04:05"),
				"merchantName":     txn.MerchantName,
				"merchantCategory": txn.MerchantCategory,
				"category":         txn.Category,
				"amount":           txn.Amount,
				"cashbackAmount":   txn.CashbackAmount,
				"cashbackRate":     txn.CashbackRate,
				"description":      txn.Description,
			}

			if txn.BenefitCategoryID != nil {
				var category models.BenefitCategory
				if err := config.DB.First(&category, *txn.BenefitCategoryID).Error; err == nil {
					entry["benefitCategoryName"] = category.CategoryName
					entry["benefitCategoryIcon"] = category.CategoryIcon
				}
			}
			if txn.BenefitDetailID != nil {
				var detail models.BenefitDetail
				if err := config.DB.First(&detail, *txn.BenefitDetailID).Error; err == nil {
					entry["benefitName"] = detail.BenefitName
					entry["benefitIcon"] = detail.BenefitIcon
				}
			}

			result = append(result, entry)
		}
	}
	return result, nil
}

// GetCardInfo serves the partner's card information query
func GetCardInfo(c *gin.Context) {
	memberID, ok := memberIDParam(c)
	if !ok {
		return
	}
	if c.DefaultQuery("consent", "true") != "true" {
		utils.BadRequest(c, "Customer consent is required", nil)
		return
	}
	utils.LogInfo("GetCardInfo called - member: %d", memberID)

	var user models.User
	if err := config.DB.First(&user, memberID).Error; err != nil {
		utils.LogError("Card info lookup failed, user %d not found: %v", memberID, err)
		utils.Success(c, "Card info retrieved successfully", gin.H{
			"cards":        []gin.H{},
			"summary":      gin.H{"totalCardCount": 0, "activeCardCount": 0},
			"responseTime": time.Now(),
		})
		return
	}

	var userCards []models.UserCard
	if err := config.DB.Where("user_id = ? AND is_active = ?", memberID, true).Find(&userCards).Error; err != nil {
		utils.LogError("Failed to load cards for user %d: %v", memberID, err)
		utils.InternalServerError(c, "Failed to load card info", nil)
		return
	}

	cards := make([]gin.H, 0, len(userCards))
	var totalCreditLimit int64
	for _, card := range userCards {
		var product models.CardProduct
		if err := config.DB.First(&product, card.CardProductID).Error; err != nil {
			utils.LogError("Card product %d missing for card %d: %v", card.CardProductID, card.ID, err)
			continue
		}

		cards = append(cards, gin.H{
			"cardNumber":   card.CardNumberMasked,
			"cardName":     product.ProductName,
			"cardType":     product.ProductType,
			"cardStatus":   "ACTIVE",
			"creditLimit":  product.CreditLimit,
			"issueDate":    card.CreatedAt,
			"expiryDate":   card.ExpiryDate,
			"cardImageUrl": product.ImageURL,
		})
		totalCreditLimit += product.CreditLimit
	}

	utils.Success(c, "Card info retrieved successfully", gin.H{
		"cards": cards,
		"summary": gin.H{
			"totalCardCount":   len(cards),
			"activeCardCount":  len(cards),
			"totalCreditLimit": totalCreditLimit,
		},
		"responseTime": time.Now(),
	})
}

// GetCustomerInfo serves the partner's customer information query
func GetCustomerInfo(c *gin.Context) {
	var req struct {
		CustomerInfoToken string `json:"customerInfoToken"`
		RequestingService string `json:"requestingService"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", nil)
		return
	}
	utils.LogInfo("GetCustomerInfo called - requesting service: %s", req.RequestingService)

	if req.RequestingService != requestingServiceGreenWorld {
		utils.BadRequest(c, "Requesting service is not allowed", nil)
		return
	}

	userID, err := extractUserIDFromToken(req.CustomerInfoToken)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to resolve customer token")
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.LogError("Customer info lookup failed, user %d not found: %v", userID, err)
		utils.NotFound(c, "Customer not found")
		return
	}

	membership, err := utils.GetOrCreateMembership(userID)
	if err != nil {
		utils.LogError("Failed to load membership for user %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to load customer info", nil)
		return
	}

	utils.Success(c, "Customer info retrieved successfully", gin.H{
		"customerInfo": gin.H{
			"name":          user.Name,
			"email":         user.Email,
			"phoneNumber":   user.PhoneNumber,
			"customerGrade": user.CustomerGrade,
			"joinDate":      user.CreatedAt,
			"isActive":      user.IsActive,
		},
		"hanamoneyInfo": membershipResponse(membership),
		"responseTime":  time.Now(),
	})
}

// GetCardTransactions serves the partner's card transaction-history query
func GetCardTransactions(c *gin.Context) {
	memberID, ok := memberIDParam(c)
	if !ok {
		return
	}
	utils.LogInfo("GetCardTransactions called - member: %d", memberID)

	transactions, err := cardTransactionsForUser(memberID)
	if err != nil {
		utils.LogError("Failed to load card transactions for user %d: %v", memberID, err)
		utils.InternalServerError(c, "Failed to load card transactions", nil)
		return
	}

	utils.Success(c, "Card transactions retrieved successfully", gin.H{
		"transactions": transactions,
		"totalCount":   len(transactions),
		"userId":       memberID,
	})
}

// GetConsumptionSummary serves the partner's monthly consumption summary
// query, aggregating card spend and cashback per category.
func GetConsumptionSummary(c *gin.Context) {
	memberID, ok := memberIDParam(c)
	if !ok {
		return
	}
	utils.LogInfo("GetConsumptionSummary called - member: %d", memberID)

	transactions, err := cardTransactionsForUser(memberID)
	if err != nil {
		utils.LogError("Failed to load consumption summary for user %d: %v", memberID, err)
		utils.InternalServerError(c, "Failed to load consumption summary", nil)
		return
	}

	categoryAmounts := make(map[string]int64)
	var totalAmount, totalCashback int64
	for _, txn := range transactions {
		category, _ := txn["category"].(string)
		amount, _ := txn["amount"].(int64)
		cashback, _ := txn["cashbackAmount"].(int64)

		categoryAmounts[category] += amount
		totalAmount += amount
		totalCashback += cashback
	}

	utils.Success(c, "Consumption summary retrieved successfully", gin.H{
		"totalAmount":     totalAmount,
		"totalCashback":   totalCashback,
		"categoryAmounts": categoryAmounts,
		"userId":          memberID,
	})
}
