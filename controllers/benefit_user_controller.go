package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hanacard-dev/cardbenefits/models"
	"github.com/hanacard-dev/cardbenefits/utils"
)

// ChangePackageRequest is the body of the package-change endpoint
type ChangePackageRequest struct {
	PackageCode  string `json:"packageCode" binding:"required"`
	ChangeReason string `json:"changeReason"`
}

// currentUser pulls the authenticated user placed in the context by the
// auth middleware.
func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.BadRequest(c, "Invalid user in context", nil)
		return models.User{}, false
	}
	return user, true
}

// cardProductIDParam reads the cardProductId query parameter, defaulting
// to the primary card product.
func cardProductIDParam(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.DefaultQuery("cardProductId", "1"), 10, 32)
	if err != nil || id < 1 {
		return 1
	}
	return uint(id)
}

// GetCurrentPackage returns the user's currently assigned package for a card product
func GetCurrentPackage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	cardProductID := cardProductIDParam(c)
	utils.LogInfo("GetCurrentPackage called - user: %d, card product: %d", user.ID, cardProductID)

	pkg, err := utils.GetCurrentActivePackage(user.ID, cardProductID)
	if err != nil {
		utils.LogError("Failed to load current package for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load current package", nil)
		return
	}
	if pkg == nil {
		utils.NotFound(c, "No benefit package selected for this card")
		return
	}

	utils.Success(c, "Current package retrieved successfully", pkg)
}

// GetAvailablePackages returns the packages the user can still switch to
func GetAvailablePackages(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	cardProductID := cardProductIDParam(c)
	utils.LogInfo("GetAvailablePackages called - user: %d, card product: %d", user.ID, cardProductID)

	packages, err := utils.GetAvailablePackagesForUser(user.ID, cardProductID)
	if err != nil {
		utils.LogError("Failed to load available packages for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load available packages", nil)
		return
	}

	utils.Success(c, "Available packages retrieved successfully", gin.H{
		"packages": packages,
	})
}

// ChangeBenefitPackage switches the user's package for a card product.
// The switch takes effect on the 1st of next month.
func ChangeBenefitPackage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	cardProductID := cardProductIDParam(c)

	var req ChangePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid package change request from user %d: %v", user.ID, err)
		utils.BadRequest(c, "packageCode is required", nil)
		return
	}
	if req.ChangeReason == "" {
		req.ChangeReason = "User request"
	}

	utils.LogInfo("ChangeBenefitPackage called - user: %d, card product: %d, package: %s",
		user.ID, cardProductID, req.PackageCode)

	benefit, err := utils.ChangeBenefitPackage(user.ID, cardProductID, req.PackageCode, req.ChangeReason)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to change benefit package")
		return
	}

	// Confirmation mail is best-effort; the switch has already committed.
	// The mailed effective date comes from the committed row.
	if pkg, pkgErr := utils.GetPackageByCode(req.PackageCode); pkgErr == nil {
		effective := benefit.EffectiveDate.Format("2006-01-02")
		if mailErr := utils.SendPackageChangeEmail(user.Email, pkg.PackageName, effective); mailErr != nil {
			utils.LogError("Failed to send package change email to user %d: %v", user.ID, mailErr)
		}
	}

	utils.Success(c, "Benefit package changed successfully", gin.H{
		"userId":         user.ID,
		"cardProductId":  cardProductID,
		"newPackageCode": req.PackageCode,
	})
}

// GetBenefitChangeHistory returns the user's package switch ledger
func GetBenefitChangeHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	cardProductID := cardProductIDParam(c)
	utils.LogInfo("GetBenefitChangeHistory called - user: %d, card product: %d", user.ID, cardProductID)

	history, err := utils.GetBenefitChangeHistory(user.ID, cardProductID)
	if err != nil {
		utils.LogError("Failed to load change history for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load change history", nil)
		return
	}

	utils.Success(c, "Change history retrieved successfully", gin.H{
		"history": history,
	})
}

// GetBenefitPackagesForUser returns the front-end shaped package listing
// with the user's current selection marked and benefit lines flattened.
func GetBenefitPackagesForUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.LogInfo("GetBenefitPackagesForUser called - user: %d", user.ID)

	allPackages, err := utils.GetAllActivePackages()
	if err != nil {
		utils.LogError("Failed to load benefit packages: %v", err)
		utils.InternalServerError(c, "Failed to load benefit packages", nil)
		return
	}

	currentPackage, err := utils.GetCurrentActivePackage(user.ID, 1)
	if err != nil {
		utils.LogError("Failed to load current package for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load current package", nil)
		return
	}

	currentName := ""
	var currentID uint
	if currentPackage != nil {
		currentName = currentPackage.PackageName
		currentID = currentPackage.ID
	}

	packages := make([]gin.H, 0, len(allPackages))
	for _, pkg := range allPackages {
		categories, err := utils.GetCategoriesWithDetails(pkg.ID)
		if err != nil {
			utils.LogError("Failed to load categories for package %d: %v", pkg.ID, err)
			utils.InternalServerError(c, "Failed to load benefit packages", nil)
			return
		}

		benefits := make([]gin.H, 0)
		for _, category := range categories {
			for _, detail := range category.Details {
				benefits = append(benefits, gin.H{
					"category":     detail.BenefitName,
					"cashbackRate": detail.CashbackRate.String() + "%",
					"description":  detail.BenefitDescription,
					"icon":         detail.BenefitIcon,
				})
			}
		}

		packages = append(packages, gin.H{
			"packageCode":        pkg.PackageCode,
			"packageName":        pkg.PackageName,
			"packageDescription": pkg.PackageDescription,
			"packageIcon":        pkg.PackageIcon,
			"maxCashback":        "Up to " + pkg.MaxCashbackRate.String() + "% cashback",
			"isActive":           pkg.ID == currentID,
			"benefits":           benefits,
		})
	}

	utils.Success(c, "Benefit packages retrieved successfully", gin.H{
		"currentPackage": currentName,
		"packages":       packages,
	})
}
