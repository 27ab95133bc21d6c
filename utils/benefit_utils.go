package utils

import (
	"time"

	"github.com/hanacard-dev/cardbenefits/config"
	"github.com/hanacard-dev/cardbenefits/models"
	"gorm.io/gorm"
)

// CategoryWithDetails pairs a catalog category with its benefit line-items.
type CategoryWithDetails struct {
	Category models.BenefitCategory `json:"category"`
	Details  []models.BenefitDetail `json:"details"`
}

// PackageWithDetails is a package with its full category/detail tree.
type PackageWithDetails struct {
	Package    models.BenefitPackage `json:"package"`
	Categories []CategoryWithDetails `json:"categories"`
}

// GetAllActivePackages returns active packages ordered by creation time.
func GetAllActivePackages() ([]models.BenefitPackage, error) {
	var packages []models.BenefitPackage
	err := config.DB.Where("is_active = ?", true).Order("created_at ASC").Find(&packages).Error
	return packages, err
}

// GetPackageByCode resolves a package by its unique code.
func GetPackageByCode(packageCode string) (*models.BenefitPackage, error) {
	var pkg models.BenefitPackage
	if err := config.DB.Where("package_code = ?", packageCode).First(&pkg).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("Package not found: "+packageCode, err)
		}
		return nil, err
	}
	return &pkg, nil
}

// GetCategoriesWithDetails loads a package's categories in display order,
// each with its details in display order.
func GetCategoriesWithDetails(packageID uint) ([]CategoryWithDetails, error) {
	var categories []models.BenefitCategory
	if err := config.DB.Where("package_id = ?", packageID).Order("display_order ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	result := make([]CategoryWithDetails, 0, len(categories))
	for _, category := range categories {
		var details []models.BenefitDetail
		if err := config.DB.Where("category_id = ?", category.ID).Order("display_order ASC").Find(&details).Error; err != nil {
			return nil, err
		}
		result = append(result, CategoryWithDetails{Category: category, Details: details})
	}
	return result, nil
}

// GetPackageWithDetails returns a package with its full benefit tree.
func GetPackageWithDetails(packageCode string) (*PackageWithDetails, error) {
	pkg, err := GetPackageByCode(packageCode)
	if err != nil {
		return nil, err
	}

	categories, err := GetCategoriesWithDetails(pkg.ID)
	if err != nil {
		return nil, err
	}

	return &PackageWithDetails{Package: *pkg, Categories: categories}, nil
}

// GetActiveBenefit returns the active assignment row for (user, card
// product), or nil when the user has not selected a package yet.
func GetActiveBenefit(userID, cardProductID uint) (*models.UserCardBenefit, error) {
	var benefit models.UserCardBenefit
	err := config.DB.Where("user_id = ? AND card_product_id = ? AND is_active = ?", userID, cardProductID, true).
		First(&benefit).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &benefit, nil
}

// GetCurrentActivePackage returns the package currently assigned to the
// user for a card product, or nil when none is assigned.
func GetCurrentActivePackage(userID, cardProductID uint) (*models.BenefitPackage, error) {
	benefit, err := GetActiveBenefit(userID, cardProductID)
	if err != nil || benefit == nil {
		return nil, err
	}

	var pkg models.BenefitPackage
	if err := config.DB.First(&pkg, benefit.PackageID).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GetAvailablePackagesForUser returns active packages the user has not
// currently selected for the card product.
func GetAvailablePackagesForUser(userID, cardProductID uint) ([]models.BenefitPackage, error) {
	var packages []models.BenefitPackage
	err := config.DB.Where("is_active = ?", true).
		Where("id NOT IN (?)", config.DB.Model(&models.UserCardBenefit{}).
			Select("package_id").
			Where("user_id = ? AND card_product_id = ? AND is_active = ?", userID, cardProductID, true)).
		Order("created_at ASC").
		Find(&packages).Error
	return packages, err
}

// NextMonthStart returns the first day of the calendar month following t.
// Package changes always take effect at next month's start, never
// immediately.
func NextMonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
}

// ChangeBenefitPackage switches the user's package for a card product:
// deactivate the current selection if present, insert a new selection
// effective on the 1st of next month, and append a history row. The three
// writes commit or roll back together. Returns the committed assignment so
// callers report the effective date that was actually stored.
func ChangeBenefitPackage(userID, cardProductID uint, newPackageCode, changeReason string) (*models.UserCardBenefit, error) {
	LogInfo("Changing benefit package - user: %d, card product: %d, package: %s", userID, cardProductID, newPackageCode)

	newPackage, err := GetPackageByCode(newPackageCode)
	if err != nil {
		return nil, err
	}

	var newBenefit models.UserCardBenefit
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var fromPackageID *uint
		var current models.UserCardBenefit
		err := tx.Where("user_id = ? AND card_product_id = ? AND is_active = ?", userID, cardProductID, true).
			First(&current).Error
		if err == nil {
			packageID := current.PackageID
			fromPackageID = &packageID
			current.Deactivate()
			if err := tx.Save(&current).Error; err != nil {
				return err
			}
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		effectiveDate := NextMonthStart(time.Now())

		newBenefit = models.UserCardBenefit{
			UserID:        userID,
			CardProductID: cardProductID,
			PackageID:     newPackage.ID,
			IsActive:      true,
			EffectiveDate: effectiveDate,
		}
		if err := tx.Create(&newBenefit).Error; err != nil {
			return err
		}

		history := models.NewBenefitChangeHistory(userID, cardProductID, fromPackageID, newPackage.ID, changeReason, effectiveDate)
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		LogInfo("Benefit package changed - user: %d, effective: %s", userID, effectiveDate.Format("2006-01-02"))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &newBenefit, nil
}

// GetBenefitChangeHistory returns the switch ledger for (user, card
// product), newest first.
func GetBenefitChangeHistory(userID, cardProductID uint) ([]models.BenefitChangeHistory, error) {
	var history []models.BenefitChangeHistory
	err := config.DB.Where("user_id = ? AND card_product_id = ?", userID, cardProductID).
		Order("change_date DESC").
		Find(&history).Error
	return history, err
}
