package utils

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hanacard-dev/cardbenefits/config"
	"github.com/hanacard-dev/cardbenefits/models"
	"gorm.io/gorm"
)

// GetOrCreateMembership retrieves the user's hana-money membership,
// creating a zero-balance one with a generated membership id if absent.
func GetOrCreateMembership(userID uint) (*models.HanamoneyMembership, error) {
	var membership models.HanamoneyMembership
	if err := config.DB.Where("user_id = ?", userID).First(&membership).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			membership = models.HanamoneyMembership{
				UserID:          userID,
				MembershipID:    uuid.New().String(),
				MembershipLevel: models.MembershipLevelBasic,
				Balance:         0,
				IsActive:        true,
			}
			if err := config.DB.Create(&membership).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return &membership, nil
}

// CreateHanamoneyTransaction appends a ledger row recording the balance
// after the adjustment.
func CreateHanamoneyTransaction(membershipID uint, amount, balanceAfter int64, transactionType, description string) (*models.HanamoneyTransaction, error) {
	transaction := models.HanamoneyTransaction{
		MembershipID: membershipID,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Type:         transactionType,
		Description:  description,
	}

	if err := config.DB.Create(&transaction).Error; err != nil {
		return nil, err
	}

	return &transaction, nil
}

// EarnHanamoney credits points to the user's membership and records the
// transaction, under one transaction boundary.
func EarnHanamoney(userID uint, amount int64, description string) (*models.HanamoneyMembership, error) {
	if amount <= 0 {
		return nil, BadRequestError("Earn amount must be positive", nil)
	}

	membership, err := GetOrCreateMembership(userID)
	if err != nil {
		return nil, err
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		membership.Earn(amount)
		if err := tx.Save(membership).Error; err != nil {
			return err
		}
		transaction := models.HanamoneyTransaction{
			MembershipID: membership.ID,
			Amount:       amount,
			BalanceAfter: membership.Balance,
			Type:         models.HanamoneyTransactionEarn,
			Description:  description,
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}

// SpendHanamoney debits points from the user's membership and records the
// transaction. Fails when the balance is insufficient.
func SpendHanamoney(userID uint, amount int64, description string) (*models.HanamoneyMembership, error) {
	if amount <= 0 {
		return nil, BadRequestError("Spend amount must be positive", nil)
	}

	membership, err := GetOrCreateMembership(userID)
	if err != nil {
		return nil, err
	}
	if membership.Balance < amount {
		return nil, BadRequestError(fmt.Sprintf("Insufficient hana-money balance: %d < %d", membership.Balance, amount), nil)
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		membership.Spend(amount)
		if err := tx.Save(membership).Error; err != nil {
			return err
		}
		transaction := models.HanamoneyTransaction{
			MembershipID: membership.ID,
			Amount:       amount,
			BalanceAfter: membership.Balance,
			Type:         models.HanamoneyTransactionSpend,
			Description:  description,
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}

// GetHanamoneyTransactions returns the user's ledger, newest first.
func GetHanamoneyTransactions(userID uint, limit, offset int) ([]models.HanamoneyTransaction, int64, error) {
	membership, err := GetOrCreateMembership(userID)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := config.DB.Model(&models.HanamoneyTransaction{}).Where("membership_id = ?", membership.ID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.HanamoneyTransaction
	err = config.DB.Where("membership_id = ?", membership.ID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&transactions).Error
	return transactions, total, err
}
