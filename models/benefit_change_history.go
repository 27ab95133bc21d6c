package models

import (
	"time"
)

// BenefitChangeHistory is an append-only audit row written once per
// package switch and never updated or deleted.
type BenefitChangeHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	CardProductID uint      `json:"card_product_id" gorm:"not null"`
	FromPackageID *uint     `json:"from_package_id"` // nil on first assignment
	ToPackageID   uint      `json:"to_package_id" gorm:"not null"`
	ChangeReason  string    `json:"change_reason" gorm:"size:200"`
	ChangeDate    time.Time `json:"change_date" gorm:"not null"`
	EffectiveDate time.Time `json:"effective_date" gorm:"type:date;not null"`
}

// NewBenefitChangeHistory captures a switch at the current instant.
func NewBenefitChangeHistory(userID, cardProductID uint, fromPackageID *uint, toPackageID uint, reason string, effectiveDate time.Time) BenefitChangeHistory {
	return BenefitChangeHistory{
		UserID:        userID,
		CardProductID: cardProductID,
		FromPackageID: fromPackageID,
		ToPackageID:   toPackageID,
		ChangeReason:  reason,
		ChangeDate:    time.Now(),
		EffectiveDate: effectiveDate,
	}
}
