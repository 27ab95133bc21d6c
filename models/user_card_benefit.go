package models

import (
	"time"
)

// UserCardBenefit is one (user, card product) package assignment interval.
// At most one row may be active per (user, card product); the partial
// unique index enforcing that is created in config.InitDB since GORM tags
// cannot express it. Rows are deactivated when superseded, never deleted.
type UserCardBenefit struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `json:"user_id" gorm:"index:idx_user_card_benefit,priority:1;not null"`
	CardProductID uint       `json:"card_product_id" gorm:"index:idx_user_card_benefit,priority:2;not null"`
	PackageID     uint       `json:"package_id" gorm:"not null"`
	IsActive      bool       `json:"is_active" gorm:"not null;default:true"`
	EffectiveDate time.Time  `json:"effective_date" gorm:"type:date;not null"`
	ExpiryDate    *time.Time `json:"expiry_date" gorm:"type:date"` // nil = unbounded
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Deactivate flips the active flag without touching the date fields.
func (b *UserCardBenefit) Deactivate() {
	b.IsActive = false
	b.UpdatedAt = time.Now()
}

// IsCurrentlyActive reports whether the assignment is in force today:
// the active flag is set and today falls within [EffectiveDate, ExpiryDate],
// open-ended when a bound is missing.
func (b *UserCardBenefit) IsCurrentlyActive() bool {
	today := truncateToDate(time.Now())
	if !b.IsActive {
		return false
	}
	if !b.EffectiveDate.IsZero() && truncateToDate(b.EffectiveDate).After(today) {
		return false
	}
	if b.ExpiryDate != nil && truncateToDate(*b.ExpiryDate).Before(today) {
		return false
	}
	return true
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
