package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BenefitPackage is a named bundle of cashback benefit categories a user
// can subscribe to for a card product. Seeded once at startup and treated
// as read-only reference data afterwards.
type BenefitPackage struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	PackageCode        string          `json:"package_code" gorm:"size:50;uniqueIndex;not null"` // ALL_GREEN_LIFE, GREEN_MOBILITY, ZERO_WASTE_LIFE
	PackageName        string          `json:"package_name" gorm:"size:100;not null"`
	PackageDescription string          `json:"package_description" gorm:"type:text"`
	PackageIcon        string          `json:"package_icon" gorm:"size:100"`
	MaxCashbackRate    decimal.Decimal `json:"max_cashback_rate" gorm:"type:decimal(5,2)"`
	IsActive           bool            `json:"is_active" gorm:"not null;default:true"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Package codes seeded by the benefit data initializer
const (
	PackageCodeAllGreenLife  = "ALL_GREEN_LIFE"
	PackageCodeGreenMobility = "GREEN_MOBILITY"
	PackageCodeZeroWasteLife = "ZERO_WASTE_LIFE"
)
