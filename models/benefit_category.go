package models

import (
	"time"
)

// BenefitCategory is an intermediate grouping inside a benefit package,
// e.g. EV charging or public transport. It references its package by id;
// category lifetime is bounded by package lifetime.
type BenefitCategory struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	PackageID           uint      `json:"package_id" gorm:"index;not null;constraint:OnDelete:CASCADE"`
	CategoryName        string    `json:"category_name" gorm:"size:100;not null"`
	CategoryDescription string    `json:"category_description"`
	CashbackRate        string    `json:"cashback_rate" gorm:"size:20"` // display label, e.g. "3%"
	CategoryIcon        string    `json:"category_icon" gorm:"size:100"`
	DisplayOrder        int       `json:"display_order" gorm:"default:0"`
	IsActive            bool      `json:"is_active" gorm:"default:true"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
