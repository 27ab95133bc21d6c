package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BenefitDetail is a leaf benefit line-item within a category, carrying
// the numeric cashback rate applied to a merchant category.
type BenefitDetail struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	CategoryID         uint            `json:"category_id" gorm:"index;not null;constraint:OnDelete:CASCADE"`
	BenefitName        string          `json:"benefit_name" gorm:"size:100;not null"`
	BenefitDescription string          `json:"benefit_description" gorm:"type:text"`
	CashbackRate       decimal.Decimal `json:"cashback_rate" gorm:"type:decimal(5,2);not null"`
	MerchantCategory   string          `json:"merchant_category" gorm:"size:50"` // EV_CHARGING, PUBLIC_TRANSPORT, ...
	BenefitIcon        string          `json:"benefit_icon" gorm:"size:100"`
	DisplayOrder       int             `json:"display_order" gorm:"default:0"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
