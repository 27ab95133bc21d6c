package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CardProduct is a card product sold by the issuer, e.g. the green life
// credit card. Reference data for the integration surface.
type CardProduct struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProductName string         `json:"product_name" gorm:"size:100;not null"`
	ProductType string         `json:"product_type" gorm:"size:20"` // CREDIT, DEBIT
	CreditLimit int64          `json:"credit_limit"`
	AnnualFee   int64          `json:"annual_fee"`
	ImageURL    string         `json:"image_url" gorm:"size:255"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserCard is a card issued to a user.
type UserCard struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `json:"user_id" gorm:"index;not null"`
	CardProductID    uint      `json:"card_product_id" gorm:"not null"`
	CardNumberMasked string    `json:"card_number_masked" gorm:"size:25"`
	ExpiryDate       time.Time `json:"expiry_date" gorm:"type:date"`
	IsActive         bool      `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CardTransaction is a card purchase with its cashback outcome. The
// optional benefit references record which catalog entry produced the
// cashback.
type CardTransaction struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	UserCardID        uint            `json:"user_card_id" gorm:"index;not null"`
	TransactionDate   time.Time       `json:"transaction_date" gorm:"not null"`
	MerchantName      string          `json:"merchant_name" gorm:"size:100"`
	MerchantCategory  string          `json:"merchant_category" gorm:"size:50"`
	Category          string          `json:"category" gorm:"size:50"`
	Amount            int64           `json:"amount" gorm:"not null"`
	CashbackAmount    int64           `json:"cashback_amount"`
	CashbackRate      decimal.Decimal `json:"cashback_rate" gorm:"type:decimal(5,2)"`
	Description       string          `json:"description" gorm:"size:200"`
	BenefitCategoryID *uint           `json:"benefit_category_id"`
	BenefitDetailID   *uint           `json:"benefit_detail_id"`
	CreatedAt         time.Time       `json:"created_at"`
}
