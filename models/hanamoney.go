package models

import (
	"time"

	"gorm.io/gorm"
)

// HanamoneyMembership tracks a user's hana-money loyalty balance.
// Balance is reconciled against the green world partner system; the local
// row is the source of truth.
type HanamoneyMembership struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	MembershipID    string         `json:"membership_id" gorm:"size:36;uniqueIndex;not null"`
	MembershipLevel string         `json:"membership_level" gorm:"size:20;default:BASIC"`
	Balance         int64          `json:"balance" gorm:"not null;default:0"`
	TotalEarned     int64          `json:"total_earned" gorm:"not null;default:0"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// Earn adds points to the balance and the lifetime total.
func (m *HanamoneyMembership) Earn(amount int64) {
	m.Balance += amount
	m.TotalEarned += amount
	m.UpdatedAt = time.Now()
}

// Spend deducts points. Callers must check sufficiency first.
func (m *HanamoneyMembership) Spend(amount int64) {
	m.Balance -= amount
	m.UpdatedAt = time.Now()
}

// HanamoneyTransaction is one ledger entry recording the balance after
// the adjustment was applied.
type HanamoneyTransaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MembershipID uint      `json:"membership_id" gorm:"index;not null"`
	Amount       int64     `json:"amount" gorm:"not null"`
	BalanceAfter int64     `json:"balance_after" gorm:"not null"`
	Type         string    `json:"type" gorm:"size:10;not null"` // EARN, SPEND
	Description  string    `json:"description" gorm:"size:200"`
	CreatedAt    time.Time `json:"created_at"`
}

// Hanamoney transaction types
const (
	HanamoneyTransactionEarn  = "EARN"
	HanamoneyTransactionSpend = "SPEND"
)

// Membership levels
const (
	MembershipLevelBasic = "BASIC"
	MembershipLevelGold  = "GOLD"
)
