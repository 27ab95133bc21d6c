package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a card customer
type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Username           string         `json:"username" gorm:"uniqueIndex;not null"`
	Email              string         `json:"email" gorm:"uniqueIndex;not null"`
	PhoneNumber        string         `json:"phone_number" gorm:"uniqueIndex;not null"`
	Name               string         `json:"name" gorm:"not null"`
	BirthDate          string         `json:"birth_date"`
	Address            string         `json:"address"`
	CustomerGrade      string         `json:"customer_grade"`
	IsActive           bool           `json:"is_active" gorm:"default:true"`
	GroupCustomerToken string         `json:"-" gorm:"uniqueIndex"` // unified token shared across group services
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
