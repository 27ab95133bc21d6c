package config

import (
	"fmt"

	"github.com/hanacard-dev/cardbenefits/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes the database connection and performs migrations
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	if err := MigrateSchema(DB); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}

	ensureActiveBenefitConstraint()
}

// MigrateSchema auto-migrates all entities. Split out so tests can run it
// against their own database handle.
func MigrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.CardProduct{},
		&models.UserCard{},
		&models.CardTransaction{},
		&models.BenefitPackage{},
		&models.BenefitCategory{},
		&models.BenefitDetail{},
		&models.UserCardBenefit{},
		&models.BenefitChangeHistory{},
		&models.HanamoneyMembership{},
		&models.HanamoneyTransaction{},
	)
}

// ensureActiveBenefitConstraint creates the partial unique index backing
// the at-most-one-active-selection invariant. AutoMigrate cannot express
// a WHERE clause on an index, so it is created with raw SQL.
func ensureActiveBenefitConstraint() {
	var indexExists bool
	err := DB.Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM pg_indexes
			WHERE tablename = 'user_card_benefits'
			AND indexname = 'uniq_active_user_card_benefit'
		)
	`).Scan(&indexExists).Error
	if err != nil {
		panic(fmt.Sprintf("Failed to check benefit index existence: %v", err))
	}

	if !indexExists {
		err = DB.Exec(`
			CREATE UNIQUE INDEX uniq_active_user_card_benefit
			ON user_card_benefits (user_id, card_product_id)
			WHERE is_active
		`).Error
		if err != nil {
			panic(fmt.Sprintf("Failed to create benefit index: %v", err))
		}
	}
}
