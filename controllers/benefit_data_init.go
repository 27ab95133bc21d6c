package controllers

import (
	"github.com/hanacard-dev/cardbenefits/config"
	"github.com/hanacard-dev/cardbenefits/models"
	"github.com/hanacard-dev/cardbenefits/utils"
	"github.com/shopspring/decimal"
)

// InitializeBenefitData seeds the benefit catalog at startup. Idempotent:
// it runs only when the package table is empty and never merges into
// existing rows.
func InitializeBenefitData() error {
	var count int64
	if err := config.DB.Model(&models.BenefitPackage{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		utils.LogInfo("Benefit catalog already present, skipping initialization")
		return nil
	}

	utils.LogInfo("Initializing benefit catalog...")

	rate := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}

	packages := []models.BenefitPackage{
		{
			PackageCode:        models.PackageCodeAllGreenLife,
			PackageName:        "All-in-one Green Life Cashback",
			PackageDescription: "Comprehensive green-living benefits: up to 4% cashback on EV charging, public transport and shared mobility.",
			PackageIcon:        "hanaIcon3d_17.png",
			MaxCashbackRate:    rate("4.00"),
			IsActive:           true,
		},
		{
			PackageCode:        models.PackageCodeGreenMobility,
			PackageName:        "Green Mobility Cashback",
			PackageDescription: "Special benefits for eco-friendly transportation.",
			PackageIcon:        "hanaIcon3d_65.png",
			MaxCashbackRate:    rate("3.00"),
			IsActive:           true,
		},
		{
			PackageCode:        models.PackageCodeZeroWasteLife,
			PackageName:        "Zero Waste Life Cashback",
			PackageDescription: "Benefits at refill shops and package-free stores for a zero-waste lifestyle.",
			PackageIcon:        "hanaIcon3d_69.png",
			MaxCashbackRate:    rate("3.00"),
			IsActive:           true,
		},
	}
	if err := config.DB.Create(&packages).Error; err != nil {
		return err
	}
	allGreenLife, greenMobility, zeroWaste := packages[0], packages[1], packages[2]

	categories := []models.BenefitCategory{
		{PackageID: allGreenLife.ID, CategoryName: "EV Charging", CategoryDescription: "Benefits at slow and fast charging stations", CashbackRate: "3%", CategoryIcon: "hanaIcon3d_65.png", DisplayOrder: 1, IsActive: true},
		{PackageID: allGreenLife.ID, CategoryName: "Public Transport", CategoryDescription: "Benefits on subway and bus fares", CashbackRate: "2%", CategoryIcon: "hanaIcon3d_67.png", DisplayOrder: 2, IsActive: true},
		{PackageID: allGreenLife.ID, CategoryName: "Shared Mobility", CategoryDescription: "Benefits on shared kickboards and bike share", CashbackRate: "4%", CategoryIcon: "hanaIcon3d_69.png", DisplayOrder: 3, IsActive: true},
		{PackageID: greenMobility.ID, CategoryName: "Public Bikes", CategoryDescription: "Benefits on public bike rentals", CashbackRate: "3%", CategoryIcon: "hanaIcon3d_67.png", DisplayOrder: 1, IsActive: true},
		{PackageID: greenMobility.ID, CategoryName: "Electric Scooters", CategoryDescription: "Benefits on electric scooter rides", CashbackRate: "2%", CategoryIcon: "hanaIcon3d_69.png", DisplayOrder: 2, IsActive: true},
		{PackageID: zeroWaste.ID, CategoryName: "Refill Stations", CategoryDescription: "Benefits at refill shops and eco brands", CashbackRate: "3%", CategoryIcon: "hanaIcon3d_17.png", DisplayOrder: 1, IsActive: true},
		{PackageID: zeroWaste.ID, CategoryName: "Eco Brands", CategoryDescription: "Benefits at eco-friendly product stores", CashbackRate: "2%", CategoryIcon: "hanaIcon3d_65.png", DisplayOrder: 2, IsActive: true},
	}
	if err := config.DB.Create(&categories).Error; err != nil {
		return err
	}

	details := []models.BenefitDetail{
		{CategoryID: categories[0].ID, BenefitName: "EV Charging", BenefitDescription: "Slow and fast charging stations", CashbackRate: rate("3.00"), MerchantCategory: "EV_CHARGING", BenefitIcon: "hanaIcon3d_65.png", DisplayOrder: 1},
		{CategoryID: categories[1].ID, BenefitName: "Public Transport", BenefitDescription: "Subway and bus", CashbackRate: rate("2.00"), MerchantCategory: "PUBLIC_TRANSPORT", BenefitIcon: "hanaIcon3d_67.png", DisplayOrder: 1},
		{CategoryID: categories[2].ID, BenefitName: "Shared Kickboards and Bike Share", BenefitDescription: "Shared mobility", CashbackRate: rate("4.00"), MerchantCategory: "SHARED_MOBILITY", BenefitIcon: "hanaIcon3d_69.png", DisplayOrder: 1},
		{CategoryID: categories[3].ID, BenefitName: "Public Bikes", BenefitDescription: "Public bike rentals", CashbackRate: rate("3.00"), MerchantCategory: "PUBLIC_BIKE", BenefitIcon: "hanaIcon3d_67.png", DisplayOrder: 1},
		{CategoryID: categories[4].ID, BenefitName: "Electric Scooters", BenefitDescription: "Electric scooter rides", CashbackRate: rate("2.00"), MerchantCategory: "ELECTRIC_SCOOTER", BenefitIcon: "hanaIcon3d_69.png", DisplayOrder: 1},
		{CategoryID: categories[5].ID, BenefitName: "Refill Stations", BenefitDescription: "Refill shops and eco brands", CashbackRate: rate("3.00"), MerchantCategory: "REFILL_STATION", BenefitIcon: "hanaIcon3d_17.png", DisplayOrder: 1},
		{CategoryID: categories[6].ID, BenefitName: "Eco Brands", BenefitDescription: "Eco-friendly product stores", CashbackRate: rate("2.00"), MerchantCategory: "ECO_BRAND", BenefitIcon: "hanaIcon3d_65.png", DisplayOrder: 1},
	}
	if err := config.DB.Create(&details).Error; err != nil {
		return err
	}

	utils.LogInfo("Benefit catalog initialized: %d packages, %d categories, %d details",
		len(packages), len(categories), len(details))
	return nil
}
