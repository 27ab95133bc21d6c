package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/hanacard-dev/cardbenefits/utils"
)

// GetAllPackages returns all active benefit packages
func GetAllPackages(c *gin.Context) {
	utils.LogInfo("GetAllPackages called")

	packages, err := utils.GetAllActivePackages()
	if err != nil {
		utils.LogError("Failed to load benefit packages: %v", err)
		utils.InternalServerError(c, "Failed to load benefit packages", nil)
		return
	}

	utils.Success(c, "Benefit packages retrieved successfully", gin.H{
		"packages": packages,
	})
}

// GetPackageDetails returns one package with its category and detail tree
func GetPackageDetails(c *gin.Context) {
	packageCode := c.Param("packageCode")
	utils.LogInfo("GetPackageDetails called for package: %s", packageCode)

	details, err := utils.GetPackageWithDetails(packageCode)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to load package details")
		return
	}

	utils.Success(c, "Package details retrieved successfully", details)
}

// GetPackageByCode returns the bare package record for a code
func GetPackageByCode(c *gin.Context) {
	packageCode := c.Param("packageCode")
	utils.LogInfo("GetPackageByCode called for package: %s", packageCode)

	pkg, err := utils.GetPackageByCode(packageCode)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to load package")
		return
	}

	utils.Success(c, "Package retrieved successfully", pkg)
}
