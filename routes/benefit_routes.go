package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hanacard-dev/cardbenefits/controllers"
	"github.com/hanacard-dev/cardbenefits/middleware"
)

// initBenefitRoutes wires the user-facing benefit and hana-money surface.
// Catalog reads are public; user-scoped routes require a valid token.
func initBenefitRoutes(api *gin.RouterGroup) {
	benefits := api.Group("/card-benefits")
	{
		benefits.GET("/packages", controllers.GetAllPackages)
		benefits.GET("/packages/:packageCode", controllers.GetPackageDetails)
		benefits.GET("/packages/code/:packageCode", controllers.GetPackageByCode)

		user := benefits.Group("/me")
		user.Use(middleware.AuthMiddleware())
		{
			user.GET("/current", controllers.GetCurrentPackage)
			user.GET("/available", controllers.GetAvailablePackages)
			user.GET("/packages", controllers.GetBenefitPackagesForUser)
			user.POST("/change", controllers.ChangeBenefitPackage)
			user.GET("/history", controllers.GetBenefitChangeHistory)
			user.GET("/history/export", controllers.DownloadChangeHistoryExcel)
		}
	}

	hanamoney := api.Group("/hanamoney")
	hanamoney.Use(middleware.AuthMiddleware())
	{
		hanamoney.GET("/balance", controllers.GetHanamoneyBalance)
		hanamoney.GET("/transactions", controllers.GetHanamoneyTransactions)
		hanamoney.POST("/sync", controllers.SyncHanamoney)
		hanamoney.GET("/statement", controllers.DownloadHanamoneyStatementPDF)
	}
}
