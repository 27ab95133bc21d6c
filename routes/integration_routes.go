package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hanacard-dev/cardbenefits/controllers"
)

// initIntegrationRoutes wires the partner-facing surface. Callers are
// authenticated by requesting-service tag plus group customer token, not
// by user JWT.
func initIntegrationRoutes(api *gin.RouterGroup) {
	integration := api.Group("/integration")
	{
		integration.POST("/hanamoney-info", controllers.GetHanamoneyInfo)
		integration.POST("/hanamoney-earn", controllers.EarnHanamoney)
		integration.POST("/customer-info", controllers.GetCustomerInfo)
		integration.POST("/update-unified-token", controllers.UpdateUnifiedToken)
		integration.GET("/cards/:memberId", controllers.GetCardInfo)
		integration.GET("/cards/:memberId/transactions", controllers.GetCardTransactions)
		integration.GET("/cards/:memberId/consumption/summary", controllers.GetConsumptionSummary)
	}
}
