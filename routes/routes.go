package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		initBenefitRoutes(api)
		initIntegrationRoutes(api)
	}

	return router
}
