package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures and returns the Gin router.
func SetupRouter(balanceHandler *BalanceHandler) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/balances", balanceHandler.GetAllBalancesHandler)
		v1.GET("/balances/change", balanceHandler.GetAllBalancesChangeHandler)
		v1.GET("/groups/:groupId/balance", balanceHandler.GetGroupBalanceHandler)
		v1.GET("/groups/:groupId/balance/change", balanceHandler.GetGroupBalanceChangeHandler)
	}

	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
