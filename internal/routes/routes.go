package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ride_tracker/internal/middleware"
)

// SetupRouter builds the engine with request logging, recovery and
// metrics, then registers every resource's routes. The caller runs it.
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(ginlogger.SetLogger())
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	AuthRoutes(r)
	UserRoutes(r)
	RouteRoutes(r)
	GroupRoutes(r)
	ChallengeRoutes(r)
	AdminRoutes(r)

	return r
}
