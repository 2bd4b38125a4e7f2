package routes

import (
	"github.com/gin-gonic/gin"

	"ride_tracker/internal/controllers"
	"ride_tracker/internal/middleware"
)

func RouteRoutes(r *gin.Engine) {
	rt := r.Group("/routes")
	rt.Use(middleware.RequireAuth())
	{
		rt.GET("", controllers.ListRoutes)
		rt.GET("/points", controllers.GetRoutePoints)
		rt.GET("/length", controllers.GetRouteLength)
		rt.GET("/position/at-distance", controllers.GetCoordinateAtDistance)
		rt.GET("/position/at-progress", controllers.GetCoordinateAtProgress)
		rt.GET("/:id", controllers.GetRoute)
	}
}
