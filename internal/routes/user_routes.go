package routes

import (
	"github.com/gin-gonic/gin"

	"ride_tracker/internal/controllers"
	"ride_tracker/internal/middleware"
)

func UserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	users.Use(middleware.RequireAuth())
	{
		users.GET("/me", controllers.GetMe)
		users.GET("/me/progress", controllers.GetMyProgress)
		users.GET("/me/activities", controllers.ListMyActivities)
		users.POST("/me/activities", controllers.AddActivity)
	}
}
