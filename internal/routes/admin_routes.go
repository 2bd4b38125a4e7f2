package routes

import (
	"github.com/gin-gonic/gin"

	"ride_tracker/internal/controllers"
	"ride_tracker/internal/middleware"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/routes", controllers.RegenerateRoute)
		admin.PUT("/routes/:id", controllers.RegenerateRoute)
		admin.POST("/sync", controllers.TriggerFullSync)
		admin.POST("/sync/users/:id", controllers.TriggerUserSync)
		admin.POST("/sync/challenges/group/:id", controllers.TriggerGroupChallengeSync)
		admin.POST("/sync/challenges/inter-group/:id", controllers.TriggerInterGroupChallengeSync)
	}
}
