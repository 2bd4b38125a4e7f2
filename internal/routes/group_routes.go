package routes

import (
	"github.com/gin-gonic/gin"

	"ride_tracker/internal/controllers"
	"ride_tracker/internal/middleware"
)

func GroupRoutes(r *gin.Engine) {
	groups := r.Group("/groups")
	groups.Use(middleware.RequireAuth())
	{
		groups.GET("", controllers.ListGroups)
		groups.GET("/mine", controllers.GetMyGroups)
		groups.POST("", controllers.CreateGroup)
		groups.GET("/:id", controllers.GetGroup)
		groups.PUT("/:id", controllers.UpdateGroup)
		groups.DELETE("/:id", controllers.DeleteGroup)
		groups.POST("/:id/members", controllers.AddGroupMember)
		groups.DELETE("/:id/members/:userId", controllers.RemoveGroupMember)
		groups.POST("/:id/leave", controllers.LeaveGroup)
		groups.GET("/:id/challenges", controllers.GetGroupChallenges)
	}
}
