package routes

import (
	"github.com/gin-gonic/gin"

	"ride_tracker/internal/controllers"
	"ride_tracker/internal/middleware"
)

func ChallengeRoutes(r *gin.Engine) {
	challenges := r.Group("/challenges")
	challenges.Use(middleware.RequireAuth())
	{
		challenges.GET("/mine", controllers.GetMyChallenges)
		challenges.POST("", controllers.CreateChallenge)
		challenges.GET("/:id", controllers.GetChallenge)
		challenges.PUT("/:id", controllers.UpdateChallenge)
		challenges.DELETE("/:id", controllers.DeleteChallenge)
		challenges.POST("/:id/join", controllers.JoinChallenge)
		challenges.POST("/:id/leave", controllers.LeaveChallenge)
		challenges.GET("/:id/leaderboard", controllers.GetChallengeLeaderboard)
		challenges.GET("/:id/leaderboard/groups", controllers.GetInterGroupLeaderboard)
		challenges.GET("/:id/progress", controllers.GetMyChallengeProgress)
		challenges.GET("/:id/progress/group", controllers.GetGroupChallengeProgress)
		challenges.POST("/:id/progress/refresh", controllers.RefreshMyChallengeProgress)
	}
}
