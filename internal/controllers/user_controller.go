package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ride_tracker/internal/models"
)

// GetMe returns the authenticated user's profile.
func GetMe(c *gin.Context) {
	userID := authUserID(c)

	user, err := userService.GetUser(userID)
	if err != nil {
		logrus.WithError(err).Error("GetMe failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetMyProgress returns the user's overall route standing from the last
// sync sweep.
func GetMyProgress(c *gin.Context) {
	userID := authUserID(c)

	progress, err := userService.GetUserProgress(userID)
	if err != nil {
		logrus.WithError(err).Error("GetMyProgress failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if progress == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No progress recorded yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

type addActivityInput struct {
	Name string `json:"name"`
	// Meters, matching the fitness-API payloads this endpoint stands in for.
	DistanceMeters float64   `json:"distance_meters" binding:"required,gt=0"`
	MovingTimeSec  int64     `json:"moving_time_sec" binding:"required,gt=0"`
	StartDate      time.Time `json:"start_date" binding:"required"`
}

// AddActivity ingests a manually recorded ride for the authenticated user.
func AddActivity(c *gin.Context) {
	userID := authUserID(c)

	var input addActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	distanceKm := input.DistanceMeters / 1000.0
	activity := models.Activity{
		UserID:        userID,
		Name:          input.Name,
		DistanceKm:    distanceKm,
		MovingTimeSec: input.MovingTimeSec,
		StartDate:     input.StartDate.UTC(),
	}
	if input.MovingTimeSec > 0 {
		activity.AverageSpeed = distanceKm / (float64(input.MovingTimeSec) / 3600.0)
	}

	stored, err := userService.AddActivity(activity)
	if err != nil {
		logrus.WithError(err).Error("AddActivity failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Activity ingestion failed: " + err.Error()})
		return
	}

	// Recompute every challenge the rider participates in so rankings
	// reflect the new ride immediately.
	if err := syncService.RefreshUserChallenges(userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("AddActivity: challenge refresh failed")
	}

	c.JSON(http.StatusCreated, gin.H{"activity": stored})
}

// ListMyActivities returns the authenticated user's rides, newest first.
func ListMyActivities(c *gin.Context) {
	userID := authUserID(c)

	activities, err := userService.ListActivities(userID)
	if err != nil {
		logrus.WithError(err).Error("ListMyActivities failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}
