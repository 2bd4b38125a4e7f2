package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TriggerFullSync runs the full user sweep on demand (admin only). The
// scheduler runs the same sweep periodically.
func TriggerFullSync(c *gin.Context) {
	if err := syncService.SyncAllUsers(); err != nil {
		logrus.WithError(err).Error("TriggerFullSync failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Full sync complete"})
}

// TriggerUserSync synchronizes one user on demand (admin only).
func TriggerUserSync(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := syncService.SyncUser(id); err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("TriggerUserSync failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User sync complete"})
}

// TriggerGroupChallengeSync refreshes all members of one group challenge.
func TriggerGroupChallengeSync(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	if err := syncService.SyncGroupChallenge(id); err != nil {
		logrus.WithError(err).WithField("challenge_id", id).Error("TriggerGroupChallengeSync failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group challenge sync complete"})
}

// TriggerInterGroupChallengeSync refreshes all members across the groups
// of one inter-group challenge.
func TriggerInterGroupChallengeSync(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	if err := syncService.SyncInterGroupChallenge(id); err != nil {
		logrus.WithError(err).WithField("challenge_id", id).Error("TriggerInterGroupChallengeSync failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inter-group challenge sync complete"})
}
