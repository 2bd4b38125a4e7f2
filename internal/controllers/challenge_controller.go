package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ride_tracker/internal/services"
)

// GetChallenge returns a challenge with viewer-dependent aggregation; the
// authenticated user is the viewer.
func GetChallenge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}
	viewer := authUserID(c)

	view, err := challengeService.GetChallengeByID(id, &viewer)
	if err != nil {
		logrus.WithError(err).Error("GetChallenge failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenge": view})
}

// GetMyChallenges lists the authenticated user's challenges.
func GetMyChallenges(c *gin.Context) {
	views, err := challengeService.GetUserChallenges(authUserID(c))
	if err != nil {
		logrus.WithError(err).Error("GetMyChallenges failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenges": views})
}

// GetGroupChallenges lists the challenges a group is enrolled in.
func GetGroupChallenges(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	views, err := challengeService.GetGroupChallenges(groupID)
	if err != nil {
		logrus.WithError(err).Error("GetGroupChallenges failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenges": views})
}

func CreateChallenge(c *gin.Context) {
	var input services.CreateChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	view, err := challengeService.CreateChallenge(authUserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can create challenges"})
		case errors.Is(err, services.ErrInvalidOperation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Group and inter-group challenges need at least one group"})
		default:
			logrus.WithError(err).Error("CreateChallenge failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"challenge": view})
}

func UpdateChallenge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	var input services.UpdateChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := challengeService.UpdateChallenge(id, authUserID(c), input)
	if err != nil {
		logrus.WithError(err).Error("UpdateChallenge failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found or not the creator"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenge": view})
}

func DeleteChallenge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	deleted, err := challengeService.DeleteChallenge(id, authUserID(c))
	if err != nil {
		logrus.WithError(err).Error("DeleteChallenge failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found or not the creator"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Challenge deleted"})
}

func JoinChallenge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	joined, err := challengeService.JoinChallenge(id, authUserID(c))
	if err != nil {
		logrus.WithError(err).Error("JoinChallenge failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !joined {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to join challenge"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Joined challenge"})
}

func LeaveChallenge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	left, err := challengeService.LeaveChallenge(id, authUserID(c))
	if err != nil {
		logrus.WithError(err).Error("LeaveChallenge failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !left {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to leave challenge"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left challenge"})
}

func GetChallengeLeaderboard(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}
	viewer := authUserID(c)

	board, err := challengeService.GetChallengeLeaderboard(id, &viewer)
	if err != nil {
		logrus.WithError(err).Error("GetChallengeLeaderboard failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": board})
}

func GetInterGroupLeaderboard(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	board, err := challengeService.GetInterGroupLeaderboard(id)
	if err != nil {
		logrus.WithError(err).Error("GetInterGroupLeaderboard failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": board})
}

// GetMyChallengeProgress returns the authenticated user's standing in one
// challenge, rank included.
func GetMyChallengeProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	view, err := challengeService.GetUserChallengeProgress(id, authUserID(c))
	if err != nil {
		logrus.WithError(err).Error("GetMyChallengeProgress failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No progress for this challenge"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": view})
}

// GetGroupChallengeProgress returns the aggregate group standing.
func GetGroupChallengeProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}
	viewer := authUserID(c)

	view, err := challengeService.GetGroupChallengeProgress(id, &viewer)
	if err != nil {
		logrus.WithError(err).Error("GetGroupChallengeProgress failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not a group or inter-group challenge"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": view})
}

// RefreshMyChallengeProgress recomputes the caller's progress row now
// instead of waiting for the next sweep.
func RefreshMyChallengeProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}
	userID := authUserID(c)

	if err := challengeService.UpdateChallengeProgress(id, userID); err != nil {
		logrus.WithError(err).Error("RefreshMyChallengeProgress failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	view, err := challengeService.GetUserChallengeProgress(id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No progress for this challenge"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": view})
}
