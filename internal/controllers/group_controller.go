package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ride_tracker/internal/models"
	"ride_tracker/internal/services"
)

func CreateGroup(c *gin.Context) {
	var input services.CreateGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	view, err := groupService.CreateGroup(authUserID(c), input)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can create groups"})
			return
		}
		logrus.WithError(err).Error("CreateGroup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"group": view})
}

func GetGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	view, err := groupService.GetGroupByID(id)
	if err != nil {
		logrus.WithError(err).Error("GetGroup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": view})
}

func ListGroups(c *gin.Context) {
	views, err := groupService.GetAllGroups()
	if err != nil {
		logrus.WithError(err).Error("ListGroups failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": views})
}

func GetMyGroups(c *gin.Context) {
	views, err := groupService.GetUserGroups(authUserID(c))
	if err != nil {
		logrus.WithError(err).Error("GetMyGroups failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": views})
}

func UpdateGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var input services.UpdateGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := groupService.UpdateGroup(id, authUserID(c), input)
	if err != nil {
		logrus.WithError(err).Error("UpdateGroup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found or not an admin"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": view})
}

func DeleteGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	deleted, err := groupService.DeleteGroup(id, authUserID(c))
	if err != nil {
		logrus.WithError(err).Error("DeleteGroup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found or not the creator"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
}

type addMemberInput struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}

func AddGroupMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var input addMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Role == "" {
		input.Role = models.RoleMember
	}

	added, err := groupService.AddMember(id, authUserID(c), input.UserID, input.Role)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only group admins can add members"})
			return
		}
		logrus.WithError(err).Error("AddGroupMember failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !added {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already a member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member added"})
}

func RemoveGroupMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	removed, err := groupService.RemoveMember(id, authUserID(c), userID)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only group admins can remove members"})
			return
		}
		logrus.WithError(err).Error("RemoveGroupMember failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !removed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to remove member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

func LeaveGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	left, err := groupService.LeaveGroup(id, authUserID(c))
	if err != nil {
		logrus.WithError(err).Error("LeaveGroup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !left {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to leave group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left group"})
}
