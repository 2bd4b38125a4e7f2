package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ride_tracker/internal/services"
)

var (
	routeService     *services.RouteService
	challengeService *services.ChallengeService
	groupService     *services.GroupService
	syncService      *services.SyncService
	userService      *services.UserService
)

// Setup wires the controller package to its services. Called once at boot.
func Setup(db *gorm.DB, fallbackKm float64, source services.ActivitySource) {
	routeService = services.NewRouteService(db, fallbackKm)
	challengeService = services.NewChallengeService(db, routeService)
	groupService = services.NewGroupService(db)
	syncService = services.NewSyncService(db, routeService, challengeService, source)
	userService = services.NewUserService(db)
}

// SyncService exposes the wired sync service for the scheduler.
func SyncService() *services.SyncService {
	return syncService
}

func authUserID(c *gin.Context) uint {
	return uint(c.MustGet("user_id").(float64))
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
