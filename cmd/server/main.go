package main

import (
	"log"
	"net/http"

	"ride_tracker/internal/config"
	"ride_tracker/internal/controllers"
	"ride_tracker/internal/logger"
	"ride_tracker/internal/metrics"
	"ride_tracker/internal/middleware"
	"ride_tracker/internal/routes"
	"ride_tracker/internal/scheduler"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	metrics.Init()
	controllers.Setup(config.DB, config.RouteFallbackLengthKm(), nil)

	// Periodic sync sweeps
	sched := scheduler.New(controllers.SyncService())
	if err := sched.Start(config.SyncCronSpec()); err != nil {
		log.Fatalf("scheduler start failed: %v", err)
	}
	defer sched.Stop()

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := config.ListenAddr()
	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
