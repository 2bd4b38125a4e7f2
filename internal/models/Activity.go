package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity is a single recorded ride, supplied by the external fitness
// integration or the ingestion endpoint. Distances are kilometers.
type Activity struct {
	gorm.Model
	UserID        uint      `json:"user_id" gorm:"index"`
	Name          string    `json:"name"`
	DistanceKm    float64   `json:"distance_km"`
	MovingTimeSec int64     `json:"moving_time_sec"`
	StartDate     time.Time `json:"start_date" gorm:"index"`
	AverageSpeed  float64   `json:"average_speed"`
}
