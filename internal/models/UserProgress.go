package models

import (
	"gorm.io/gorm"
)

// UserProgress is a user's overall position along the default route,
// derived from lifetime distance.
type UserProgress struct {
	gorm.Model
	UserID          uint    `json:"user_id" gorm:"uniqueIndex"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	ProgressPercent float64 `json:"progress_percent"`
	CurrentLat      float64 `json:"current_lat"`
	CurrentLng      float64 `json:"current_lng"`
}
