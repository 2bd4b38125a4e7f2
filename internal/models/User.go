package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"unique"`
	Email     string `json:"email" gorm:"unique"`
	Password  string `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAdmin   bool   `json:"is_admin"` // admins create groups and challenges

	// Lifetime totals maintained by the sync sweep
	TotalDistanceKm    float64   `json:"total_distance_km"`
	TotalMovingTimeSec int64     `json:"total_moving_time_sec"`
	LastSync           time.Time `json:"last_sync"`

	Activities []Activity    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"activities,omitempty"`
	Progress   *UserProgress `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"progress,omitempty"`
}
