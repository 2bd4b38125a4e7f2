package models

import (
	"gorm.io/gorm"
)

// Route is a named polyline users virtually ride along.
// TotalDistanceKm is cached at generation time and is only ever rewritten
// together with the points it was computed from.
type Route struct {
	gorm.Model
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	IsActive        bool    `json:"is_active" gorm:"default:true"`

	Points []RoutePoint `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"points,omitempty"`
}
