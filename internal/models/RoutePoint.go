package models

import (
	"gorm.io/gorm"
)

// RoutePoint is an ordered vertex of a route polyline. OrderIndex defines
// traversal order, not geographic proximity. Points are replaced wholesale
// when a route is regenerated.
type RoutePoint struct {
	gorm.Model
	RouteID    uint    `json:"route_id" gorm:"index"`
	OrderIndex int     `json:"order_index"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}
