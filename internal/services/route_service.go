package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"ride_tracker/internal/geo"
	"ride_tracker/internal/models"
	"ride_tracker/internal/route"
)

// RouteService reads route polylines and projects distances onto them.
// fallbackKm is the configured approximate route length used whenever no
// usable polyline exists (see config.RouteFallbackLengthKm).
type RouteService struct {
	db         *gorm.DB
	fallbackKm float64
}

func NewRouteService(db *gorm.DB, fallbackKm float64) *RouteService {
	return &RouteService{db: db, fallbackKm: fallbackKm}
}

// DefaultRoute returns the first active route, or nil when none exists.
func (s *RouteService) DefaultRoute() (*models.Route, error) {
	var r models.Route
	err := s.db.Where("is_active = ?", true).Order("id asc").First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RoutePoints loads the ordered polyline for the given route, falling back
// to the default route when routeID is nil. An empty slice (no error) means
// no usable route data exists.
func (s *RouteService) RoutePoints(routeID *uint) ([]geo.Coordinate, error) {
	id, err := s.resolveRouteID(routeID)
	if err != nil || id == 0 {
		return nil, err
	}

	var points []models.RoutePoint
	if err := s.db.Where("route_id = ?", id).Order("order_index asc").Find(&points).Error; err != nil {
		return nil, err
	}

	coords := make([]geo.Coordinate, 0, len(points))
	for _, p := range points {
		coords = append(coords, geo.Coordinate{Latitude: p.Latitude, Longitude: p.Longitude})
	}
	return coords, nil
}

// TotalLengthKm recomputes the polyline length from its points, using the
// configured fallback when fewer than two points exist.
func (s *RouteService) TotalLengthKm(routeID *uint) (float64, error) {
	points, err := s.RoutePoints(routeID)
	if err != nil {
		return 0, err
	}
	return route.TotalLength(points, s.fallbackKm), nil
}

// CoordinateAtDistance projects a traveled distance onto the route.
func (s *RouteService) CoordinateAtDistance(routeID *uint, distanceKm float64) (geo.Coordinate, error) {
	points, err := s.RoutePoints(routeID)
	if err != nil {
		return geo.Coordinate{}, err
	}
	return route.CoordinateAtDistance(points, distanceKm), nil
}

// CoordinateAtProgress projects a completion percentage onto the route.
func (s *RouteService) CoordinateAtProgress(routeID *uint, progressPercent float64) (geo.Coordinate, error) {
	points, err := s.RoutePoints(routeID)
	if err != nil {
		return geo.Coordinate{}, err
	}
	return route.CoordinateAtProgress(points, progressPercent, s.fallbackKm), nil
}

// PositionAtDistance is the nullable-position variant used for progress
// rows: it returns nil when no polyline exists instead of the fallback
// origin, so stored positions stay consistent with stored distances.
func (s *RouteService) PositionAtDistance(routeID *uint, distanceKm float64) (*geo.Coordinate, error) {
	points, err := s.RoutePoints(routeID)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, nil
	}
	c := route.CoordinateAtDistance(points, distanceKm)
	return &c, nil
}

func (s *RouteService) ListRoutes() ([]models.Route, error) {
	var routes []models.Route
	if err := s.db.Where("is_active = ?", true).Order("id asc").Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (s *RouteService) GetRoute(id uint) (*models.Route, error) {
	var r models.Route
	err := s.db.Preload("Points", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index asc")
	}).Where("id = ? AND is_active = ?", id, true).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RegenerateRoute replaces a route's polyline wholesale: old points are
// deleted, new ones inserted, and the cached total length recomputed, all
// in one transaction so length and points never drift apart. With a nil
// routeID a new route is created.
func (s *RouteService) RegenerateRoute(routeID *uint, name, description string, points []geo.Coordinate) (*models.Route, error) {
	if len(points) < 2 {
		return nil, ErrInvalidOperation
	}

	total := route.TotalLength(points, 0)

	var result models.Route
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var r models.Route
		if routeID != nil {
			if err := tx.First(&r, *routeID).Error; err != nil {
				return err
			}
			if name != "" {
				r.Name = name
			}
			if description != "" {
				r.Description = description
			}
			if err := tx.Where("route_id = ?", r.ID).Delete(&models.RoutePoint{}).Error; err != nil {
				return err
			}
		} else {
			r = models.Route{Name: name, Description: description, IsActive: true}
			if r.Name == "" {
				r.Name = "Generated Route " + time.Now().UTC().Format("2006-01-02")
			}
			if err := tx.Create(&r).Error; err != nil {
				return err
			}
		}

		r.TotalDistanceKm = total
		if err := tx.Save(&r).Error; err != nil {
			return err
		}

		rows := make([]models.RoutePoint, 0, len(points))
		for i, p := range points {
			rows = append(rows, models.RoutePoint{
				RouteID:    r.ID,
				OrderIndex: i,
				Latitude:   p.Latitude,
				Longitude:  p.Longitude,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *RouteService) resolveRouteID(routeID *uint) (uint, error) {
	if routeID != nil {
		return *routeID, nil
	}
	def, err := s.DefaultRoute()
	if err != nil || def == nil {
		return 0, err
	}
	return def.ID, nil
}
