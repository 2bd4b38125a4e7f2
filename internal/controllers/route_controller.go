package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ride_tracker/internal/geo"
	"ride_tracker/internal/models"
	"ride_tracker/internal/services"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
)

// RouteResponse mirrors models.Route with the polyline rendered as a
// GeoJSON LineString for API output.
type RouteResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	IsActive        bool    `json:"is_active"`
	PointCount      int     `json:"point_count"`
	Geometry        string  `json:"geometry"`
}

func toRouteResponse(r *models.Route) RouteResponse {
	coords := make([]geo.Coordinate, 0, len(r.Points))
	for _, p := range r.Points {
		coords = append(coords, geo.Coordinate{Latitude: p.Latitude, Longitude: p.Longitude})
	}
	geometry, _ := coordsToGeoJSON(coords)
	return RouteResponse{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		TotalDistanceKm: r.TotalDistanceKm,
		IsActive:        r.IsActive,
		PointCount:      len(r.Points),
		Geometry:        geometry,
	}
}

// parseGeoJSONLine parses a GeoJSON LineString into route coordinates.
// GeoJSON positions are [lng, lat].
func parseGeoJSONLine(raw string) ([]geo.Coordinate, error) {
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	line, ok := g.(*geom.LineString)
	if !ok {
		return nil, errors.New("geometry must be a LineString")
	}

	coords := make([]geo.Coordinate, 0, line.NumCoords())
	for i := 0; i < line.NumCoords(); i++ {
		c := line.Coord(i)
		coords = append(coords, geo.Coordinate{Latitude: c.Y(), Longitude: c.X()})
	}
	return coords, nil
}

// coordsToGeoJSON renders route coordinates as a GeoJSON LineString.
func coordsToGeoJSON(coords []geo.Coordinate) (string, error) {
	if len(coords) == 0 {
		return "", nil
	}
	positions := make([]geom.Coord, 0, len(coords))
	for _, c := range coords {
		positions = append(positions, geom.Coord{c.Longitude, c.Latitude})
	}
	line := geom.NewLineString(geom.XY)
	if _, err := line.SetCoords(positions); err != nil {
		return "", err
	}
	b, err := gjson.Marshal(line)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func ListRoutes(c *gin.Context) {
	routes, err := routeService.ListRoutes()
	if err != nil {
		logrus.WithError(err).Error("ListRoutes failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]RouteResponse, 0, len(routes))
	for i := range routes {
		responses = append(responses, toRouteResponse(&routes[i]))
	}
	c.JSON(http.StatusOK, gin.H{"routes": responses})
}

func GetRoute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	r, err := routeService.GetRoute(id)
	if err != nil {
		logrus.WithError(err).Error("GetRoute failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(r)})
}

// GetRoutePoints returns the raw ordered polyline of the default route,
// or of ?route_id when given.
func GetRoutePoints(c *gin.Context) {
	routeID := optionalRouteID(c)
	points, err := routeService.RoutePoints(routeID)
	if err != nil {
		logrus.WithError(err).Error("GetRoutePoints failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": points})
}

func GetRouteLength(c *gin.Context) {
	routeID := optionalRouteID(c)
	length, err := routeService.TotalLengthKm(routeID)
	if err != nil {
		logrus.WithError(err).Error("GetRouteLength failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_length_km": length})
}

// GetCoordinateAtDistance maps ?distance_km onto the route.
func GetCoordinateAtDistance(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Query("distance_km"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid distance_km"})
		return
	}

	coordinate, err := routeService.CoordinateAtDistance(optionalRouteID(c), distance)
	if err != nil {
		logrus.WithError(err).Error("GetCoordinateAtDistance failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coordinate": coordinate})
}

// GetCoordinateAtProgress maps ?percent onto the route.
func GetCoordinateAtProgress(c *gin.Context) {
	percent, err := strconv.ParseFloat(c.Query("percent"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid percent"})
		return
	}

	coordinate, err := routeService.CoordinateAtProgress(optionalRouteID(c), percent)
	if err != nil {
		logrus.WithError(err).Error("GetCoordinateAtProgress failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coordinate": coordinate})
}

type regenerateRouteInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Geometry    string `json:"geometry" binding:"required"` // GeoJSON LineString
}

// RegenerateRoute replaces a route's polyline from a GeoJSON LineString
// (admin only). A missing :id creates a new route.
func RegenerateRoute(c *gin.Context) {
	var routeID *uint
	if c.Param("id") != "" {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
			return
		}
		routeID = &id
	}

	var input regenerateRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	points, err := parseGeoJSONLine(input.Geometry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}

	r, err := routeService.RegenerateRoute(routeID, input.Name, input.Description, points)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOperation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A route needs at least two points"})
			return
		}
		logrus.WithError(err).Error("RegenerateRoute failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Route generation failed: " + err.Error()})
		return
	}

	full, err := routeService.GetRoute(r.ID)
	if err != nil || full == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Route reload failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": toRouteResponse(full)})
}

func optionalRouteID(c *gin.Context) *uint {
	if v := c.Query("route_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			u := uint(id)
			return &u
		}
	}
	return nil
}
