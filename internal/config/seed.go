package config

import (
	"log"

	"gorm.io/gorm"

	"ride_tracker/internal/geo"
	"ride_tracker/internal/models"
	"ride_tracker/internal/route"
)

// coastalLoop is the simplified Sri Lanka coastal circuit:
// Matara → Galle → Colombo → Puttalam → Mannar → Jaffna → Mullaitivu →
// Trincomalee → Batticaloa → Arugam Bay → Hambantota → Matara.
var coastalLoop = []geo.Coordinate{
	{Latitude: 5.9549, Longitude: 80.5550}, // Matara
	{Latitude: 5.9485, Longitude: 80.4854},
	{Latitude: 5.9615, Longitude: 80.3250},
	{Latitude: 6.0328, Longitude: 80.2170},
	{Latitude: 6.0535, Longitude: 80.2210}, // Galle
	{Latitude: 6.1354, Longitude: 80.0992},
	{Latitude: 6.2384, Longitude: 80.0053},
	{Latitude: 6.4218, Longitude: 79.8652},
	{Latitude: 6.5854, Longitude: 79.8607},
	{Latitude: 6.7273, Longitude: 79.8612},
	{Latitude: 6.9271, Longitude: 79.8612}, // Colombo
	{Latitude: 7.1025, Longitude: 79.8564},
	{Latitude: 7.2906, Longitude: 79.8538},
	{Latitude: 7.4818, Longitude: 79.8285},
	{Latitude: 7.6521, Longitude: 79.8394},
	{Latitude: 7.9569, Longitude: 79.8285},
	{Latitude: 8.0362, Longitude: 79.8285}, // Puttalam
	{Latitude: 8.2528, Longitude: 79.9047},
	{Latitude: 8.4650, Longitude: 79.9856},
	{Latitude: 8.6521, Longitude: 80.0125},
	{Latitude: 8.8542, Longitude: 79.9542},
	{Latitude: 8.9812, Longitude: 79.9047}, // Mannar
	{Latitude: 9.1258, Longitude: 79.9285},
	{Latitude: 9.3854, Longitude: 80.0542},
	{Latitude: 9.6612, Longitude: 80.0256}, // Jaffna
	{Latitude: 9.6521, Longitude: 80.1854},
	{Latitude: 9.5854, Longitude: 80.3625},
	{Latitude: 9.5125, Longitude: 80.5285},
	{Latitude: 9.2685, Longitude: 80.8142}, // Mullaitivu
	{Latitude: 9.0854, Longitude: 80.9625},
	{Latitude: 8.8521, Longitude: 81.0854},
	{Latitude: 8.5869, Longitude: 81.2142}, // Trincomalee
	{Latitude: 8.2512, Longitude: 81.3254},
	{Latitude: 7.9854, Longitude: 81.4521},
	{Latitude: 7.7168, Longitude: 81.6924}, // Batticaloa
	{Latitude: 7.4125, Longitude: 81.8012},
	{Latitude: 7.0854, Longitude: 81.8325},
	{Latitude: 6.8404, Longitude: 81.8364}, // Arugam Bay
	{Latitude: 6.5212, Longitude: 81.7254},
	{Latitude: 6.2854, Longitude: 81.5325},
	{Latitude: 6.1241, Longitude: 81.1185}, // Hambantota
	{Latitude: 6.0354, Longitude: 80.9254},
	{Latitude: 5.9754, Longitude: 80.7125},
	{Latitude: 5.9549, Longitude: 80.5550}, // back to Matara
}

// seedDefaultRoute inserts the coastal loop when no route points exist
// yet. Length is computed from the same points being inserted, keeping the
// cached figure consistent with the polyline.
func seedDefaultRoute(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.RoutePoint{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		r := models.Route{
			Name:            "Sri Lanka Coastal Loop",
			Description:     "Virtual coastal circuit around the island, starting and ending in Matara",
			TotalDistanceKm: route.TotalLength(coastalLoop, RouteFallbackLengthKm()),
			IsActive:        true,
		}
		if err := tx.Create(&r).Error; err != nil {
			return err
		}

		points := make([]models.RoutePoint, 0, len(coastalLoop))
		for i, c := range coastalLoop {
			points = append(points, models.RoutePoint{
				RouteID:    r.ID,
				OrderIndex: i,
				Latitude:   c.Latitude,
				Longitude:  c.Longitude,
			})
		}
		if err := tx.Create(&points).Error; err != nil {
			return err
		}

		log.Printf("Seeded default route %q with %d points (%.1f km)", r.Name, len(points), r.TotalDistanceKm)
		return nil
	})
}
