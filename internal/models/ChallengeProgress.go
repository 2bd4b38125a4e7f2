package models

import (
	"time"

	"gorm.io/gorm"
)

// ChallengeProgress holds one user's standing within one challenge, even
// for group challenges (group figures are aggregated at read time). The row
// is recomputed wholesale by the sync sweep, never patched field by field.
type ChallengeProgress struct {
	gorm.Model
	ChallengeID        uint       `json:"challenge_id" gorm:"index:idx_challenge_user,unique"`
	UserID             uint       `json:"user_id" gorm:"index:idx_challenge_user,unique"`
	DistanceCoveredKm  float64    `json:"distance_covered_km"`
	ProgressPercentage float64    `json:"progress_percentage"`
	CurrentPositionLat *float64   `json:"current_position_lat"`
	CurrentPositionLng *float64   `json:"current_position_lng"`
	LastActivityDate   *time.Time `json:"last_activity_date"`
}
