package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ChallengeTypeIndividual = "individual"
	ChallengeTypeGroup      = "group"
	ChallengeTypeInterGroup = "inter-group"
)

// Challenge is a distance competition over a fixed window. Group and
// inter-group challenges must reference at least one group at creation.
type Challenge struct {
	gorm.Model
	Name             string    `json:"name" binding:"required"`
	Description      string    `json:"description"`
	TargetDistanceKm float64   `json:"target_distance_km"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	ChallengeType    string    `json:"challenge_type" gorm:"default:individual"`
	RouteID          *uint     `json:"route_id"` // nil falls back to the default route
	CreatedByUserID  uint      `json:"created_by_user_id"`
	IsActive         bool      `json:"is_active" gorm:"default:true"`

	Groups          []ChallengeGroup       `gorm:"foreignKey:ChallengeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"groups,omitempty"`
	Participants    []ChallengeParticipant `gorm:"foreignKey:ChallengeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"participants,omitempty"`
	ProgressRecords []ChallengeProgress    `gorm:"foreignKey:ChallengeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"progress_records,omitempty"`
}
