package models

import (
	"time"

	"gorm.io/gorm"
)

// ChallengeGroup links a group into a challenge, distinct from individual
// participation.
type ChallengeGroup struct {
	gorm.Model
	ChallengeID uint      `json:"challenge_id" gorm:"index"`
	GroupID     uint      `json:"group_id" gorm:"index"`
	JoinedAt    time.Time `json:"joined_at"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`

	Group Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}
