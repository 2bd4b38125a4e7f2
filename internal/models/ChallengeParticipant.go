package models

import (
	"time"

	"gorm.io/gorm"
)

// ChallengeParticipant is the per-user join record. Leaving deactivates it;
// re-joining reactivates the same row with a fresh JoinedAt.
type ChallengeParticipant struct {
	gorm.Model
	ChallengeID uint      `json:"challenge_id" gorm:"index"`
	UserID      uint      `json:"user_id" gorm:"index"`
	JoinedAt    time.Time `json:"joined_at"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
}
