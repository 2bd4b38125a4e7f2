package models

import (
	"gorm.io/gorm"
)

type Group struct {
	gorm.Model
	Name            string `json:"name" binding:"required"`
	IconURL         string `json:"icon_url"`
	CreatedByUserID uint   `json:"created_by_user_id"`
	IsActive        bool   `json:"is_active" gorm:"default:true"`

	Members                 []GroupMember    `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"members,omitempty"`
	ChallengeParticipations []ChallengeGroup `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"challenge_participations,omitempty"`
}
