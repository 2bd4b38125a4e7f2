package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type GroupMember struct {
	gorm.Model
	GroupID  uint      `json:"group_id" gorm:"index"`
	UserID   uint      `json:"user_id" gorm:"index"`
	Role     string    `json:"role" gorm:"default:member"` // "admin" or "member"
	JoinedAt time.Time `json:"joined_at"`
	IsActive bool      `json:"is_active" gorm:"default:true"`
}
