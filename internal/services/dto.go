package services

import "time"

// View structs returned to controllers. Plain data, JSON-tagged; anything
// heavier (pagination, caching) belongs to the boundary, not here.

type ChallengeView struct {
	ID                   uint                 `json:"id"`
	Name                 string               `json:"name"`
	Description          string               `json:"description"`
	TargetDistanceKm     float64              `json:"target_distance_km"`
	StartDate            time.Time            `json:"start_date"`
	EndDate              time.Time            `json:"end_date"`
	ChallengeType        string               `json:"challenge_type"`
	RouteID              *uint                `json:"route_id"`
	CreatedByUserID      uint                 `json:"created_by_user_id"`
	CreatedByUsername    string               `json:"created_by_username"`
	CreatedAt            time.Time            `json:"created_at"`
	ParticipantCount     int                  `json:"participant_count"`
	TotalDistanceCovered float64              `json:"total_distance_covered"`
	ProgressPercentage   float64              `json:"progress_percentage"`
	Status               string               `json:"status"`
	DaysRemaining        int                  `json:"days_remaining"`
	ParticipatingGroups  []ChallengeGroupView `json:"participating_groups"`
}

type ChallengeGroupView struct {
	GroupID              uint      `json:"group_id"`
	GroupName            string    `json:"group_name"`
	GroupIconURL         string    `json:"group_icon_url"`
	JoinedAt             time.Time `json:"joined_at"`
	TotalDistanceCovered float64   `json:"total_distance_covered"`
	ProgressPercentage   float64   `json:"progress_percentage"`
	MemberCount          int       `json:"member_count"`
	Rank                 int       `json:"rank"`
}

type ProgressView struct {
	ChallengeID        uint       `json:"challenge_id"`
	ChallengeName      string     `json:"challenge_name"`
	UserID             uint       `json:"user_id"`
	Username           string     `json:"username"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	DistanceCoveredKm  float64    `json:"distance_covered_km"`
	ProgressPercentage float64    `json:"progress_percentage"`
	CurrentPositionLat *float64   `json:"current_position_lat"`
	CurrentPositionLng *float64   `json:"current_position_lng"`
	LastActivityDate   *time.Time `json:"last_activity_date"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Rank               int        `json:"rank"`
}

type GroupChallengeProgressView struct {
	ChallengeID          uint           `json:"challenge_id"`
	ChallengeName        string         `json:"challenge_name"`
	TargetDistanceKm     float64        `json:"target_distance_km"`
	TotalDistanceCovered float64        `json:"total_distance_covered"`
	ProgressPercentage   float64        `json:"progress_percentage"`
	CurrentPositionLat   *float64       `json:"current_position_lat"`
	CurrentPositionLng   *float64       `json:"current_position_lng"`
	LastActivityDate     *time.Time     `json:"last_activity_date"`
	UpdatedAt            time.Time      `json:"updated_at"`
	MemberProgress       []ProgressView `json:"member_progress"`
}

type LeaderboardEntryView struct {
	Rank               int        `json:"rank"`
	UserID             uint       `json:"user_id"`
	Username           string     `json:"username"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	DistanceCoveredKm  float64    `json:"distance_covered_km"`
	ProgressPercentage float64    `json:"progress_percentage"`
	LastActivityDate   *time.Time `json:"last_activity_date"`
	IsCurrentUser      bool       `json:"is_current_user"`
	CurrentPositionLat *float64   `json:"current_position_lat"`
	CurrentPositionLng *float64   `json:"current_position_lng"`
}

type LeaderboardView struct {
	ChallengeID      uint                   `json:"challenge_id"`
	ChallengeName    string                 `json:"challenge_name"`
	TargetDistanceKm float64                `json:"target_distance_km"`
	ChallengeType    string                 `json:"challenge_type"`
	Entries          []LeaderboardEntryView `json:"entries"`
}

type InterGroupLeaderboardView struct {
	ChallengeID      uint                 `json:"challenge_id"`
	ChallengeName    string               `json:"challenge_name"`
	TargetDistanceKm float64              `json:"target_distance_km"`
	GroupRankings    []ChallengeGroupView `json:"group_rankings"`
}

type GroupMemberView struct {
	ID              uint      `json:"id"`
	GroupID         uint      `json:"group_id"`
	UserID          uint      `json:"user_id"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Role            string    `json:"role"`
	JoinedAt        time.Time `json:"joined_at"`
	TotalDistanceKm float64   `json:"total_distance_km"`
}

type GroupView struct {
	ID                uint              `json:"id"`
	Name              string            `json:"name"`
	IconURL           string            `json:"icon_url"`
	CreatedByUserID   uint              `json:"created_by_user_id"`
	CreatedByUsername string            `json:"created_by_username"`
	CreatedAt         time.Time         `json:"created_at"`
	MemberCount       int               `json:"member_count"`
	Members           []GroupMemberView `json:"members"`
}

// Inputs

type CreateChallengeInput struct {
	Name             string    `json:"name" binding:"required"`
	Description      string    `json:"description"`
	TargetDistanceKm float64   `json:"target_distance_km" binding:"required"`
	StartDate        time.Time `json:"start_date" binding:"required"`
	EndDate          time.Time `json:"end_date" binding:"required"`
	ChallengeType    string    `json:"challenge_type"`
	RouteID          *uint     `json:"route_id"`
	GroupIDs         []uint    `json:"group_ids"`
}

type UpdateChallengeInput struct {
	Name             *string    `json:"name"`
	Description      *string    `json:"description"`
	TargetDistanceKm *float64   `json:"target_distance_km"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
}

type CreateGroupInput struct {
	Name    string `json:"name" binding:"required"`
	IconURL string `json:"icon_url"`
}

type UpdateGroupInput struct {
	Name    *string `json:"name"`
	IconURL *string `json:"icon_url"`
}
