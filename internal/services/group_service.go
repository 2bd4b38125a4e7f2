package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"ride_tracker/internal/models"
)

// GroupService manages group rosters. Groups follow the same soft-delete
// discipline as everything else: IsActive=false is the only removal path.
type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// GetGroupByID returns the group view, or nil when missing/inactive.
func (s *GroupService) GetGroupByID(groupID uint) (*GroupView, error) {
	var g models.Group
	err := s.db.Preload("Members").Where("id = ? AND is_active = ?", groupID, true).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	view, err := s.groupView(&g)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *GroupService) GetAllGroups() ([]GroupView, error) {
	var groups []models.Group
	err := s.db.Preload("Members").Where("is_active = ?", true).Order("name asc").Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return s.groupViews(groups)
}

// GetUserGroups lists the active groups a user actively belongs to.
func (s *GroupService) GetUserGroups(userID uint) ([]GroupView, error) {
	var ids []uint
	err := s.db.Model(&models.GroupMember{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Pluck("group_id", &ids).Error
	if err != nil {
		return nil, err
	}

	var groups []models.Group
	err = s.db.Preload("Members").Where("id IN ? AND is_active = ?", ids, true).Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return s.groupViews(groups)
}

// CreateGroup creates a group (admins only) with the creator enrolled as
// its first admin member.
func (s *GroupService) CreateGroup(creatorID uint, input CreateGroupInput) (*GroupView, error) {
	var creator models.User
	if err := s.db.First(&creator, creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !creator.IsAdmin {
		return nil, ErrUnauthorized
	}

	g := models.Group{
		Name:            input.Name,
		IconURL:         input.IconURL,
		CreatedByUserID: creatorID,
		IsActive:        true,
	}
	if err := s.db.Create(&g).Error; err != nil {
		return nil, err
	}

	member := models.GroupMember{
		GroupID:  g.ID,
		UserID:   creatorID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now().UTC(),
		IsActive: true,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}

	return s.GetGroupByID(g.ID)
}

// UpdateGroup patches group metadata; group admins only. Nil when the
// group is missing or the caller lacks the admin role.
func (s *GroupService) UpdateGroup(groupID, userID uint, input UpdateGroupInput) (*GroupView, error) {
	var g models.Group
	err := s.db.Where("id = ? AND is_active = ?", groupID, true).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	admin, err := s.IsUserGroupAdmin(groupID, userID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, nil
	}

	if input.Name != nil && *input.Name != "" {
		g.Name = *input.Name
	}
	if input.IconURL != nil {
		g.IconURL = *input.IconURL
	}
	if err := s.db.Save(&g).Error; err != nil {
		return nil, err
	}
	return s.GetGroupByID(groupID)
}

// DeleteGroup soft-deletes; creator only.
func (s *GroupService) DeleteGroup(groupID, userID uint) (bool, error) {
	var g models.Group
	err := s.db.Where("id = ? AND is_active = ?", groupID, true).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if g.CreatedByUserID != userID {
		return false, nil
	}

	g.IsActive = false
	if err := s.db.Save(&g).Error; err != nil {
		return false, err
	}
	return true, nil
}

// AddMember enrolls a user into a group; requester must be a group admin.
// Re-adding a previously removed member reactivates the existing row.
func (s *GroupService) AddMember(groupID, requesterID, userID uint, role string) (bool, error) {
	admin, err := s.IsUserGroupAdmin(groupID, requesterID)
	if err != nil {
		return false, err
	}
	if !admin {
		return false, ErrUnauthorized
	}

	if role != models.RoleAdmin {
		role = models.RoleMember
	}

	var member models.GroupMember
	err = s.db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
	switch {
	case err == nil:
		if member.IsActive {
			return false, nil
		}
		member.IsActive = true
		member.Role = role
		member.JoinedAt = time.Now().UTC()
		return true, s.db.Save(&member).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		member = models.GroupMember{
			GroupID:  groupID,
			UserID:   userID,
			Role:     role,
			JoinedAt: time.Now().UTC(),
			IsActive: true,
		}
		return true, s.db.Create(&member).Error
	default:
		return false, err
	}
}

// RemoveMember deactivates a membership; requester must be a group admin.
// The group creator cannot be removed.
func (s *GroupService) RemoveMember(groupID, requesterID, userID uint) (bool, error) {
	admin, err := s.IsUserGroupAdmin(groupID, requesterID)
	if err != nil {
		return false, err
	}
	if !admin {
		return false, ErrUnauthorized
	}

	var g models.Group
	if err := s.db.First(&g, groupID).Error; err != nil {
		return false, err
	}
	if g.CreatedByUserID == userID {
		return false, nil
	}

	return s.deactivateMember(groupID, userID)
}

// LeaveGroup lets a member remove themselves; the creator cannot leave.
func (s *GroupService) LeaveGroup(groupID, userID uint) (bool, error) {
	var g models.Group
	err := s.db.Where("id = ? AND is_active = ?", groupID, true).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if g.CreatedByUserID == userID {
		return false, nil
	}

	return s.deactivateMember(groupID, userID)
}

// IsUserGroupAdmin reports whether the user holds the admin role in the
// group.
func (s *GroupService) IsUserGroupAdmin(groupID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ? AND role = ? AND is_active = ?",
			groupID, userID, models.RoleAdmin, true).
		Count(&count).Error
	return count > 0, err
}

func (s *GroupService) deactivateMember(groupID, userID uint) (bool, error) {
	var member models.GroupMember
	err := s.db.Where("group_id = ? AND user_id = ? AND is_active = ?", groupID, userID, true).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	member.IsActive = false
	if err := s.db.Save(&member).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (s *GroupService) groupViews(groups []models.Group) ([]GroupView, error) {
	views := make([]GroupView, 0, len(groups))
	for i := range groups {
		view, err := s.groupView(&groups[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *GroupService) groupView(g *models.Group) (*GroupView, error) {
	userIDs := make([]uint, 0, len(g.Members)+1)
	userIDs = append(userIDs, g.CreatedByUserID)
	for _, m := range g.Members {
		if m.IsActive {
			userIDs = append(userIDs, m.UserID)
		}
	}

	var users []models.User
	if err := s.db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	members := make([]GroupMemberView, 0, len(g.Members))
	for _, m := range g.Members {
		if !m.IsActive {
			continue
		}
		u := byID[m.UserID]
		members = append(members, GroupMemberView{
			ID:              m.ID,
			GroupID:         m.GroupID,
			UserID:          m.UserID,
			Username:        u.Username,
			FirstName:       u.FirstName,
			LastName:        u.LastName,
			Role:            m.Role,
			JoinedAt:        m.JoinedAt,
			TotalDistanceKm: u.TotalDistanceKm,
		})
	}

	return &GroupView{
		ID:                g.ID,
		Name:              g.Name,
		IconURL:           g.IconURL,
		CreatedByUserID:   g.CreatedByUserID,
		CreatedByUsername: byID[g.CreatedByUserID].Username,
		CreatedAt:         g.CreatedAt,
		MemberCount:       len(members),
		Members:           members,
	}, nil
}
