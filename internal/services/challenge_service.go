package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"ride_tracker/internal/challenge"
	"ride_tracker/internal/models"
)

// ChallengeService orchestrates challenge lifecycle, progress and
// leaderboards. All computation is delegated to the pure challenge
// package; this layer only moves rows in and out of the database.
type ChallengeService struct {
	db     *gorm.DB
	routes *RouteService
}

func NewChallengeService(db *gorm.DB, routes *RouteService) *ChallengeService {
	return &ChallengeService{db: db, routes: routes}
}

// GetChallengeByID returns the challenge view with viewer-dependent
// aggregation, or nil when the challenge does not exist or is inactive.
func (s *ChallengeService) GetChallengeByID(challengeID uint, viewerID *uint) (*ChallengeView, error) {
	ch, err := s.activeChallenge(challengeID)
	if err != nil || ch == nil {
		return nil, err
	}
	view, err := s.buildView(ch, viewerID)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// GetUserChallenges lists the challenges a user actively participates in,
// newest first. The user is the viewer for group-type aggregation.
func (s *ChallengeService) GetUserChallenges(userID uint) ([]ChallengeView, error) {
	var ids []uint
	err := s.db.Model(&models.ChallengeParticipant{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Pluck("challenge_id", &ids).Error
	if err != nil {
		return nil, err
	}

	var challenges []models.Challenge
	if err := s.db.Where("id IN ? AND is_active = ?", ids, true).
		Order("created_at desc").Find(&challenges).Error; err != nil {
		return nil, err
	}

	views := make([]ChallengeView, 0, len(challenges))
	for i := range challenges {
		view, err := s.buildView(&challenges[i], &userID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetGroupChallenges lists the challenges a group is enrolled in.
func (s *ChallengeService) GetGroupChallenges(groupID uint) ([]ChallengeView, error) {
	var ids []uint
	err := s.db.Model(&models.ChallengeGroup{}).
		Where("group_id = ? AND is_active = ?", groupID, true).
		Pluck("challenge_id", &ids).Error
	if err != nil {
		return nil, err
	}

	var challenges []models.Challenge
	if err := s.db.Where("id IN ? AND is_active = ?", ids, true).
		Order("created_at desc").Find(&challenges).Error; err != nil {
		return nil, err
	}

	views := make([]ChallengeView, 0, len(challenges))
	for i := range challenges {
		view, err := s.buildView(&challenges[i], nil)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// CreateChallenge creates a challenge and fans out participation: the
// creator always joins, and for group/inter-group challenges every active
// member of every named group is auto-joined. Individual join failures are
// logged and skipped; one bad member must not sink the whole cascade.
func (s *ChallengeService) CreateChallenge(creatorID uint, input CreateChallengeInput) (*ChallengeView, error) {
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

	challengeType := input.ChallengeType
	if challengeType == "" {
		challengeType = models.ChallengeTypeIndividual
	}
	groupScoped := challengeType == models.ChallengeTypeGroup || challengeType == models.ChallengeTypeInterGroup
	if groupScoped && len(input.GroupIDs) == 0 {
		return nil, ErrInvalidOperation
	}

	ch := models.Challenge{
		Name:             input.Name,
		Description:      input.Description,
		TargetDistanceKm: input.TargetDistanceKm,
		StartDate:        input.StartDate.UTC(),
		EndDate:          input.EndDate.UTC(),
		ChallengeType:    challengeType,
		RouteID:          input.RouteID,
		CreatedByUserID:  creatorID,
		IsActive:         true,
	}
	if err := s.db.Create(&ch).Error; err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, groupID := range input.GroupIDs {
		cg := models.ChallengeGroup{
			ChallengeID: ch.ID,
			GroupID:     groupID,
			JoinedAt:    now,
			IsActive:    true,
		}
		if err := s.db.Create(&cg).Error; err != nil {
			return nil, err
		}
	}

	cascadeGroups := input.GroupIDs
	if !groupScoped {
		cascadeGroups = nil
	}
	if err := cascadeEnroll(gormEnrollmentStore{s.db}, ch.ID, creatorID, cascadeGroups, now); err != nil {
		return nil, err
	}

	return s.GetChallengeByID(ch.ID, nil)
}

// UpdateChallenge lets the creator patch challenge metadata. Returns nil
// when the challenge is missing, inactive, or the caller is not the
// creator.
func (s *ChallengeService) UpdateChallenge(challengeID, userID uint, input UpdateChallengeInput) (*ChallengeView, error) {
	ch, err := s.activeChallenge(challengeID)
	if err != nil || ch == nil {
		return nil, err
	}
	if ch.CreatedByUserID != userID {
		return nil, nil
	}

	if input.Name != nil && *input.Name != "" {
		ch.Name = *input.Name
	}
	if input.Description != nil {
		ch.Description = *input.Description
	}
	if input.TargetDistanceKm != nil {
		ch.TargetDistanceKm = *input.TargetDistanceKm
	}
	if input.StartDate != nil {
		ch.StartDate = input.StartDate.UTC()
	}
	if input.EndDate != nil {
		ch.EndDate = input.EndDate.UTC()
	}

	if err := s.db.Save(ch).Error; err != nil {
		return nil, err
	}
	return s.GetChallengeByID(challengeID, nil)
}

// DeleteChallenge soft-deletes; only the creator may do it.
func (s *ChallengeService) DeleteChallenge(challengeID, userID uint) (bool, error) {
	ch, err := s.activeChallenge(challengeID)
	if err != nil || ch == nil {
		return false, err
	}
	if ch.CreatedByUserID != userID {
		return false, nil
	}

	ch.IsActive = false
	if err := s.db.Save(ch).Error; err != nil {
		return false, err
	}
	return true, nil
}

// JoinChallenge enrolls a user. An inactive prior record is reactivated
// with a fresh JoinedAt rather than duplicated; a progress row is created
// at zero if none exists. Joining while already active is a no-op false,
// not an error.
func (s *ChallengeService) JoinChallenge(challengeID, userID uint) (bool, error) {
	ch, err := s.activeChallenge(challengeID)
	if err != nil || ch == nil {
		return false, err
	}
	return enroll(gormEnrollmentStore{s.db}, challengeID, userID, time.Now().UTC())
}

// LeaveChallenge deactivates participation. The creator can never leave
// their own challenge; leaving without active participation is a no-op
// false.
func (s *ChallengeService) LeaveChallenge(challengeID, userID uint) (bool, error) {
	var ch models.Challenge
	err := s.db.First(&ch, challengeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return withdraw(gormEnrollmentStore{s.db}, &ch, userID)
}

// UpdateChallengeProgress recomputes one user's progress row from scratch:
// activities inside the challenge window are summed, percentage and route
// position derived from that same distance, and the row overwritten in a
// single save. Nothing is incremented.
func (s *ChallengeService) UpdateChallengeProgress(challengeID, userID uint) error {
	var progress models.ChallengeProgress
	err := s.db.Where("challenge_id = ? AND user_id = ?", challengeID, userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var ch models.Challenge
	if err := s.db.First(&ch, challengeID).Error; err != nil {
		return err
	}

	var activities []models.Activity
	err = s.db.Where("user_id = ? AND start_date >= ? AND start_date <= ?",
		userID, ch.StartDate, ch.EndDate).Find(&activities).Error
	if err != nil {
		return err
	}

	distance, lastActivity := challenge.SumActivitiesInWindow(activities, ch.StartDate, ch.EndDate)

	position, err := s.routes.PositionAtDistance(ch.RouteID, distance)
	if err != nil {
		return err
	}

	progress.DistanceCoveredKm = distance
	progress.ProgressPercentage = challenge.Percentage(distance, ch.TargetDistanceKm)
	progress.LastActivityDate = lastActivity
	if position != nil {
		progress.CurrentPositionLat = &position.Latitude
		progress.CurrentPositionLng = &position.Longitude
	} else {
		progress.CurrentPositionLat = nil
		progress.CurrentPositionLng = nil
	}

	return s.db.Save(&progress).Error
}

// GetUserChallengeProgress returns one participant's standing including
// their leaderboard rank.
func (s *ChallengeService) GetUserChallengeProgress(challengeID, userID uint) (*ProgressView, error) {
	var progress models.ChallengeProgress
	err := s.db.Where("challenge_id = ? AND user_id = ?", challengeID, userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ch models.Challenge
	if err := s.db.First(&ch, challengeID).Error; err != nil {
		return nil, err
	}

	records, err := s.progressRecords(challengeID)
	if err != nil {
		return nil, err
	}

	entries := make([]challenge.Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, challenge.Entry{ID: r.UserID, DistanceKm: r.DistanceCoveredKm})
	}
	rank := 0
	for _, e := range challenge.Rank(entries, nil) {
		if e.ID == userID {
			rank = e.Rank
			break
		}
	}

	users, err := s.usersByID([]uint{userID})
	if err != nil {
		return nil, err
	}
	u := users[userID]

	view := progressView(&progress, ch.Name, u)
	view.Rank = rank
	return &view, nil
}

// GetGroupChallengeProgress returns the aggregate standing of a group or
// inter-group challenge: viewer-dependent total, group position on the
// route, and ranked member breakdown. Nil for other challenge types.
func (s *ChallengeService) GetGroupChallengeProgress(challengeID uint, viewerID *uint) (*GroupChallengeProgressView, error) {
	ch, err := s.activeChallenge(challengeID)
	if err != nil || ch == nil {
		return nil, err
	}
	if ch.ChallengeType != models.ChallengeTypeGroup && ch.ChallengeType != models.ChallengeTypeInterGroup {
		return nil, nil
	}

	records, err := s.progressRecords(challengeID)
	if err != nil {
		return nil, err
	}

	rows := toProgressRows(records)
	totalDistance, pct := challenge.AggregateForView(ch.ChallengeType, ch.TargetDistanceKm, rows, viewerID)

	position, err := s.routes.PositionAtDistance(ch.RouteID, totalDistance)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(records))
	for _, r := range records {
		userIDs = append(userIDs, r.UserID)
	}
	users, err := s.usersByID(userIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]challenge.Entry, 0, len(records))
	byUser := make(map[uint]models.ChallengeProgress, len(records))
	for _, r := range records {
		entries = append(entries, challenge.Entry{ID: r.UserID, DistanceKm: r.DistanceCoveredKm})
		byUser[r.UserID] = r
	}

	memberProgress := make([]ProgressView, 0, len(records))
	var lastActivity *time.Time
	for _, e := range challenge.Rank(entries, viewerID) {
		r := byUser[e.ID]
		view := progressView(&r, ch.Name, users[e.ID])
		view.Rank = e.Rank
		memberProgress = append(memberProgress, view)

		if r.LastActivityDate != nil && (lastActivity == nil || r.LastActivityDate.After(*lastActivity)) {
			lastActivity = r.LastActivityDate
		}
	}

	result := GroupChallengeProgressView{
		ChallengeID:          ch.ID,
		ChallengeName:        ch.Name,
		TargetDistanceKm:     ch.TargetDistanceKm,
		TotalDistanceCovered: totalDistance,
		ProgressPercentage:   pct,
		LastActivityDate:     lastActivity,
		UpdatedAt:            time.Now().UTC(),
		MemberProgress:       memberProgress,
	}
	if position != nil {
		result.CurrentPositionLat = &position.Latitude
		result.CurrentPositionLng = &position.Longitude
	}
	return &result, nil
}

// GetChallengeLeaderboard ranks all participants, flagging the viewer's
// row when a viewer is given.
func (s *ChallengeService) GetChallengeLeaderboard(challengeID uint, viewerID *uint) (*LeaderboardView, error) {
	ch, err := s.activeChallenge(challengeID)
	if err != nil || ch == nil {
		return nil, err
	}

	records, err := s.progressRecords(challengeID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(records))
	byUser := make(map[uint]models.ChallengeProgress, len(records))
	entries := make([]challenge.Entry, 0, len(records))
	for _, r := range records {
		userIDs = append(userIDs, r.UserID)
		byUser[r.UserID] = r
		entries = append(entries, challenge.Entry{ID: r.UserID, DistanceKm: r.DistanceCoveredKm})
	}

	users, err := s.usersByID(userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]LeaderboardEntryView, 0, len(entries))
	for _, e := range challenge.Rank(entries, viewerID) {
		r := byUser[e.ID]
		u := users[e.ID]
		views = append(views, LeaderboardEntryView{
			Rank:               e.Rank,
			UserID:             e.ID,
			Username:           u.Username,
			FirstName:          u.FirstName,
			LastName:           u.LastName,
			DistanceCoveredKm:  r.DistanceCoveredKm,
			ProgressPercentage: r.ProgressPercentage,
			LastActivityDate:   r.LastActivityDate,
			IsCurrentUser:      e.IsViewer,
			CurrentPositionLat: r.CurrentPositionLat,
			CurrentPositionLng: r.CurrentPositionLng,
		})
	}

	return &LeaderboardView{
		ChallengeID:      ch.ID,
		ChallengeName:    ch.Name,
		TargetDistanceKm: ch.TargetDistanceKm,
		ChallengeType:    ch.ChallengeType,
		Entries:          views,
	}, nil
}

// GetInterGroupLeaderboard ranks the participating groups of a challenge.
func (s *ChallengeService) GetInterGroupLeaderboard(challengeID uint) (*InterGroupLeaderboardView, error) {
	ch, err := s.activeChallenge(challengeID)
	if err != nil || ch == nil {
		return nil, err
	}

	rankings, err := s.challengeGroupsWithProgress(ch)
	if err != nil {
		return nil, err
	}

	return &InterGroupLeaderboardView{
		ChallengeID:      ch.ID,
		ChallengeName:    ch.Name,
		TargetDistanceKm: ch.TargetDistanceKm,
		GroupRankings:    rankings,
	}, nil
}

// -- internals --

func (s *ChallengeService) activeChallenge(challengeID uint) (*models.Challenge, error) {
	var ch models.Challenge
	err := s.db.Where("id = ? AND is_active = ?", challengeID, true).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (s *ChallengeService) progressRecords(challengeID uint) ([]models.ChallengeProgress, error) {
	var records []models.ChallengeProgress
	err := s.db.Where("challenge_id = ?", challengeID).Find(&records).Error
	return records, err
}

func (s *ChallengeService) usersByID(ids []uint) (map[uint]models.User, error) {
	result := make(map[uint]models.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

// challengeGroupsWithProgress builds the ranked group standings for a
// challenge from its enrolled groups' active members.
func (s *ChallengeService) challengeGroupsWithProgress(ch *models.Challenge) ([]ChallengeGroupView, error) {
	var enrolled []models.ChallengeGroup
	err := s.db.Preload("Group.Members").
		Where("challenge_id = ? AND is_active = ?", ch.ID, true).
		Find(&enrolled).Error
	if err != nil {
		return nil, err
	}

	records, err := s.progressRecords(ch.ID)
	if err != nil {
		return nil, err
	}
	rows := toProgressRows(records)

	standings := make([]challenge.GroupStanding, 0, len(enrolled))
	info := make(map[uint]models.ChallengeGroup, len(enrolled))
	memberCounts := make(map[uint]int, len(enrolled))
	for _, cg := range enrolled {
		memberIDs := make([]uint, 0, len(cg.Group.Members))
		for _, m := range cg.Group.Members {
			if m.IsActive {
				memberIDs = append(memberIDs, m.UserID)
			}
		}
		standings = append(standings, challenge.GroupStanding{GroupID: cg.GroupID, MemberIDs: memberIDs})
		info[cg.GroupID] = cg
		memberCounts[cg.GroupID] = len(memberIDs)
	}

	ranked := challenge.RankGroups(standings, rows, ch.TargetDistanceKm)

	views := make([]ChallengeGroupView, 0, len(ranked))
	for _, g := range ranked {
		cg := info[g.GroupID]
		views = append(views, ChallengeGroupView{
			GroupID:              g.GroupID,
			GroupName:            cg.Group.Name,
			GroupIconURL:         cg.Group.IconURL,
			JoinedAt:             cg.JoinedAt,
			TotalDistanceCovered: g.DistanceKm,
			ProgressPercentage:   g.Percentage,
			MemberCount:          memberCounts[g.GroupID],
			Rank:                 g.Rank,
		})
	}
	return views, nil
}

func (s *ChallengeService) buildView(ch *models.Challenge, viewerID *uint) (*ChallengeView, error) {
	records, err := s.progressRecords(ch.ID)
	if err != nil {
		return nil, err
	}
	totalDistance, pct := challenge.AggregateForView(ch.ChallengeType, ch.TargetDistanceKm, toProgressRows(records), viewerID)

	groups, err := s.challengeGroupsWithProgress(ch)
	if err != nil {
		return nil, err
	}

	var participantCount int64
	err = s.db.Model(&models.ChallengeParticipant{}).
		Where("challenge_id = ? AND is_active = ?", ch.ID, true).
		Count(&participantCount).Error
	if err != nil {
		return nil, err
	}

	var creator models.User
	if err := s.db.First(&creator, ch.CreatedByUserID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	return &ChallengeView{
		ID:                   ch.ID,
		Name:                 ch.Name,
		Description:          ch.Description,
		TargetDistanceKm:     ch.TargetDistanceKm,
		StartDate:            ch.StartDate,
		EndDate:              ch.EndDate,
		ChallengeType:        ch.ChallengeType,
		RouteID:              ch.RouteID,
		CreatedByUserID:      ch.CreatedByUserID,
		CreatedByUsername:    creator.Username,
		CreatedAt:            ch.CreatedAt,
		ParticipantCount:     int(participantCount),
		TotalDistanceCovered: totalDistance,
		ProgressPercentage:   pct,
		Status:               challenge.Status(ch.StartDate, ch.EndDate, now),
		DaysRemaining:        challenge.DaysRemaining(ch.EndDate, now),
		ParticipatingGroups:  groups,
	}, nil
}

func toProgressRows(records []models.ChallengeProgress) []challenge.ProgressRow {
	rows := make([]challenge.ProgressRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, challenge.ProgressRow{
			UserID:     r.UserID,
			DistanceKm: r.DistanceCoveredKm,
			Percentage: r.ProgressPercentage,
		})
	}
	return rows
}

func progressView(p *models.ChallengeProgress, challengeName string, u models.User) ProgressView {
	return ProgressView{
		ChallengeID:        p.ChallengeID,
		ChallengeName:      challengeName,
		UserID:             p.UserID,
		Username:           u.Username,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		DistanceCoveredKm:  p.DistanceCoveredKm,
		ProgressPercentage: p.ProgressPercentage,
		CurrentPositionLat: p.CurrentPositionLat,
		CurrentPositionLng: p.CurrentPositionLng,
		LastActivityDate:   p.LastActivityDate,
		UpdatedAt:          p.UpdatedAt,
	}
}
