package services

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ride_tracker/internal/metrics"
	"ride_tracker/internal/models"
)

// ActivitySource supplies newly recorded activities for a user, typically
// backed by a fitness-API integration. Returned distances are kilometers.
type ActivitySource interface {
	ActivitiesAfter(userID uint, after time.Time) ([]models.Activity, error)
}

// SyncService runs the periodic sweep: pull new activities, refresh user
// totals and overall route position, then recompute per-challenge progress
// for every active participation. A failure for one user never aborts the
// sweep for the others.
type SyncService struct {
	db         *gorm.DB
	routes     *RouteService
	challenges *ChallengeService
	source     ActivitySource
}

func NewSyncService(db *gorm.DB, routes *RouteService, challenges *ChallengeService, source ActivitySource) *SyncService {
	return &SyncService{db: db, routes: routes, challenges: challenges, source: source}
}

// SyncUser synchronizes a single user end to end.
func (s *SyncService) SyncUser(userID uint) error {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithField("user_id", userID).Warn("sync: user not found")
		return nil
	}
	if err != nil {
		return err
	}

	if s.source != nil {
		newActivities, err := s.source.ActivitiesAfter(userID, user.LastSync)
		if err != nil {
			return err
		}
		if len(newActivities) > 0 {
			for i := range newActivities {
				newActivities[i].UserID = userID
			}
			if err := s.db.Create(&newActivities).Error; err != nil {
				return err
			}
			for _, a := range newActivities {
				user.TotalDistanceKm += a.DistanceKm
				user.TotalMovingTimeSec += a.MovingTimeSec
			}
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"count":   len(newActivities),
			}).Info("sync: stored new activities")
		}
	}

	user.LastSync = time.Now().UTC()
	if err := s.db.Save(&user).Error; err != nil {
		return err
	}

	if err := s.updateUserProgress(&user); err != nil {
		return err
	}

	return s.refreshChallenges(userID)
}

// RefreshUserChallenges recomputes the user's overall standing and every
// active challenge participation from activities already on record,
// without contacting the activity source. Used after manual ingestion.
func (s *SyncService) RefreshUserChallenges(userID uint) error {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.updateUserProgress(&user); err != nil {
		return err
	}
	return s.refreshChallenges(userID)
}

// refreshChallenges recomputes every challenge the user actively
// participates in, logging and continuing on per-challenge failure.
func (s *SyncService) refreshChallenges(userID uint) error {
	var challengeIDs []uint
	err := s.db.Model(&models.ChallengeParticipant{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Pluck("challenge_id", &challengeIDs).Error
	if err != nil {
		return err
	}
	for _, challengeID := range challengeIDs {
		if err := s.challenges.UpdateChallengeProgress(challengeID, userID); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"user_id":      userID,
				"challenge_id": challengeID,
			}).Error("sync: challenge progress update failed")
		}
	}
	return nil
}

// SyncAllUsers sweeps every user, tolerating per-user failures.
func (s *SyncService) SyncAllUsers() error {
	metrics.SyncRuns.WithLabelValues("users").Inc()

	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return err
	}

	logrus.WithField("count", len(users)).Info("sync: starting full sweep")
	for _, user := range users {
		if err := s.SyncUser(user.ID); err != nil {
			metrics.SyncFailures.WithLabelValues("users").Inc()
			logrus.WithError(err).WithField("user_id", user.ID).Error("sync: user failed, continuing")
		}
	}
	logrus.Info("sync: full sweep complete")
	return nil
}

// SyncGroupChallenge refreshes every active member of a group challenge.
func (s *SyncService) SyncGroupChallenge(challengeID uint) error {
	return s.syncChallengeMembers(challengeID, models.ChallengeTypeGroup)
}

// SyncInterGroupChallenge refreshes every active member across all groups
// of an inter-group challenge.
func (s *SyncService) SyncInterGroupChallenge(challengeID uint) error {
	return s.syncChallengeMembers(challengeID, models.ChallengeTypeInterGroup)
}

func (s *SyncService) syncChallengeMembers(challengeID uint, challengeType string) error {
	var ch models.Challenge
	err := s.db.Preload("Groups.Group.Members").
		Where("id = ? AND is_active = ?", challengeID, true).
		First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && ch.ChallengeType != challengeType) {
		logrus.WithFields(logrus.Fields{
			"challenge_id": challengeID,
			"type":         challengeType,
		}).Warn("sync: challenge not found or wrong type")
		return nil
	}
	if err != nil {
		return err
	}

	seen := map[uint]struct{}{}
	memberIDs := []uint{}
	for _, cg := range ch.Groups {
		for _, m := range cg.Group.Members {
			if !m.IsActive {
				continue
			}
			if _, ok := seen[m.UserID]; ok {
				continue
			}
			seen[m.UserID] = struct{}{}
			memberIDs = append(memberIDs, m.UserID)
		}
	}

	log := logrus.WithFields(logrus.Fields{"challenge_id": challengeID, "type": challengeType})
	log.WithField("members", len(memberIDs)).Info("sync: challenge sweep start")

	for _, memberID := range memberIDs {
		if err := s.SyncUser(memberID); err != nil {
			metrics.SyncFailures.WithLabelValues(challengeType).Inc()
			log.WithError(err).WithField("user_id", memberID).Error("sync: member failed, continuing")
			continue
		}
		if err := s.challenges.UpdateChallengeProgress(challengeID, memberID); err != nil {
			metrics.SyncFailures.WithLabelValues(challengeType).Inc()
			log.WithError(err).WithField("user_id", memberID).Error("sync: progress update failed, continuing")
		}
	}

	log.Info("sync: challenge sweep complete")
	return nil
}

// SyncAllGroupChallenges sweeps every active group challenge.
func (s *SyncService) SyncAllGroupChallenges() error {
	return s.syncAllChallenges(models.ChallengeTypeGroup)
}

// SyncAllInterGroupChallenges sweeps every active inter-group challenge.
func (s *SyncService) SyncAllInterGroupChallenges() error {
	return s.syncAllChallenges(models.ChallengeTypeInterGroup)
}

func (s *SyncService) syncAllChallenges(challengeType string) error {
	metrics.SyncRuns.WithLabelValues(challengeType).Inc()

	var ids []uint
	err := s.db.Model(&models.Challenge{}).
		Where("challenge_type = ? AND is_active = ?", challengeType, true).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.syncChallengeMembers(id, challengeType); err != nil {
			logrus.WithError(err).WithField("challenge_id", id).Error("sync: challenge failed, continuing")
		}
	}
	return nil
}

// updateUserProgress recomputes the user's overall standing along the
// default route from lifetime distance. Distance, percentage and position
// all derive from one reading of TotalDistanceKm.
func (s *SyncService) updateUserProgress(user *models.User) error {
	coordinate, err := s.routes.CoordinateAtDistance(nil, user.TotalDistanceKm)
	if err != nil {
		return err
	}

	totalLength, err := s.routes.TotalLengthKm(nil)
	if err != nil {
		return err
	}
	pct := 0.0
	if totalLength > 0 {
		pct = (user.TotalDistanceKm / totalLength) * 100
		if pct > 100 {
			pct = 100
		}
	}

	var progress models.UserProgress
	err = s.db.Where("user_id = ?", user.ID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.UserProgress{UserID: user.ID}
	} else if err != nil {
		return err
	}

	progress.TotalDistanceKm = user.TotalDistanceKm
	progress.ProgressPercent = pct
	progress.CurrentLat = coordinate.Latitude
	progress.CurrentLng = coordinate.Longitude
	return s.db.Save(&progress).Error
}
