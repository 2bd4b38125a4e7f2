package services

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ride_tracker/internal/models"
)

// enrollmentStore is the persistence seam for challenge enrollment,
// deliberately small so the join/leave/cascade invariants can be exercised
// against an in-memory implementation.
type enrollmentStore interface {
	// Participant returns the participation row, nil when none exists.
	Participant(challengeID, userID uint) (*models.ChallengeParticipant, error)
	SaveParticipant(p *models.ChallengeParticipant) error
	CreateParticipant(p *models.ChallengeParticipant) error
	// HasProgress reports whether a progress row exists for the pair.
	HasProgress(challengeID, userID uint) (bool, error)
	CreateProgress(p *models.ChallengeProgress) error
	// ActiveMemberIDs lists a group's active members minus one user.
	ActiveMemberIDs(groupID, excludeUserID uint) ([]uint, error)
}

// enroll joins one user into a challenge. An inactive prior record is
// reactivated with a fresh JoinedAt rather than duplicated, and a progress
// row is created at zero if none exists. Joining while already active is a
// no-op false.
func enroll(store enrollmentStore, challengeID, userID uint, now time.Time) (bool, error) {
	participant, err := store.Participant(challengeID, userID)
	if err != nil {
		return false, err
	}
	switch {
	case participant == nil:
		p := models.ChallengeParticipant{
			ChallengeID: challengeID,
			UserID:      userID,
			JoinedAt:    now,
			IsActive:    true,
		}
		if err := store.CreateParticipant(&p); err != nil {
			return false, err
		}
	case participant.IsActive:
		return false, nil
	default:
		participant.IsActive = true
		participant.JoinedAt = now
		if err := store.SaveParticipant(participant); err != nil {
			return false, err
		}
	}

	has, err := store.HasProgress(challengeID, userID)
	if err != nil {
		return false, err
	}
	if !has {
		progress := models.ChallengeProgress{ChallengeID: challengeID, UserID: userID}
		if err := store.CreateProgress(&progress); err != nil {
			return false, err
		}
	}
	return true, nil
}

// withdraw deactivates a participation. The creator can never leave their
// own challenge; leaving without active participation is a no-op false.
func withdraw(store enrollmentStore, ch *models.Challenge, userID uint) (bool, error) {
	participant, err := store.Participant(ch.ID, userID)
	if err != nil {
		return false, err
	}
	if participant == nil || !participant.IsActive {
		return false, nil
	}
	if ch.CreatedByUserID == userID {
		return false, nil
	}

	participant.IsActive = false
	if err := store.SaveParticipant(participant); err != nil {
		return false, err
	}
	return true, nil
}

// cascadeEnroll joins the creator, then fans out to every active member of
// the given groups. The creator's join aborts on error; member failures
// are logged and skipped so one bad row never sinks the whole cascade.
// Members appearing in several groups, or being the creator, end up with a
// single participation because re-joining is a no-op.
func cascadeEnroll(store enrollmentStore, challengeID, creatorID uint, groupIDs []uint, now time.Time) error {
	if _, err := enroll(store, challengeID, creatorID, now); err != nil {
		return err
	}

	for _, groupID := range groupIDs {
		memberIDs, err := store.ActiveMemberIDs(groupID, creatorID)
		if err != nil {
			return err
		}
		for _, memberID := range memberIDs {
			if _, err := enroll(store, challengeID, memberID, now); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"challenge_id": challengeID,
					"user_id":      memberID,
				}).Error("auto-join failed, continuing cascade")
			}
		}
	}
	return nil
}

type gormEnrollmentStore struct {
	db *gorm.DB
}

func (g gormEnrollmentStore) Participant(challengeID, userID uint) (*models.ChallengeParticipant, error) {
	var p models.ChallengeParticipant
	err := g.db.Where("challenge_id = ? AND user_id = ?", challengeID, userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (g gormEnrollmentStore) SaveParticipant(p *models.ChallengeParticipant) error {
	return g.db.Save(p).Error
}

func (g gormEnrollmentStore) CreateParticipant(p *models.ChallengeParticipant) error {
	return g.db.Create(p).Error
}

func (g gormEnrollmentStore) HasProgress(challengeID, userID uint) (bool, error) {
	var count int64
	err := g.db.Model(&models.ChallengeProgress{}).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Count(&count).Error
	return count > 0, err
}

func (g gormEnrollmentStore) CreateProgress(p *models.ChallengeProgress) error {
	return g.db.Create(p).Error
}

func (g gormEnrollmentStore) ActiveMemberIDs(groupID, excludeUserID uint) ([]uint, error) {
	var ids []uint
	err := g.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND is_active = ? AND user_id <> ?", groupID, true, excludeUserID).
		Pluck("user_id", &ids).Error
	return ids, err
}
