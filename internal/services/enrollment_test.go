package services

import (
	"errors"
	"testing"
	"time"

	"ride_tracker/internal/models"
)

type pairKey struct {
	challengeID uint
	userID      uint
}

// memoryEnrollmentStore keeps participation and progress rows in maps so
// the enrollment invariants can be tested without a database.
type memoryEnrollmentStore struct {
	participants map[pairKey]models.ChallengeParticipant
	progress     map[pairKey]models.ChallengeProgress
	members      map[uint][]uint
	failJoinFor  map[uint]bool
}

func newMemoryEnrollmentStore() *memoryEnrollmentStore {
	return &memoryEnrollmentStore{
		participants: map[pairKey]models.ChallengeParticipant{},
		progress:     map[pairKey]models.ChallengeProgress{},
		members:      map[uint][]uint{},
		failJoinFor:  map[uint]bool{},
	}
}

func (m *memoryEnrollmentStore) Participant(challengeID, userID uint) (*models.ChallengeParticipant, error) {
	if p, ok := m.participants[pairKey{challengeID, userID}]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *memoryEnrollmentStore) SaveParticipant(p *models.ChallengeParticipant) error {
	m.participants[pairKey{p.ChallengeID, p.UserID}] = *p
	return nil
}

func (m *memoryEnrollmentStore) CreateParticipant(p *models.ChallengeParticipant) error {
	if m.failJoinFor[p.UserID] {
		return errors.New("insert failed")
	}
	m.participants[pairKey{p.ChallengeID, p.UserID}] = *p
	return nil
}

func (m *memoryEnrollmentStore) HasProgress(challengeID, userID uint) (bool, error) {
	_, ok := m.progress[pairKey{challengeID, userID}]
	return ok, nil
}

func (m *memoryEnrollmentStore) CreateProgress(p *models.ChallengeProgress) error {
	m.progress[pairKey{p.ChallengeID, p.UserID}] = *p
	return nil
}

func (m *memoryEnrollmentStore) ActiveMemberIDs(groupID, excludeUserID uint) ([]uint, error) {
	var ids []uint
	for _, id := range m.members[groupID] {
		if id != excludeUserID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func TestEnrollCreatesZeroInitializedProgress(t *testing.T) {
	store := newMemoryEnrollmentStore()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	joined, err := enroll(store, 1, 5, now)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if !joined {
		t.Fatal("expected first join to report true")
	}

	p := store.participants[pairKey{1, 5}]
	if !p.IsActive || !p.JoinedAt.Equal(now) {
		t.Errorf("participant = active %v joined %v, want active at %v", p.IsActive, p.JoinedAt, now)
	}

	progress, ok := store.progress[pairKey{1, 5}]
	if !ok {
		t.Fatal("expected a progress row to be created")
	}
	if progress.DistanceCoveredKm != 0 || progress.ProgressPercentage != 0 ||
		progress.CurrentPositionLat != nil || progress.CurrentPositionLng != nil {
		t.Errorf("progress row not zero-initialized: %+v", progress)
	}
}

func TestEnrollWhileActiveIsNoOp(t *testing.T) {
	store := newMemoryEnrollmentStore()
	now := time.Now().UTC()

	if _, err := enroll(store, 1, 5, now); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	joined, err := enroll(store, 1, 5, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second enroll: %v", err)
	}
	if joined {
		t.Error("expected re-join while active to report false")
	}
	if len(store.participants) != 1 || len(store.progress) != 1 {
		t.Errorf("rows = %d participants, %d progress, want 1 and 1",
			len(store.participants), len(store.progress))
	}
}

func TestEnrollReactivatesWithoutDuplicatingProgress(t *testing.T) {
	store := newMemoryEnrollmentStore()
	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.participants[pairKey{1, 5}] = models.ChallengeParticipant{
		ChallengeID: 1, UserID: 5, JoinedAt: old, IsActive: false,
	}
	store.progress[pairKey{1, 5}] = models.ChallengeProgress{
		ChallengeID: 1, UserID: 5, DistanceCoveredKm: 12.5,
	}

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	joined, err := enroll(store, 1, 5, now)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if !joined {
		t.Fatal("expected reactivation to report true")
	}

	p := store.participants[pairKey{1, 5}]
	if !p.IsActive {
		t.Error("participant not reactivated")
	}
	if !p.JoinedAt.Equal(now) {
		t.Errorf("JoinedAt = %v, want fresh %v", p.JoinedAt, now)
	}
	if len(store.progress) != 1 {
		t.Fatalf("progress rows = %d, want the existing one kept", len(store.progress))
	}
	if got := store.progress[pairKey{1, 5}].DistanceCoveredKm; got != 12.5 {
		t.Errorf("existing progress overwritten: distance = %v, want 12.5", got)
	}
}

func TestWithdrawCreatorCannotLeave(t *testing.T) {
	store := newMemoryEnrollmentStore()
	ch := &models.Challenge{CreatedByUserID: 5}
	ch.ID = 1

	if _, err := enroll(store, 1, 5, time.Now().UTC()); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	left, err := withdraw(store, ch, 5)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if left {
		t.Error("creator must not be able to leave their own challenge")
	}
	if !store.participants[pairKey{1, 5}].IsActive {
		t.Error("creator participation was deactivated")
	}
}

func TestWithdrawWithoutActiveParticipationIsNoOp(t *testing.T) {
	store := newMemoryEnrollmentStore()
	ch := &models.Challenge{CreatedByUserID: 1}
	ch.ID = 1

	left, err := withdraw(store, ch, 5)
	if err != nil || left {
		t.Errorf("withdraw with no row = (%v, %v), want (false, nil)", left, err)
	}

	store.participants[pairKey{1, 5}] = models.ChallengeParticipant{
		ChallengeID: 1, UserID: 5, IsActive: false,
	}
	left, err = withdraw(store, ch, 5)
	if err != nil || left {
		t.Errorf("withdraw while inactive = (%v, %v), want (false, nil)", left, err)
	}
}

func TestWithdrawDeactivatesParticipant(t *testing.T) {
	store := newMemoryEnrollmentStore()
	ch := &models.Challenge{CreatedByUserID: 1}
	ch.ID = 1

	if _, err := enroll(store, 1, 5, time.Now().UTC()); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	left, err := withdraw(store, ch, 5)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if !left {
		t.Fatal("expected withdraw to report true")
	}
	if store.participants[pairKey{1, 5}].IsActive {
		t.Error("participant still active after withdraw")
	}
}

func TestCreationCascadeEnrollsAllGroupMembersOnce(t *testing.T) {
	store := newMemoryEnrollmentStore()
	// Creator 1 belongs to the first group; two groups of three members.
	store.members[10] = []uint{1, 2, 3}
	store.members[20] = []uint{4, 5, 6}

	now := time.Now().UTC()
	if err := cascadeEnroll(store, 1, 1, []uint{10, 20}, now); err != nil {
		t.Fatalf("cascadeEnroll: %v", err)
	}

	if len(store.participants) != 6 {
		t.Fatalf("participants = %d, want 6", len(store.participants))
	}
	if len(store.progress) != 6 {
		t.Fatalf("progress rows = %d, want 6", len(store.progress))
	}
	for userID := uint(1); userID <= 6; userID++ {
		p, ok := store.participants[pairKey{1, userID}]
		if !ok || !p.IsActive {
			t.Errorf("user %d not actively enrolled", userID)
		}
		progress := store.progress[pairKey{1, userID}]
		if progress.DistanceCoveredKm != 0 || progress.ProgressPercentage != 0 {
			t.Errorf("user %d progress not zero-initialized: %+v", userID, progress)
		}
	}
}

func TestCreationCascadeContinuesPastMemberFailure(t *testing.T) {
	store := newMemoryEnrollmentStore()
	store.members[10] = []uint{2, 3, 4}
	store.failJoinFor[3] = true

	if err := cascadeEnroll(store, 1, 1, []uint{10}, time.Now().UTC()); err != nil {
		t.Fatalf("cascadeEnroll: %v", err)
	}

	for _, userID := range []uint{1, 2, 4} {
		if _, ok := store.participants[pairKey{1, userID}]; !ok {
			t.Errorf("user %d missing after cascade", userID)
		}
	}
	if _, ok := store.participants[pairKey{1, 3}]; ok {
		t.Error("failed member unexpectedly enrolled")
	}
}
