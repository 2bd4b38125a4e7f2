package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"ride_tracker/internal/services"
)

// Scheduler runs the periodic sync sweeps: all users first, then group
// and inter-group challenges.
type Scheduler struct {
	cron *cron.Cron
	sync *services.SyncService
}

func New(sync *services.SyncService) *Scheduler {
	return &Scheduler{cron: cron.New(), sync: sync}
}

// Start registers the sweep on the given cron spec and starts the
// scheduler in the background.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.runSweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	logrus.WithField("spec", spec).Info("scheduler: sync sweep registered")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runSweep() {
	if err := s.sync.SyncAllUsers(); err != nil {
		logrus.WithError(err).Error("scheduler: user sweep failed")
	}
	if err := s.sync.SyncAllGroupChallenges(); err != nil {
		logrus.WithError(err).Error("scheduler: group challenge sweep failed")
	}
	if err := s.sync.SyncAllInterGroupChallenges(); err != nil {
		logrus.WithError(err).Error("scheduler: inter-group challenge sweep failed")
	}
}
