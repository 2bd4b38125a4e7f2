package services

import (
	"errors"

	"gorm.io/gorm"

	"ride_tracker/internal/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUser returns the user, or nil when missing.
func (s *UserService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserProgress returns the user's overall route standing, or nil when
// the sweep has not produced one yet.
func (s *UserService) GetUserProgress(userID uint) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := s.db.Where("user_id = ?", userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// AddActivity stores a ride and rolls it into the user's lifetime totals
// in one transaction.
func (s *UserService) AddActivity(activity models.Activity) (*models.Activity, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, activity.UserID).Error; err != nil {
			return err
		}

		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		user.TotalDistanceKm += activity.DistanceKm
		user.TotalMovingTimeSec += activity.MovingTimeSec
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// ListActivities returns a user's rides, newest first.
func (s *UserService) ListActivities(userID uint) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.db.Where("user_id = ?", userID).Order("start_date desc").Find(&activities).Error
	return activities, err
}
