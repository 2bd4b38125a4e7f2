package challenge

import "time"

const (
	StatusUpcoming   = "upcoming"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Status derives a challenge's lifecycle state from its window. Both
// boundaries resolve to in_progress: neither comparison fires when now
// equals a boundary.
func Status(startDate, endDate, now time.Time) string {
	if now.Before(startDate) {
		return StatusUpcoming
	}
	if now.After(endDate) {
		return StatusCompleted
	}
	return StatusInProgress
}

// DaysRemaining returns the whole days left until endDate, floored at zero.
func DaysRemaining(endDate, now time.Time) int {
	remaining := int(endDate.Sub(now).Hours() / 24)
	if remaining < 0 {
		return 0
	}
	return remaining
}
