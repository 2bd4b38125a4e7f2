package challenge

import (
	"time"

	"ride_tracker/internal/models"
)

// ProgressRow is the slice of a progress record the aggregation and
// ranking rules operate on.
type ProgressRow struct {
	UserID     uint
	DistanceKm float64
	Percentage float64
}

// Percentage computes distance against target, capped at 100. A target of
// zero or less always yields 0, never a division error.
func Percentage(distanceKm, targetKm float64) float64 {
	if targetKm <= 0 {
		return 0
	}
	pct := (distanceKm / targetKm) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// SumActivitiesInWindow filters activities to those starting within
// [start, end] inclusive and returns their total distance plus the latest
// start date, or nil when nothing falls in the window.
func SumActivitiesInWindow(activities []models.Activity, start, end time.Time) (float64, *time.Time) {
	total := 0.0
	var last *time.Time

	for i := range activities {
		a := &activities[i]
		if a.StartDate.Before(start) || a.StartDate.After(end) {
			continue
		}
		total += a.DistanceKm
		if last == nil || a.StartDate.After(*last) {
			t := a.StartDate
			last = &t
		}
	}
	return total, last
}

// SumDistances totals covered distance across progress rows.
func SumDistances(rows []ProgressRow) float64 {
	total := 0.0
	for _, r := range rows {
		total += r.DistanceKm
	}
	return total
}

// AggregateForView applies the type-dependent display rule. Group
// challenges show the viewer their own standing; individual and
// inter-group challenges (and group challenges without a viewer) show the
// sum across all participants.
func AggregateForView(challengeType string, targetKm float64, rows []ProgressRow, viewerID *uint) (float64, float64) {
	if challengeType == models.ChallengeTypeGroup && viewerID != nil {
		distance := 0.0
		for _, r := range rows {
			if r.UserID == *viewerID {
				distance = r.DistanceKm
				break
			}
		}
		return distance, Percentage(distance, targetKm)
	}

	total := SumDistances(rows)
	return total, Percentage(total, targetKm)
}

// SumForMembers totals covered distance over the given member set.
func SumForMembers(rows []ProgressRow, memberIDs []uint) float64 {
	members := make(map[uint]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = struct{}{}
	}

	total := 0.0
	for _, r := range rows {
		if _, ok := members[r.UserID]; ok {
			total += r.DistanceKm
		}
	}
	return total
}
