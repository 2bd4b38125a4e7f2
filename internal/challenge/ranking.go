package challenge

import "sort"

// Entry is one leaderboard row prior to ranking.
type Entry struct {
	ID         uint
	DistanceKm float64
	Rank       int
	IsViewer   bool
}

// Rank orders entries by distance descending and assigns sequential
// 1-based ranks. Equal distances keep their original relative order and
// still get distinct consecutive ranks; there is no shared-rank handling.
// When viewerID matches an entry it is flagged as the viewer's row.
func Rank(entries []Entry, viewerID *uint) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm > ranked[j].DistanceKm
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].IsViewer = viewerID != nil && ranked[i].ID == *viewerID
	}
	return ranked
}

// GroupStanding names a competing group and its active member set.
type GroupStanding struct {
	GroupID   uint
	MemberIDs []uint
}

// GroupEntry is one ranked group on an inter-group leaderboard.
type GroupEntry struct {
	GroupID    uint
	DistanceKm float64
	Percentage float64
	Rank       int
}

// RankGroups totals each group's distance over its active members and
// ranks groups the same way participants are ranked.
func RankGroups(groups []GroupStanding, rows []ProgressRow, targetKm float64) []GroupEntry {
	entries := make([]GroupEntry, 0, len(groups))
	for _, g := range groups {
		distance := SumForMembers(rows, g.MemberIDs)
		entries = append(entries, GroupEntry{
			GroupID:    g.GroupID,
			DistanceKm: distance,
			Percentage: Percentage(distance, targetKm),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DistanceKm > entries[j].DistanceKm
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
