package challenge

import (
	"reflect"
	"testing"
)

func TestRankOrdersByDistanceDescending(t *testing.T) {
	entries := []Entry{
		{ID: 1, DistanceKm: 40},
		{ID: 2, DistanceKm: 90},
		{ID: 3, DistanceKm: 10},
	}

	ranked := Rank(entries, nil)
	if ranked[0].ID != 2 || ranked[0].Rank != 1 {
		t.Fatalf("expected user 2 at rank 1, got %+v", ranked[0])
	}
	if ranked[1].ID != 1 || ranked[1].Rank != 2 {
		t.Fatalf("expected user 1 at rank 2, got %+v", ranked[1])
	}
	if ranked[2].ID != 3 || ranked[2].Rank != 3 {
		t.Fatalf("expected user 3 at rank 3, got %+v", ranked[2])
	}
}

func TestRankIsDeterministic(t *testing.T) {
	entries := []Entry{
		{ID: 5, DistanceKm: 12},
		{ID: 6, DistanceKm: 80},
		{ID: 7, DistanceKm: 80},
		{ID: 8, DistanceKm: 3},
	}

	first := Rank(entries, nil)
	second := Rank(entries, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-running with identical input changed the output")
	}

	seen := map[int]bool{}
	for _, e := range first {
		seen[e.Rank] = true
	}
	for i := 1; i <= len(entries); i++ {
		if !seen[i] {
			t.Fatalf("ranks are not a permutation of 1..n: %+v", first)
		}
	}
}

func TestRankTiesKeepInsertionOrder(t *testing.T) {
	entries := []Entry{
		{ID: 10, DistanceKm: 50},
		{ID: 11, DistanceKm: 50},
	}

	ranked := Rank(entries, nil)
	if ranked[0].ID != 10 || ranked[0].Rank != 1 {
		t.Fatalf("first inserted tie should rank 1, got %+v", ranked[0])
	}
	if ranked[1].ID != 11 || ranked[1].Rank != 2 {
		t.Fatalf("second inserted tie should rank 2, got %+v", ranked[1])
	}
}

func TestRankFlagsViewer(t *testing.T) {
	entries := []Entry{
		{ID: 1, DistanceKm: 40},
		{ID: 2, DistanceKm: 90},
	}
	viewer := uint(1)

	ranked := Rank(entries, &viewer)
	flagged := 0
	for _, e := range ranked {
		if e.IsViewer {
			flagged++
			if e.ID != 1 {
				t.Fatalf("wrong entry flagged as viewer: %+v", e)
			}
		}
	}
	if flagged != 1 {
		t.Fatalf("expected exactly one viewer flag, got %d", flagged)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	entries := []Entry{
		{ID: 1, DistanceKm: 10},
		{ID: 2, DistanceKm: 99},
	}
	Rank(entries, nil)
	if entries[0].ID != 1 || entries[0].Rank != 0 {
		t.Fatalf("input slice was mutated: %+v", entries)
	}
}

func TestRankGroups(t *testing.T) {
	rows := []ProgressRow{
		{UserID: 1, DistanceKm: 10},
		{UserID: 2, DistanceKm: 20},
		{UserID: 3, DistanceKm: 50},
		{UserID: 4, DistanceKm: 5},
	}
	groups := []GroupStanding{
		{GroupID: 100, MemberIDs: []uint{1, 2}}, // 30 km
		{GroupID: 200, MemberIDs: []uint{3, 4}}, // 55 km
	}

	ranked := RankGroups(groups, rows, 100)
	if ranked[0].GroupID != 200 || ranked[0].Rank != 1 {
		t.Fatalf("expected group 200 at rank 1, got %+v", ranked[0])
	}
	if ranked[0].DistanceKm != 55 || ranked[0].Percentage != 55 {
		t.Fatalf("unexpected group totals: %+v", ranked[0])
	}
	if ranked[1].GroupID != 100 || ranked[1].Rank != 2 || ranked[1].DistanceKm != 30 {
		t.Fatalf("expected group 100 at rank 2 with 30 km, got %+v", ranked[1])
	}
}

func TestRankGroupsZeroTarget(t *testing.T) {
	rows := []ProgressRow{{UserID: 1, DistanceKm: 10}}
	groups := []GroupStanding{{GroupID: 1, MemberIDs: []uint{1}}}

	ranked := RankGroups(groups, rows, 0)
	if ranked[0].Percentage != 0 {
		t.Fatalf("zero target must yield 0%%, got %v", ranked[0].Percentage)
	}
}
