package assignment

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/dukerupert/chorewheel/internal/model"
)

func makeMembers(n int) []model.FamilyMember {
	members := make([]model.FamilyMember, n)
	for i := range members {
		members[i] = model.FamilyMember{
			ID:        fmt.Sprintf("m%d", i),
			Name:      fmt.Sprintf("Member %d", i),
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return members
}

func makeChores(n int) []model.Chore {
	chores := make([]model.Chore, n)
	for i := range chores {
		chores[i] = model.Chore{
			ID:        fmt.Sprintf("c%d", i),
			Name:      fmt.Sprintf("Chore %d", i),
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return chores
}

// checkInvariants asserts the structural properties every roster must satisfy.
func checkInvariants(t *testing.T, members []model.FamilyMember, chores []model.Chore, date string, got model.DailyAssignments) {
	t.Helper()

	if got.Date != date {
		t.Errorf("date = %q, want %q", got.Date, date)
	}
	if len(got.Assignments) != len(members) {
		t.Fatalf("got %d assignments, want %d", len(got.Assignments), len(members))
	}

	memberNames := make(map[string]string, len(members))
	for _, m := range members {
		memberNames[m.ID] = m.Name
	}
	choreNames := make(map[string]string, len(chores))
	for _, c := range chores {
		choreNames[c.ID] = c.Name
	}

	seenIDs := make(map[string]bool)
	seenMembers := make(map[string]bool)
	for _, a := range got.Assignments {
		if seenIDs[a.ID] {
			t.Errorf("duplicate assignment id %q", a.ID)
		}
		seenIDs[a.ID] = true

		if seenMembers[a.FamilyMemberID] {
			t.Errorf("member %q assigned twice", a.FamilyMemberID)
		}
		seenMembers[a.FamilyMemberID] = true

		name, ok := memberNames[a.FamilyMemberID]
		if !ok {
			t.Errorf("unknown member id %q", a.FamilyMemberID)
		}
		if a.FamilyMemberName != name {
			t.Errorf("member name = %q, want %q", a.FamilyMemberName, name)
		}
		if want := date + "-" + a.FamilyMemberID; a.ID != want {
			t.Errorf("id = %q, want %q", a.ID, want)
		}
		if a.Date != date {
			t.Errorf("assignment date = %q, want %q", a.Date, date)
		}

		if a.IsDayOff {
			if a.ChoreID != nil || a.ChoreName != nil {
				t.Errorf("day off for %q carries a chore", a.FamilyMemberID)
			}
			continue
		}
		if a.ChoreID == nil || a.ChoreName == nil {
			t.Fatalf("assignment for %q has no chore but is not a day off", a.FamilyMemberID)
		}
		cname, ok := choreNames[*a.ChoreID]
		if !ok {
			t.Errorf("chore id %q not in input", *a.ChoreID)
		}
		if *a.ChoreName != cname {
			t.Errorf("chore name = %q, want %q", *a.ChoreName, cname)
		}
	}

	dayOffs := got.DayOffCount()
	if len(chores) == 0 {
		if dayOffs != len(members) {
			t.Errorf("day offs = %d, want all %d", dayOffs, len(members))
		}
		return
	}
	if want := DayOffCount(len(members)); dayOffs < want {
		t.Errorf("day offs = %d, want at least %d", dayOffs, want)
	}
}

func choreCounts(d model.DailyAssignments) map[string]int {
	counts := make(map[string]int)
	for _, a := range d.Assignments {
		if a.ChoreID != nil {
			counts[*a.ChoreID]++
		}
	}
	return counts
}

func TestDayOffCount(t *testing.T) {
	tests := []struct {
		members int
		want    int
	}{
		{0, 1},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{5, 2},
		{7, 3},
		{10, 3},
		{11, 4},
		{20, 6},
	}
	for _, tt := range tests {
		if got := DayOffCount(tt.members); got != tt.want {
			t.Errorf("DayOffCount(%d) = %d, want %d", tt.members, got, tt.want)
		}
	}
}

func TestGenerateNoMembers(t *testing.T) {
	g := NewSeeded(1)
	got := g.Generate(nil, makeChores(3), "2024-03-03")

	if got.Date != "2024-03-03" {
		t.Errorf("date = %q, want %q", got.Date, "2024-03-03")
	}
	if got.Assignments == nil {
		t.Error("assignments should be an empty slice, not nil")
	}
	if len(got.Assignments) != 0 {
		t.Errorf("got %d assignments, want 0", len(got.Assignments))
	}
}

func TestGenerateThreeMembersTwoChores(t *testing.T) {
	members := []model.FamilyMember{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
		{ID: "c", Name: "C"},
	}
	chores := []model.Chore{
		{ID: "dishes", Name: "Dishes"},
		{ID: "trash", Name: "Trash"},
	}

	for seed := uint64(0); seed < 50; seed++ {
		got := NewSeeded(seed).Generate(members, chores, "2024-01-01")
		checkInvariants(t, members, chores, "2024-01-01", got)

		if n := got.DayOffCount(); n != 1 {
			t.Errorf("seed %d: day offs = %d, want 1", seed, n)
		}
		counts := choreCounts(got)
		if counts["dishes"] != 1 || counts["trash"] != 1 {
			t.Errorf("seed %d: chore counts = %v, want dishes and trash once each", seed, counts)
		}
	}
}

func TestGenerateNoChores(t *testing.T) {
	members := makeMembers(5)
	got := NewSeeded(7).Generate(members, nil, "2024-02-02")

	checkInvariants(t, members, nil, "2024-02-02", got)
	for _, a := range got.Assignments {
		if !a.IsDayOff {
			t.Errorf("%s: expected day off", a.FamilyMemberID)
		}
		if a.ChoreID != nil {
			t.Errorf("%s: chore id = %q, want nil", a.FamilyMemberID, *a.ChoreID)
		}
	}
}

func TestGenerateSingleMemberNoChores(t *testing.T) {
	members := makeMembers(1)
	got := NewSeeded(3).Generate(members, []model.Chore{}, "2024-02-02")
	checkInvariants(t, members, nil, "2024-02-02", got)
}

func TestGenerateRepeatsWhenShortOfSlots(t *testing.T) {
	members := makeMembers(10)
	chores := makeChores(2)

	sawRepeat := false
	for seed := uint64(0); seed < 50; seed++ {
		got := NewSeeded(seed).Generate(members, chores, "2024-05-05")
		checkInvariants(t, members, chores, "2024-05-05", got)

		if n := got.DayOffCount(); n != DayOffCount(10) {
			t.Errorf("seed %d: day offs = %d, want %d", seed, n, DayOffCount(10))
		}
		for id, n := range choreCounts(got) {
			if n > 1 {
				sawRepeat = true
			}
			if id != "c0" && id != "c1" {
				t.Errorf("seed %d: unexpected chore %q", seed, id)
			}
		}
	}
	if !sawRepeat {
		t.Error("expected repeated chores with 10 members and 2 chores")
	}
}

func TestGenerateNoRepeatsWhenSlotsSuffice(t *testing.T) {
	tests := []struct {
		name    string
		members int
		chores  int
	}{
		{"exact fit", 4, 2},
		{"more chores than members", 3, 8},
		{"one member", 1, 1},
		{"many chores", 6, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := makeMembers(tt.members)
			chores := makeChores(tt.chores)
			for seed := uint64(0); seed < 30; seed++ {
				got := NewSeeded(seed).Generate(members, chores, "2024-06-06")
				checkInvariants(t, members, chores, "2024-06-06", got)
				for id, n := range choreCounts(got) {
					if n > 1 {
						t.Errorf("seed %d: chore %q assigned %d times", seed, id, n)
					}
				}
			}
		})
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	members := makeMembers(6)
	chores := makeChores(4)

	a := NewSeeded(42).Generate(members, chores, "2024-07-07")
	b := NewSeeded(42).Generate(members, chores, "2024-07-07")
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should produce the same roster")
	}
}

func TestGenerateVariesAcrossRuns(t *testing.T) {
	members := makeMembers(6)
	chores := makeChores(4)

	g := NewSeeded(99)
	first := g.Generate(members, chores, "2024-07-07")
	for i := 0; i < 20; i++ {
		if !reflect.DeepEqual(first, g.Generate(members, chores, "2024-07-07")) {
			return
		}
	}
	t.Error("21 consecutive rosters were identical")
}

func TestGenerateDoesNotMutateInputs(t *testing.T) {
	members := makeMembers(5)
	chores := makeChores(3)
	wantMembers := append([]model.FamilyMember(nil), members...)
	wantChores := append([]model.Chore(nil), chores...)

	Default().Generate(members, chores, "2024-08-08")

	if !reflect.DeepEqual(members, wantMembers) {
		t.Error("members slice was modified")
	}
	if !reflect.DeepEqual(chores, wantChores) {
		t.Error("chores slice was modified")
	}
}

func TestGenerateSnapshotsNames(t *testing.T) {
	members := makeMembers(2)
	chores := makeChores(5)

	got := NewSeeded(5).Generate(members, chores, "2024-09-09")
	for i := range members {
		members[i].Name = "Renamed"
	}
	for i := range chores {
		chores[i].Name = "Renamed"
	}

	for _, a := range got.Assignments {
		if a.FamilyMemberName == "Renamed" {
			t.Errorf("member name for %q should be a snapshot", a.FamilyMemberID)
		}
		if a.ChoreName != nil && *a.ChoreName == "Renamed" {
			t.Errorf("chore name for %q should be a snapshot", a.FamilyMemberID)
		}
	}
	if got.DayOffCount() != 1 {
		t.Errorf("day offs = %d, want 1", got.DayOffCount())
	}
}

func TestGenerateMixedSizes(t *testing.T) {
	g := NewSeeded(2024)
	for m := 0; m <= 12; m++ {
		for c := 0; c <= 12; c++ {
			members := makeMembers(m)
			chores := makeChores(c)
			got := g.Generate(members, chores, "2024-10-10")
			if m == 0 {
				if len(got.Assignments) != 0 {
					t.Errorf("m=0 c=%d: got %d assignments", c, len(got.Assignments))
				}
				continue
			}
			checkInvariants(t, members, chores, "2024-10-10", got)
			if c+DayOffCount(m) >= m {
				for id, n := range choreCounts(got) {
					if n > 1 {
						t.Errorf("m=%d c=%d: chore %q repeated", m, c, id)
					}
				}
			}
		}
	}
}

func TestShufflePermutes(t *testing.T) {
	g := NewSeeded(11)
	s := []int{0, 1, 2, 3, 4, 5, 6, 7}
	Shuffle(g.rng, s)

	seen := make(map[int]bool)
	for _, v := range s {
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Errorf("shuffle lost elements: %v", s)
	}

	var empty []int
	Shuffle(g.rng, empty)
	one := []int{1}
	Shuffle(g.rng, one)
	if one[0] != 1 {
		t.Errorf("single element shuffle changed value: %v", one)
	}
}

func TestShuffleCoversAllPositions(t *testing.T) {
	g := NewSeeded(12)
	// Every element should land in every position over enough trials.
	var hits [4][4]int
	for i := 0; i < 2000; i++ {
		s := []int{0, 1, 2, 3}
		Shuffle(g.rng, s)
		for pos, v := range s {
			hits[v][pos]++
		}
	}
	for v := range hits {
		for pos, n := range hits[v] {
			if n < 300 {
				t.Errorf("element %d landed at position %d only %d times", v, pos, n)
			}
		}
	}
}
