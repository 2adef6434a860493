package store

import (
	"testing"

	"github.com/dukerupert/chorewheel/internal/model"
)

func strPtr(s string) *string { return &s }

func sampleRoster(date string) model.DailyAssignments {
	return model.DailyAssignments{
		Date: date,
		Assignments: []model.Assignment{
			{
				ID: date + "-b", FamilyMemberID: "b", FamilyMemberName: "Bob",
				ChoreID: strPtr("dishes"), ChoreName: strPtr("Dishes"), Date: date,
			},
			{
				ID: date + "-a", FamilyMemberID: "a", FamilyMemberName: "Alice",
				Date: date, IsDayOff: true,
			},
			{
				ID: date + "-c", FamilyMemberID: "c", FamilyMemberName: "Carol",
				ChoreID: strPtr("trash"), ChoreName: strPtr("Trash"), Date: date,
			},
		},
	}
}

func TestAssignmentReplaceAndGet(t *testing.T) {
	s := NewAssignmentStore(setupTestDB(t))

	if err := s.Replace(sampleRoster("2024-01-01")); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.GetByDate("2024-01-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected roster for 2024-01-01")
	}
	if len(got.Assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(got.Assignments))
	}

	// Generation order is preserved
	wantOrder := []string{"b", "a", "c"}
	for i, id := range wantOrder {
		if got.Assignments[i].FamilyMemberID != id {
			t.Errorf("assignments[%d] member = %q, want %q", i, got.Assignments[i].FamilyMemberID, id)
		}
	}

	off := got.Assignments[1]
	if !off.IsDayOff || off.ChoreID != nil || off.ChoreName != nil {
		t.Errorf("expected day off with nil chore, got %+v", off)
	}
	dishes := got.Assignments[0]
	if dishes.IsDayOff || dishes.ChoreID == nil || *dishes.ChoreID != "dishes" || *dishes.ChoreName != "Dishes" {
		t.Errorf("expected dishes assignment, got %+v", dishes)
	}
	if dishes.ID != "2024-01-01-b" || dishes.Date != "2024-01-01" {
		t.Errorf("id/date = %q/%q", dishes.ID, dishes.Date)
	}
}

func TestAssignmentGetByDateMissing(t *testing.T) {
	s := NewAssignmentStore(setupTestDB(t))

	got, err := s.GetByDate("2024-01-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expected nil for a date with no roster")
	}
}

func TestAssignmentReplaceOverwritesDate(t *testing.T) {
	s := NewAssignmentStore(setupTestDB(t))

	if err := s.Replace(sampleRoster("2024-01-01")); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	second := model.DailyAssignments{
		Date: "2024-01-01",
		Assignments: []model.Assignment{
			{ID: "2024-01-01-a", FamilyMemberID: "a", FamilyMemberName: "Alice", Date: "2024-01-01", IsDayOff: true},
		},
	}
	if err := s.Replace(second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	history, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 roster after replace, got %d", len(history))
	}
	if len(history[0].Assignments) != 1 {
		t.Errorf("expected replaced roster with 1 assignment, got %d", len(history[0].Assignments))
	}
}

func TestAssignmentListNewestFirst(t *testing.T) {
	s := NewAssignmentStore(setupTestDB(t))

	for _, date := range []string{"2024-01-02", "2024-01-03", "2024-01-01"} {
		if err := s.Replace(sampleRoster(date)); err != nil {
			t.Fatalf("replace %s: %v", date, err)
		}
	}
	if err := s.Replace(model.DailyAssignments{Date: "2023-12-31", Assignments: []model.Assignment{}}); err != nil {
		t.Fatalf("replace empty roster: %v", err)
	}

	history, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2024-01-03", "2024-01-02", "2024-01-01", "2023-12-31"}
	if len(history) != len(want) {
		t.Fatalf("expected %d rosters, got %d", len(want), len(history))
	}
	for i, date := range want {
		if history[i].Date != date {
			t.Errorf("history[%d] = %q, want %q", i, history[i].Date, date)
		}
	}
	if history[3].Assignments == nil || len(history[3].Assignments) != 0 {
		t.Errorf("empty roster should have an empty, non-nil slice")
	}
}

func TestAssignmentDelete(t *testing.T) {
	s := NewAssignmentStore(setupTestDB(t))

	if err := s.Replace(sampleRoster("2024-01-01")); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := s.Delete("2024-01-01"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := s.GetByDate("2024-01-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expected roster to be gone")
	}

	if err := s.Delete("1999-01-01"); err != nil {
		t.Errorf("deleting a missing date should not fail: %v", err)
	}
}

func TestAssignmentReplaceAll(t *testing.T) {
	s := NewAssignmentStore(setupTestDB(t))

	if err := s.Replace(sampleRoster("2024-01-01")); err != nil {
		t.Fatalf("replace: %v", err)
	}

	imported := []model.DailyAssignments{sampleRoster("2024-02-01"), sampleRoster("2024-02-02")}
	if err := s.ReplaceAll(imported); err != nil {
		t.Fatalf("replace all: %v", err)
	}

	history, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 rosters, got %d", len(history))
	}
	if history[0].Date != "2024-02-02" || history[1].Date != "2024-02-01" {
		t.Errorf("dates = [%s %s]", history[0].Date, history[1].Date)
	}
}

func TestAssignmentHistorySurvivesDeletes(t *testing.T) {
	db := setupTestDB(t)
	members := NewFamilyMemberStore(db)
	chores := NewChoreStore(db)
	assignments := NewAssignmentStore(db)

	m, err := members.Create("Alice")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	c, err := chores.Create("Dishes", "")
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	roster := model.DailyAssignments{
		Date: "2024-01-01",
		Assignments: []model.Assignment{{
			ID: "2024-01-01-" + m.ID, FamilyMemberID: m.ID, FamilyMemberName: m.Name,
			ChoreID: &c.ID, ChoreName: &c.Name, Date: "2024-01-01",
		}},
	}
	if err := assignments.Replace(roster); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if err := members.Delete(m.ID); err != nil {
		t.Fatalf("delete member: %v", err)
	}
	if err := chores.Delete(c.ID); err != nil {
		t.Fatalf("delete chore: %v", err)
	}

	got, err := assignments.GetByDate("2024-01-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || len(got.Assignments) != 1 {
		t.Fatalf("expected history to survive deletes, got %+v", got)
	}
	if got.Assignments[0].FamilyMemberName != "Alice" || *got.Assignments[0].ChoreName != "Dishes" {
		t.Errorf("snapshot = %+v", got.Assignments[0])
	}
}

func TestAssignmentRejectsInconsistentDayOff(t *testing.T) {
	s := NewAssignmentStore(setupTestDB(t))

	bad := model.DailyAssignments{
		Date: "2024-01-01",
		Assignments: []model.Assignment{{
			ID: "2024-01-01-a", FamilyMemberID: "a", FamilyMemberName: "Alice",
			ChoreID: strPtr("dishes"), ChoreName: strPtr("Dishes"), Date: "2024-01-01", IsDayOff: true,
		}},
	}
	if err := s.Replace(bad); err == nil {
		t.Error("expected check constraint to reject a day off with a chore")
	}

	got, err := s.GetByDate("2024-01-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("failed replace should roll back")
	}
}
