package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/chorewheel/internal/model"
)

// AssignmentStore persists daily rosters. Each date holds at most one roster;
// saving a date again replaces it.
type AssignmentStore struct {
	db *sql.DB
}

func NewAssignmentStore(db *sql.DB) *AssignmentStore {
	return &AssignmentStore{db: db}
}

func scanAssignment(scanner interface{ Scan(...any) error }) (*model.Assignment, error) {
	var a model.Assignment
	var choreID, choreName sql.NullString

	err := scanner.Scan(
		&a.ID, &a.Date, &a.FamilyMemberID, &a.FamilyMemberName,
		&choreID, &choreName, &a.IsDayOff,
	)
	if err != nil {
		return nil, err
	}

	if choreID.Valid {
		a.ChoreID = &choreID.String
	}
	if choreName.Valid {
		a.ChoreName = &choreName.String
	}
	return &a, nil
}

const assignmentCols = `id, date, family_member_id, family_member_name, chore_id, chore_name, is_day_off`

// List returns every stored roster, newest date first.
func (s *AssignmentStore) List() ([]model.DailyAssignments, error) {
	rows, err := s.db.Query(
		`SELECT ` + assignmentCols + ` FROM assignments ORDER BY date DESC, position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	byDate := make(map[string][]model.Assignment)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		byDate[a.Date] = append(byDate[a.Date], *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dates, err := s.listDates()
	if err != nil {
		return nil, err
	}

	history := make([]model.DailyAssignments, 0, len(dates))
	for _, date := range dates {
		assignments := byDate[date]
		if assignments == nil {
			assignments = []model.Assignment{}
		}
		history = append(history, model.DailyAssignments{Date: date, Assignments: assignments})
	}
	return history, nil
}

func (s *AssignmentStore) listDates() ([]string, error) {
	rows, err := s.db.Query(`SELECT date FROM daily_assignments ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// GetByDate returns the roster for date, or nil if none was generated.
func (s *AssignmentStore) GetByDate(date string) (*model.DailyAssignments, error) {
	var exists int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM daily_assignments WHERE date = ?`, date).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check date: %w", err)
	}
	if exists == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(
		`SELECT `+assignmentCols+` FROM assignments WHERE date = ? ORDER BY position ASC`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("get assignments: %w", err)
	}
	defer rows.Close()

	daily := model.DailyAssignments{Date: date, Assignments: []model.Assignment{}}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		daily.Assignments = append(daily.Assignments, *a)
	}
	return &daily, rows.Err()
}

// Replace stores daily, discarding any roster previously saved for its date.
func (s *AssignmentStore) Replace(daily model.DailyAssignments) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := replaceTx(tx, daily); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceAll swaps the whole history for the given rosters.
func (s *AssignmentStore) ReplaceAll(history []model.DailyAssignments) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM assignments`); err != nil {
		return fmt.Errorf("clear assignments: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM daily_assignments`); err != nil {
		return fmt.Errorf("clear dates: %w", err)
	}
	for _, daily := range history {
		if err := replaceTx(tx, daily); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func replaceTx(tx *sql.Tx, daily model.DailyAssignments) error {
	if _, err := tx.Exec(`DELETE FROM assignments WHERE date = ?`, daily.Date); err != nil {
		return fmt.Errorf("delete assignments for %s: %w", daily.Date, err)
	}
	if _, err := tx.Exec(`DELETE FROM daily_assignments WHERE date = ?`, daily.Date); err != nil {
		return fmt.Errorf("delete date %s: %w", daily.Date, err)
	}
	if _, err := tx.Exec(`INSERT INTO daily_assignments (date) VALUES (?)`, daily.Date); err != nil {
		return fmt.Errorf("insert date %s: %w", daily.Date, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO assignments (id, date, position, family_member_id, family_member_name, chore_id, chore_name, is_day_off)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for i, a := range daily.Assignments {
		var choreID, choreName sql.NullString
		if a.ChoreID != nil {
			choreID = sql.NullString{String: *a.ChoreID, Valid: true}
		}
		if a.ChoreName != nil {
			choreName = sql.NullString{String: *a.ChoreName, Valid: true}
		}
		if _, err := stmt.Exec(a.ID, daily.Date, i, a.FamilyMemberID, a.FamilyMemberName, choreID, choreName, a.IsDayOff); err != nil {
			return fmt.Errorf("insert assignment %s: %w", a.ID, err)
		}
	}
	return nil
}

// Delete removes the roster for date. Deleting a missing date is not an error.
func (s *AssignmentStore) Delete(date string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM assignments WHERE date = ?`, date); err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM daily_assignments WHERE date = ?`, date); err != nil {
		return fmt.Errorf("delete date: %w", err)
	}
	return tx.Commit()
}
