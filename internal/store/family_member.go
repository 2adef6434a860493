package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/chorewheel/internal/model"
	"github.com/google/uuid"
)

type FamilyMemberStore struct {
	db *sql.DB
}

func NewFamilyMemberStore(db *sql.DB) *FamilyMemberStore {
	return &FamilyMemberStore{db: db}
}

const memberCols = `id, name, created_at`

func (s *FamilyMemberStore) Create(name string) (*model.FamilyMember, error) {
	m := model.FamilyMember{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		"INSERT INTO family_members (id, name, created_at) VALUES (?, ?, ?)",
		m.ID, m.Name, m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert family member: %w", err)
	}
	return &m, nil
}

// List returns members in the order they were added.
func (s *FamilyMemberStore) List() ([]model.FamilyMember, error) {
	rows, err := s.db.Query("SELECT " + memberCols + " FROM family_members ORDER BY created_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("query family members: %w", err)
	}
	defer rows.Close()

	var members []model.FamilyMember
	for rows.Next() {
		var m model.FamilyMember
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan family member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *FamilyMemberStore) GetByID(id string) (*model.FamilyMember, error) {
	var m model.FamilyMember
	err := s.db.QueryRow(
		"SELECT "+memberCols+" FROM family_members WHERE id = ?",
		id,
	).Scan(&m.ID, &m.Name, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query family member: %w", err)
	}
	return &m, nil
}

func (s *FamilyMemberStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM family_members WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete family member: %w", err)
	}
	return nil
}

func (s *FamilyMemberStore) NameExists(name string, excludeID string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM family_members WHERE name = ? AND id != ?",
		name, excludeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check name exists: %w", err)
	}
	return count > 0, nil
}
