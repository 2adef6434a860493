package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/chorewheel/internal/model"
	"github.com/google/uuid"
)

type ChoreStore struct {
	db *sql.DB
}

func NewChoreStore(db *sql.DB) *ChoreStore {
	return &ChoreStore{db: db}
}

func scanChore(scanner interface{ Scan(...any) error }) (*model.Chore, error) {
	var c model.Chore
	if err := scanner.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

const choreCols = `id, name, description, created_at`

func (s *ChoreStore) Create(name, description string) (*model.Chore, error) {
	c := model.Chore{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO chores (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, c.CreatedAt, c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert chore: %w", err)
	}
	return &c, nil
}

func (s *ChoreStore) GetByID(id string) (*model.Chore, error) {
	row := s.db.QueryRow(`SELECT `+choreCols+` FROM chores WHERE id = ?`, id)
	c, err := scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", err)
	}
	return c, nil
}

// List returns chores in the order they were added.
func (s *ChoreStore) List() ([]model.Chore, error) {
	rows, err := s.db.Query(`SELECT ` + choreCols + ` FROM chores ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	defer rows.Close()

	var chores []model.Chore
	for rows.Next() {
		c, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}
		chores = append(chores, *c)
	}
	return chores, rows.Err()
}

// Update replaces name and description. ID and creation time are kept.
// Returns nil when no chore has the id.
func (s *ChoreStore) Update(id, name, description string) (*model.Chore, error) {
	_, err := s.db.Exec(
		`UPDATE chores SET name = ?, description = ? WHERE id = ?`,
		name, description, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update chore: %w", err)
	}
	return s.GetByID(id)
}

func (s *ChoreStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM chores WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete chore: %w", err)
	}
	return nil
}
