package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/chorewheel/internal/model"
)

type BackupStore struct {
	db *sql.DB
}

func NewBackupStore(db *sql.DB) *BackupStore {
	return &BackupStore{db: db}
}

const backupColumns = `id, object_key, size_bytes, days, status, error_message, created_at, completed_at`

func scanBackup(scanner interface{ Scan(...any) error }) (*model.Backup, error) {
	b := &model.Backup{}
	var errMsg sql.NullString
	var completedAt sql.NullTime
	if err := scanner.Scan(&b.ID, &b.Key, &b.SizeBytes, &b.Days, &b.Status, &errMsg, &b.CreatedAt, &completedAt); err != nil {
		return nil, err
	}
	b.ErrorMessage = errMsg.String
	if completedAt.Valid {
		b.CompletedAt = &completedAt.Time
	}
	return b, nil
}

func (s *BackupStore) Create(key string) (*model.Backup, error) {
	now := time.Now().UTC()
	result, err := s.db.Exec(
		`INSERT INTO backups (object_key, status, created_at) VALUES (?, ?, ?)`,
		key, model.BackupStatusPending, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}
	return &model.Backup{
		ID:        id,
		Key:       key,
		Status:    model.BackupStatusPending,
		CreatedAt: now,
	}, nil
}

func (s *BackupStore) GetByID(id int64) (*model.Backup, error) {
	b, err := scanBackup(s.db.QueryRow(`SELECT `+backupColumns+` FROM backups WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get backup %d: %w", id, err)
	}
	return b, nil
}

// List returns up to limit backups, newest first.
func (s *BackupStore) List(limit int) ([]model.Backup, error) {
	rows, err := s.db.Query(
		`SELECT `+backupColumns+` FROM backups ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()

	backups := []model.Backup{}
	for rows.Next() {
		b, err := scanBackup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		backups = append(backups, *b)
	}
	return backups, rows.Err()
}

func (s *BackupStore) UpdateStatus(id int64, status model.BackupStatus, errorMsg string) error {
	var errPtr *string
	if errorMsg != "" {
		errPtr = &errorMsg
	}
	_, err := s.db.Exec(
		`UPDATE backups SET status = ?, error_message = ? WHERE id = ?`,
		status, errPtr, id,
	)
	if err != nil {
		return fmt.Errorf("update backup status: %w", err)
	}
	return nil
}

func (s *BackupStore) UpdateCompleted(id, sizeBytes int64, days int) error {
	_, err := s.db.Exec(
		`UPDATE backups SET status = ?, size_bytes = ?, days = ?, error_message = NULL, completed_at = ? WHERE id = ?`,
		model.BackupStatusCompleted, sizeBytes, days, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update backup completed: %w", err)
	}
	return nil
}

// DeleteOlderThan deletes backup records created before the given time and
// returns their object keys.
func (s *BackupStore) DeleteOlderThan(before time.Time) ([]string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT object_key FROM backups WHERE created_at < ?`, before)
	if err != nil {
		return nil, fmt.Errorf("select old backups: %w", err)
	}
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan backup key: %w", err)
		}
		keys = append(keys, key)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`DELETE FROM backups WHERE created_at < ?`, before); err != nil {
		return nil, fmt.Errorf("delete old backups: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return keys, nil
}
