package model

import "time"

type BackupStatus string

const (
	BackupStatusPending   BackupStatus = "pending"
	BackupStatusUploading BackupStatus = "uploading"
	BackupStatusCompleted BackupStatus = "completed"
	BackupStatusFailed    BackupStatus = "failed"
)

// Backup records one offsite copy of the assignment history.
type Backup struct {
	ID           int64        `json:"id"`
	Key          string       `json:"key"`
	SizeBytes    int64        `json:"sizeBytes"`
	Days         int          `json:"days"`
	Status       BackupStatus `json:"status"`
	ErrorMessage string       `json:"errorMessage,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	CompletedAt  *time.Time   `json:"completedAt,omitempty"`
}
