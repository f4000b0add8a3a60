package model

import "time"

// Cleanup task status values.
const (
	CleanupPending = 0
	CleanupDone    = 1
	CleanupFailed  = 2
)

// CleanupTask records an orphaned object whose compensating delete failed
// and is pending removal by the cleanup worker.
type CleanupTask struct {
	ID uint64 `gorm:"primaryKey"`

	TaskID string `gorm:"column:task_id;size:64;uniqueIndex;not null"`

	Bucket string `gorm:"column:bucket;size:64;not null"`

	StoragePath string `gorm:"column:storage_path;size:512;not null;index"`

	Attempts int `gorm:"column:attempts;not null;default:0"`

	Status int `gorm:"column:status;not null;default:0"`

	LastError string `gorm:"column:last_error;size:1024"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the database table name.
func (CleanupTask) TableName() string {
	return "cleanup_tasks"
}
