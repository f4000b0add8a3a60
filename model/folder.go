package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Folder is immutable once created except for deletion; rename and move are
// not supported operations.
type Folder struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	OwnerID string `gorm:"column:owner_id;size:64;not null;index" json:"owner_id"`

	Name string `gorm:"column:name;size:255;not null" json:"name"`

	ParentID *string `gorm:"column:parent_id;size:36;index" json:"parent_id,omitempty"`

	// Path is materialized at creation from the ancestor chain and never
	// recomputed afterwards.
	Path string `gorm:"column:path;size:1024;not null" json:"path"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Folder) TableName() string {
	return "folders"
}

// BeforeCreate assigns the catalog identifier.
func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
