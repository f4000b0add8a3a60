package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is a catalogued object. The record and the stored object are created
// once and deleted together; neither is ever updated in place.
type File struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	OwnerID string `gorm:"column:owner_id;size:64;not null;index" json:"owner_id"`

	Name string `gorm:"column:name;size:255;not null" json:"name"`

	// StoragePath is the opaque object-store key. Exactly one object exists
	// under it for the lifetime of the record.
	StoragePath string `gorm:"column:storage_path;size:512;uniqueIndex;not null" json:"storage_path"`

	// Size is the plaintext size for plain files and the ciphertext size for
	// encrypted ones.
	Size int64 `gorm:"column:size;not null" json:"size"`

	// MimeType is always the original content type, even when the stored
	// payload is an encrypted blob.
	MimeType string `gorm:"column:mime_type;size:128;not null" json:"mime_type"`

	IsEncrypted bool `gorm:"column:is_encrypted;not null;default:false" json:"is_encrypted"`

	// FolderID is nil for root files. Deleting a folder does not cascade, so
	// it may reference a folder that no longer exists.
	FolderID *string `gorm:"column:folder_id;size:36;index" json:"folder_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (File) TableName() string {
	return "files"
}

// BeforeCreate assigns the catalog identifier.
func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
