package model

import "time"

// ShareLink grants anonymous read access to one file. The token is the sole
// credential; revocation removes the row entirely.
type ShareLink struct {
	ID uint64 `gorm:"primaryKey" json:"-"`

	Token string `gorm:"column:token;size:64;uniqueIndex;not null" json:"token"`

	FileID string `gorm:"column:file_id;size:36;not null;index" json:"file_id"`

	OwnerID string `gorm:"column:owner_id;size:64;not null;index" json:"owner_id"`

	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (ShareLink) TableName() string {
	return "share_links"
}
